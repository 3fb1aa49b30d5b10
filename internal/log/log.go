package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// One JSON object per line. Cart mutations carry typed item_id/delta fields
// so the audit trail can be filtered per product; everything else rides in
// the free-form fields map. The actor's id and admin flag come from the
// locals set by the auth middleware.
type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	UserID int64          `json:"user_id,omitempty"`
	Admin  bool           `json:"admin,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	ItemID int64          `json:"item_id,omitempty"`
	Delta  int            `json:"delta,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

func write(e entry, c *fiber.Ctx, err error) {
	e.TS = time.Now().UTC().Format(time.RFC3339)
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if uid, ok := c.Locals("userId").(int64); ok {
			e.UserID = uid
		}
		if admin, ok := c.Locals("isAdmin").(bool); ok {
			e.Admin = admin
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "info", Action: action, Fields: fields}, c, nil)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "audit", Action: action, Fields: fields}, c, nil)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "warn", Action: action, Fields: fields}, c, nil)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(entry{Level: "error", Action: action, Fields: fields}, c, err)
}

// Cart records a cart mutation with its item and signed quantity delta.
func Cart(c *fiber.Ctx, action string, itemID int64, delta int) {
	write(entry{Level: "info", Action: action, ItemID: itemID, Delta: delta}, c, nil)
}
