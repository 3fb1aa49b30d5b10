package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/Kennyy02/totomotorworx-shop/internal/config"
	"github.com/Kennyy02/totomotorworx-shop/internal/http/handlers"
	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
)

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
	hub *notify.Hub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE categories(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE product(id INTEGER PRIMARY KEY, name TEXT, image TEXT, category TEXT,
	  new_price NUMERIC, old_price NUMERIC, stock INTEGER, available INTEGER, date TEXT);
	CREATE TABLE services(id INTEGER PRIMARY KEY, name TEXT, description TEXT, price NUMERIC);
	CREATE TABLE users(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, email TEXT,
	  password_hash TEXT, cart_data TEXT DEFAULT '{}', is_admin INTEGER DEFAULT 0,
	  disabled INTEGER DEFAULT 0, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE cart_events(id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER,
	  product_id INTEGER, delta INTEGER, created_at TEXT DEFAULT CURRENT_TIMESTAMP);

	INSERT INTO categories(name) VALUES ('part');
	INSERT INTO product(id,name,image,category,new_price,old_price,stock,available,date)
	  VALUES (1,'Brake Pad Set','images/brake.jpg','part',24.50,30.00,3,1,'now');
	INSERT INTO services(id,name,description,price) VALUES (9001,'Oil Change Service','',35.00);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{JWTSecret: "test-secret", MediaDir: t.TempDir()}
	hub := notify.NewHub()
	deps := handlers.NewDeps(db, cfg, hub)

	app := fiber.New()
	app.Use(requestid.New())
	fetchUser := handlers.FetchUser(deps.Tokens)
	requireAdmin := handlers.RequireAdmin()

	app.Get("/products", deps.ProductHandler.List)
	app.Get("/services", deps.ProductHandler.Services)
	app.Get("/categories", deps.CategoryHandler.List)
	app.Post("/signup", deps.AuthHandler.Signup)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/addtocart", fetchUser, deps.CartHandler.Add)
	app.Post("/removefromcart", fetchUser, deps.CartHandler.Remove)
	app.Post("/getcart", fetchUser, deps.CartHandler.Get)
	app.Get("/cart-analytics", deps.AnalyticsHandler.CartAnalytics)
	app.Post("/addproduct", fetchUser, requireAdmin, deps.ProductHandler.Add)
	app.Put("/inventory/:id", fetchUser, requireAdmin, deps.InventoryHandler.SetStock)

	return &testApp{app: app, db: db, hub: hub}
}

func (ta *testApp) request(t *testing.T, method, path, tok string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("auth-token", tok)
	}
	resp, err := ta.app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func (ta *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	resp, body := ta.request(t, "POST", "/signup", "", map[string]any{
		"username": "Rider",
		"email":    email,
		"password": "Passw0rd!",
		"consent":  true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup failed: %d %+v", resp.StatusCode, body)
	}
	tok, _ := body["auth-token"].(string)
	if tok == "" {
		t.Fatalf("no auth-token in %+v", body)
	}
	return tok
}
