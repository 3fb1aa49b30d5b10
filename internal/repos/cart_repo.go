package repos

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CartRepo reads and writes the per-user cart blob stored on the users row.
// The blob is a JSON object keyed by product/service id with integer
// quantities. Mutations are whole-blob read-then-write; there is no row
// locking across the pair, so concurrent writers are last-write-wins.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// Load returns the user's cart. A blob that fails to parse is treated as an
// empty cart, never as an error. sql.ErrNoRows is returned when the user row
// is missing.
func (r *CartRepo) Load(userID int64) (domain.Cart, error) {
	var blob string
	if err := r.db.Get(&blob, `SELECT cart_data FROM users WHERE id = ?`, userID); err != nil {
		return nil, err
	}
	return decodeCart(blob), nil
}

// Save writes the whole cart blob back.
func (r *CartRepo) Save(userID int64, cart domain.Cart) error {
	blob, err := encodeCart(cart)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(`UPDATE users SET cart_data = ? WHERE id = ?`, blob, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AllCarts streams every user's decoded cart for analytics scans.
func (r *CartRepo) AllCarts() ([]domain.Cart, error) {
	var blobs []string
	if err := r.db.Select(&blobs, `SELECT cart_data FROM users`); err != nil {
		return nil, err
	}
	out := make([]domain.Cart, 0, len(blobs))
	for _, b := range blobs {
		out = append(out, decodeCart(b))
	}
	return out, nil
}

func decodeCart(blob string) domain.Cart {
	raw := map[string]int{}
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		// Lenient recovery: malformed state degrades to an empty cart.
		return domain.Cart{}
	}
	cart := domain.Cart{}
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		cart[id] = v
	}
	return cart
}

func encodeCart(cart domain.Cart) (string, error) {
	raw := make(map[string]int, len(cart))
	for id, qty := range cart {
		raw[strconv.FormatInt(id, 10)] = qty
	}
	b, err := json.Marshal(raw)
	return string(b), err
}
