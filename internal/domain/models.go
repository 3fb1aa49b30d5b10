package domain

import "github.com/shopspring/decimal"

// ServiceIDFloor splits the identifier space: ids at or above it are shop
// services (oil change, tire replacement, ...) with no stock semantics;
// everything below is a physical product.
const ServiceIDFloor = 9001

type Category struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Image     string          `db:"image" json:"image"`
	Category  string          `db:"category" json:"category"` // references categories.name, not id
	NewPrice  decimal.Decimal `db:"new_price" json:"new_price"`
	OldPrice  decimal.Decimal `db:"old_price" json:"old_price"`
	Stock     int             `db:"stock" json:"stock"`
	Available bool            `db:"available" json:"available"`
	Date      string          `db:"date" json:"date"`
}

// Service is an intangible offering sold alongside products. It shares the
// cart id space with products but never participates in stock bookkeeping.
type Service struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"new_price"`
}

func IsService(id int64) bool { return id >= ServiceIDFloor }

// Cart maps a product or service id to a non-negative quantity. Keys are
// sparse; only ids that were ever added appear.
type Cart map[int64]int

// RankedItem is one row of the cart-analytics ranking.
type RankedItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	AddedCount int    `json:"addedCount"`
}
