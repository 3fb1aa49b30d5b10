package services

import (
	"database/sql"
	"errors"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"
	"github.com/Kennyy02/totomotorworx-shop/internal/notify"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
)

var ErrUserNotFound = errors.New("user not found")

// CartService applies quantity deltas to a user's cart blob and keeps the
// product stock counter roughly in step. The blob write and the stock write
// are two independent statements with no transaction around them; a failure
// between the two leaves them inconsistent, and concurrent mutations on the
// same user are last-write-wins on the blob.
type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Events *repos.EventRepo
	Hub    *notify.Hub
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, events *repos.EventRepo, hub *notify.Hub) *CartService {
	return &CartService{Carts: carts, Prods: prods, Events: events, Hub: hub}
}

// Add increments cart[productID] by one and, for physical products with
// stock left, takes one unit of stock. There is no availability check at
// this layer: adding a zero-stock product still succeeds (only the stock
// side effect is skipped). The change signal is published unconditionally.
func (s *CartService) Add(userID, productID int64) error {
	cart, err := s.Carts.Load(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}
	cart[productID]++
	if err := s.Carts.Save(userID, cart); err != nil {
		if err == sql.ErrNoRows {
			// User row deleted between load and save.
			return ErrUserNotFound
		}
		return err
	}

	if !domain.IsService(productID) {
		// Guarded decrement; a missing product row or empty stock is not an
		// error for the cart layer.
		if _, err := s.Prods.DecrementStock(productID); err != nil {
			return err
		}
	}

	// Best-effort audit row; ignored on failure.
	_ = s.Events.Append(userID, productID, 1)

	s.Hub.Publish()
	return nil
}

// Remove decrements cart[productID], clamped at zero. Stock is restored only
// when a decrement actually happened, and with no ceiling against the
// original stock level.
func (s *CartService) Remove(userID, productID int64) error {
	cart, err := s.Carts.Load(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	decremented := false
	if cart[productID] > 0 {
		cart[productID]--
		decremented = true
	}
	if err := s.Carts.Save(userID, cart); err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	if decremented && !domain.IsService(productID) {
		if err := s.Prods.RestoreStock(productID); err != nil {
			return err
		}
	}

	if decremented {
		_ = s.Events.Append(userID, productID, -1)
	}

	s.Hub.Publish()
	return nil
}

// Get returns the raw quantity mapping. A malformed blob comes back as an
// empty cart, never as an error.
func (s *CartService) Get(userID int64) (domain.Cart, error) {
	cart, err := s.Carts.Load(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return cart, nil
}
