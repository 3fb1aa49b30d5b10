// Package mirror keeps the storefront's optimistic local view of cart
// quantities and product stock. Mutations apply locally first, then go to
// the server; a rejected mutation marks the mirror Diverged and forces a
// full re-fetch instead of leaving silently-wrong local state.
package mirror

import (
	"context"
	"errors"
	"sync"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrNotAuthenticated = errors.New("cart requires a logged-in user")

type State int

const (
	Synced State = iota
	PendingMutation
	Diverged
)

func (s State) String() string {
	switch s {
	case Synced:
		return "Synced"
	case PendingMutation:
		return "PendingMutation"
	case Diverged:
		return "Diverged"
	}
	return "Unknown"
}

// Backend is the server surface the mirror reconciles against.
type Backend interface {
	AddToCart(ctx context.Context, itemID int64) error
	RemoveFromCart(ctx context.Context, itemID int64) error
	GetCart(ctx context.Context) (domain.Cart, error)
	Products(ctx context.Context) ([]domain.Product, error)
}

type Mirror struct {
	backend Backend

	mu     sync.Mutex
	authed bool
	state  State
	items  domain.Cart
	prods  map[int64]domain.Product
}

func New(backend Backend) *Mirror {
	return &Mirror{
		backend: backend,
		items:   domain.Cart{},
		prods:   map[int64]domain.Product{},
	}
}

// SetAuthenticated flips the logged-in flag. Mutations are rejected locally
// while it is false; no network call is made.
func (m *Mirror) SetAuthenticated(authed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authed = authed
}

func (m *Mirror) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Refresh pulls the full product list and, when authenticated, the full
// cart. Last fetch wins; there is no merge with local state.
func (m *Mirror) Refresh(ctx context.Context) error {
	prods, err := m.backend.Products(ctx)
	if err != nil {
		return err
	}

	var cart domain.Cart
	m.mu.Lock()
	authed := m.authed
	m.mu.Unlock()
	if authed {
		if cart, err = m.backend.GetCart(ctx); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.prods = make(map[int64]domain.Product, len(prods))
	for _, p := range prods {
		m.prods[p.ID] = p
	}
	if cart != nil {
		m.items = cart
	} else {
		m.items = domain.Cart{}
	}
	m.state = Synced
	return nil
}

// AddToCart optimistically bumps the local quantity (and for physical
// products with believed stock, takes a local unit), then asks the server.
// A server rejection transitions to Diverged and re-fetches.
func (m *Mirror) AddToCart(ctx context.Context, itemID int64) error {
	m.mu.Lock()
	if !m.authed {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.items[itemID]++
	if !domain.IsService(itemID) {
		if p, ok := m.prods[itemID]; ok && p.Stock > 0 {
			p.Stock--
			m.prods[itemID] = p
		}
	}
	m.state = PendingMutation
	m.mu.Unlock()

	if err := m.backend.AddToCart(ctx, itemID); err != nil {
		return m.diverge(ctx, err)
	}

	m.settle()
	return nil
}

// RemoveFromCart is the symmetric optimistic decrement, clamped at zero.
func (m *Mirror) RemoveFromCart(ctx context.Context, itemID int64) error {
	m.mu.Lock()
	if !m.authed {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	decremented := false
	if m.items[itemID] > 0 {
		m.items[itemID]--
		decremented = true
	}
	if decremented && !domain.IsService(itemID) {
		if p, ok := m.prods[itemID]; ok {
			p.Stock++
			m.prods[itemID] = p
		}
	}
	m.state = PendingMutation
	m.mu.Unlock()

	if err := m.backend.RemoveFromCart(ctx, itemID); err != nil {
		return m.diverge(ctx, err)
	}

	m.settle()
	return nil
}

func (m *Mirror) diverge(ctx context.Context, cause error) error {
	m.mu.Lock()
	m.state = Diverged
	m.mu.Unlock()
	// Forced reconcile; the refresh outcome decides whether we leave
	// Diverged, the original rejection is what the caller sees.
	_ = m.Refresh(ctx)
	return cause
}

func (m *Mirror) settle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == PendingMutation {
		m.state = Synced
	}
}

func (m *Mirror) Quantity(itemID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[itemID]
}

func (m *Mirror) Stock(itemID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prods[itemID].Stock
}

// TotalItems counts units across the cart.
func (m *Mirror) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, qty := range m.items {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// TotalAmount sums qty x new_price over items still present in the mirrored
// catalog; unrecognized ids contribute nothing, as on the storefront.
func (m *Mirror) TotalAmount() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for id, qty := range m.items {
		if qty <= 0 {
			continue
		}
		p, ok := m.prods[id]
		if !ok {
			continue
		}
		total = total.Add(p.NewPrice.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}
