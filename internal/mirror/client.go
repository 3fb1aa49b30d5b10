package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"
)

// HTTPBackend talks to the REST surface the storefront uses. The auth-token
// header carries the bearer credential on cart routes.
type HTTPBackend struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPBackend(baseURL, authToken string) *HTTPBackend {
	return &HTTPBackend{
		BaseURL: baseURL,
		Token:   authToken,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *HTTPBackend) AddToCart(ctx context.Context, itemID int64) error {
	return b.postCart(ctx, "/addtocart", itemID)
}

func (b *HTTPBackend) RemoveFromCart(ctx context.Context, itemID int64) error {
	return b.postCart(ctx, "/removefromcart", itemID)
}

func (b *HTTPBackend) postCart(ctx context.Context, path string, itemID int64) error {
	body, _ := json.Marshal(map[string]int64{"itemId": itemID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("auth-token", b.Token)

	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func (b *HTTPBackend) GetCart(ctx context.Context) (domain.Cart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/getcart", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("auth-token", b.Token)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	raw := map[string]int{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	cart := domain.Cart{}
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		cart[id] = v
	}
	return cart, nil
}

func (b *HTTPBackend) Products(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var prods []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&prods); err != nil {
		return nil, err
	}
	return prods, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error  string `json:"error"`
		Errors string `json:"errors"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Error
	if msg == "" {
		msg = payload.Errors
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("server rejected request (%d): %s", resp.StatusCode, msg)
}
