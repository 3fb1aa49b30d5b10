package services

import (
	"errors"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

type InventoryService struct {
	Prods *repos.ProductRepo
}

func NewInventoryService(prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Prods: prods}
}

// List returns the full catalog; the admin inventory page edits stock inline.
func (s *InventoryService) List() ([]domain.Product, error) {
	return s.Prods.All()
}

// SetStock pins a product's stock to an absolute level.
func (s *InventoryService) SetStock(productID int64, stock int) error {
	ok, err := s.Prods.SetStock(productID, stock)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
