package services

import (
	"errors"

	"github.com/Kennyy02/totomotorworx-shop/internal/domain"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
)

var (
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category has products")
)

// CategoryInUseError reports how many products block a category deletion.
type CategoryInUseError struct{ Products int }

func (e *CategoryInUseError) Error() string { return ErrCategoryInUse.Error() }
func (e *CategoryInUseError) Unwrap() error { return ErrCategoryInUse }

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Svcs  *repos.ServiceRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, svcs *repos.ServiceRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Svcs: svcs}
}

func (s *CatalogService) AllProducts() ([]domain.Product, error) {
	return s.Prods.All()
}

type ProductPage struct {
	Products      []domain.Product `json:"products"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int              `json:"totalProducts"`
}

func (s *CatalogService) ProductsPage(page, limit int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	prods, total, err := s.Prods.Page(limit, offset)
	if err != nil {
		return ProductPage{}, err
	}
	totalPages := (total + limit - 1) / limit
	return ProductPage{Products: prods, Page: page, TotalPages: totalPages, TotalProducts: total}, nil
}

func (s *CatalogService) AddProduct(name, image, category string, newPrice, oldPrice float64) (int64, error) {
	return s.Prods.Insert(name, image, category, newPrice, oldPrice)
}

func (s *CatalogService) RemoveProduct(id int64) error {
	return s.Prods.Delete(id)
}

// NewCollections returns the eight newest products, oldest of the eight
// first, matching the storefront's shelf order.
func (s *CatalogService) NewCollections() ([]domain.Product, error) {
	return s.Prods.Latest(8)
}

// PopularInPart is the storefront's "popular parts" strip.
func (s *CatalogService) PopularInPart() ([]domain.Product, error) {
	return s.Prods.ByCategory("part", 4)
}

func (s *CatalogService) Services() ([]domain.Service, error) {
	return s.Svcs.List()
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) AddCategory(name string) (int64, error) {
	dup, err := s.Cats.ExistsName(name, 0)
	if err != nil {
		return 0, err
	}
	if dup {
		return 0, ErrDuplicateCategory
	}
	return s.Cats.Insert(name)
}

func (s *CatalogService) RenameCategory(id int64, name string) error {
	dup, err := s.Cats.ExistsName(name, id)
	if err != nil {
		return err
	}
	if dup {
		return ErrDuplicateCategory
	}
	return s.Cats.Rename(id, name)
}

// DeleteCategory refuses while any product still references the category
// name; the error carries the blocking-product count.
func (s *CatalogService) DeleteCategory(id int64) error {
	cat, err := s.Cats.Get(id)
	if err != nil {
		return err
	}
	n, err := s.Prods.CountByCategory(cat.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return &CategoryInUseError{Products: n}
	}
	return s.Cats.Delete(id)
}
