package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaporvista/storefront-backend/internal/cart"
	"github.com/vaporvista/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
)

// Service exposes catalog reads and builds the product snapshots the cart
// consumes.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Snapshot(ctx context.Context, productID string) (cart.ProductSnapshot, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service over the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// Snapshot freezes the product fields a cart line stores. The cart trusts
// this snapshot verbatim and never re-validates it against the catalog.
func (s *service) Snapshot(ctx context.Context, productID string) (cart.ProductSnapshot, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return cart.ProductSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeConflict, "product is not available")
	}
	return cart.ProductSnapshot{
		ID:     product.ID.String(),
		Name:   product.Name,
		Slug:   product.Slug,
		Price:  product.Price,
		Images: product.Images,
	}, nil
}
