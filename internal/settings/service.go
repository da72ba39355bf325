package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vaporvista/storefront-backend/internal/pricing"
	"github.com/vaporvista/storefront-backend/pkg/config"
	"github.com/vaporvista/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
)

// Service exposes the storefront pricing settings.
type Service interface {
	PricingConfig(ctx context.Context) (pricing.Config, error)
	Get(ctx context.Context) (*models.StoreSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.StoreSettings, error)
	EnsureDefaults(ctx context.Context) error
}

// UpdateInput carries the admin-editable pricing knobs.
type UpdateInput struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal
	TaxRate               decimal.Decimal
	TaxShipping           bool
}

type service struct {
	repo     *Repository
	defaults config.PricingConfig
}

// NewService builds a settings service seeded with configured defaults.
func NewService(repo *Repository, defaults config.PricingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, defaults: defaults}, nil
}

// PricingConfig returns the effective pricing rules, falling back to the
// configured defaults when no row has been saved yet.
func (s *service) PricingConfig(ctx context.Context) (pricing.Config, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultPricing(), nil
		}
		return pricing.Config{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return pricing.Config{
		FreeShippingThreshold: row.FreeShippingThreshold,
		FlatShippingRate:      row.FlatShippingRate,
		TaxRate:               row.TaxRate,
		TaxShipping:           row.TaxShipping,
	}, nil
}

func (s *service) Get(ctx context.Context) (*models.StoreSettings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "settings not initialized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.StoreSettings, error) {
	if input.FreeShippingThreshold.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "free shipping threshold must be non-negative")
	}
	if input.FlatShippingRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flat shipping rate must be non-negative")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be a fraction between 0 and 1")
	}

	row := &models.StoreSettings{
		FreeShippingThreshold: input.FreeShippingThreshold,
		FlatShippingRate:      input.FlatShippingRate,
		TaxRate:               input.TaxRate,
		TaxShipping:           input.TaxShipping,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}
	return row, nil
}

// EnsureDefaults seeds the settings row from configuration when missing.
func (s *service) EnsureDefaults(ctx context.Context) error {
	_, err := s.repo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	row := &models.StoreSettings{
		FreeShippingThreshold: s.defaults.FreeShippingThreshold,
		FlatShippingRate:      s.defaults.FlatShippingRate,
		TaxRate:               s.defaults.TaxRate,
		TaxShipping:           s.defaults.TaxShipping,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed settings")
	}
	return nil
}

func (s *service) defaultPricing() pricing.Config {
	return pricing.Config{
		FreeShippingThreshold: s.defaults.FreeShippingThreshold,
		FlatShippingRate:      s.defaults.FlatShippingRate,
		TaxRate:               s.defaults.TaxRate,
		TaxShipping:           s.defaults.TaxShipping,
	}
}
