package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vaporvista/storefront-backend/pkg/config"
	"github.com/vaporvista/storefront-backend/pkg/db/models"
	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoreSettings{}))
	return db
}

func testDefaults() config.PricingConfig {
	return config.PricingConfig{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingRate:      decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.07"),
		TaxShipping:           false,
	}
}

func TestPricingConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	svc, err := NewService(NewRepository(setupSettingsTestDB(t)), testDefaults())
	require.NoError(t, err)

	cfg, err := svc.PricingConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.NewFromInt(50)))
	assert.True(t, cfg.FlatShippingRate.Equal(decimal.RequireFromString("5.99")))
	assert.False(t, cfg.TaxShipping)
}

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupSettingsTestDB(t)
	svc, err := NewService(NewRepository(db), testDefaults())
	require.NoError(t, err)

	require.NoError(t, svc.EnsureDefaults(ctx))

	row, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, row.TaxRate.Equal(decimal.RequireFromString("0.07")))

	// A second call must not overwrite admin edits.
	_, err = svc.Update(ctx, UpdateInput{
		FreeShippingThreshold: decimal.NewFromInt(75),
		FlatShippingRate:      decimal.RequireFromString("4.50"),
		TaxRate:               decimal.RequireFromString("0.08"),
		TaxShipping:           true,
	})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureDefaults(ctx))

	cfg, err := svc.PricingConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.NewFromInt(75)))
	assert.True(t, cfg.TaxShipping)
}

func TestUpdateValidatesInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewService(NewRepository(setupSettingsTestDB(t)), testDefaults())
	require.NoError(t, err)

	cases := map[string]UpdateInput{
		"negative threshold": {
			FreeShippingThreshold: decimal.NewFromInt(-1),
			FlatShippingRate:      decimal.NewFromInt(5),
			TaxRate:               decimal.RequireFromString("0.07"),
		},
		"negative rate": {
			FreeShippingThreshold: decimal.NewFromInt(50),
			FlatShippingRate:      decimal.NewFromInt(-5),
			TaxRate:               decimal.RequireFromString("0.07"),
		},
		"tax above one": {
			FreeShippingThreshold: decimal.NewFromInt(50),
			FlatShippingRate:      decimal.NewFromInt(5),
			TaxRate:               decimal.RequireFromString("1.5"),
		},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update(ctx, input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestGetBeforeSeedReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(NewRepository(setupSettingsTestDB(t)), testDefaults())
	require.NoError(t, err)

	_, err = svc.Get(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
