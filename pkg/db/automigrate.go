package db

import (
	"context"
	"fmt"

	"github.com/vaporvista/storefront-backend/pkg/db/models"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

// AutoMigrate creates or updates the storefront tables. Intended for dev and
// test databases; production schemas are managed out of band.
func (c *Client) AutoMigrate(ctx context.Context, logg *logger.Logger) error {
	if err := c.conn.WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.StoreSettings{},
		&models.Order{},
		&models.OrderLineItem{},
	); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "schema migration complete")
	}
	return nil
}
