package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vaporvista/storefront-backend/pkg/db/models"
)

const settingsRowID = 1

// Repository persists the single store settings row.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the settings row.
func (r *Repository) Get(ctx context.Context) (*models.StoreSettings, error) {
	var row models.StoreSettings
	if err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save upserts the settings row.
func (r *Repository) Save(ctx context.Context, row *models.StoreSettings) error {
	row.ID = settingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}
