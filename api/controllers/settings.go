package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vaporvista/storefront-backend/api/responses"
	"github.com/vaporvista/storefront-backend/api/validators"
	"github.com/vaporvista/storefront-backend/internal/settings"
	"github.com/vaporvista/storefront-backend/pkg/logger"
)

type SettingsController struct {
	settings settings.Service
	logg     *logger.Logger
}

func NewSettingsController(svc settings.Service, logg *logger.Logger) *SettingsController {
	return &SettingsController{settings: svc, logg: logg}
}

type updateSettingsRequest struct {
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	FlatShippingRate      decimal.Decimal `json:"flatShippingRate"`
	TaxRate               decimal.Decimal `json:"taxRate"`
	TaxShipping           bool            `json:"taxShipping"`
}

// Get returns the persisted store settings.
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	row, err := c.settings.Get(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, row)
}

// Update replaces the pricing settings. Validation of ranges happens in the
// service so programmatic callers get the same rules.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	row, err := c.settings.Update(r.Context(), settings.UpdateInput{
		FreeShippingThreshold: req.FreeShippingThreshold,
		FlatShippingRate:      req.FlatShippingRate,
		TaxRate:               req.TaxRate,
		TaxShipping:           req.TaxShipping,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, row)
}
