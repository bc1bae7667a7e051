package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/model"
)

type CreateItemInput struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Kind            model.ItemKind   `json:"kind"`
	Price           decimal.Decimal  `json:"price"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	DurationMinutes int              `json:"duration_minutes"`
	VATRateID       string           `json:"vat_rate_id"`
	TrackInventory  bool             `json:"track_inventory"`
	MinStock        int              `json:"min_stock"`
}

type UpdateItemInput struct {
	ID              string           `json:"-"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Kind            model.ItemKind   `json:"kind"`
	Price           decimal.Decimal  `json:"price"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price"`
	DurationMinutes int              `json:"duration_minutes"`
	VATRateID       string           `json:"vat_rate_id"`
	TrackInventory  bool             `json:"track_inventory"`
	MinStock        int              `json:"min_stock"`
	IsActive        bool             `json:"is_active"`
}

type CreateVATRateInput struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}
