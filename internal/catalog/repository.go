package catalog

import (
	"context"

	"github.com/mkadlec/salonpos/internal/catalog/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type Repository interface {
	// Items
	Create(ctx context.Context, item *model.SellableItem) error
	Update(ctx context.Context, item *model.SellableItem) error
	FindByID(ctx context.Context, id string) (*model.SellableItem, error)
	FindAll(ctx context.Context, filters *dto.ItemFilters) ([]model.SellableItem, int, error)
	Deactivate(ctx context.Context, id string) error

	// Composed views (item + VAT percentage + inventory projection)
	ListActiveViews(ctx context.Context) ([]model.SellableItemView, error)
	FindViewByID(ctx context.Context, id string) (*model.SellableItemView, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.SellableItemView, int, error)

	// VAT rates
	ListVATRates(ctx context.Context, activeOnly bool) ([]model.VATRate, error)
	FindVATRateByID(ctx context.Context, id string) (*model.VATRate, error)
	CreateVATRate(ctx context.Context, rate *model.VATRate) error
}
