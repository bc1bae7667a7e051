package catalog

import (
	"context"

	"github.com/mkadlec/salonpos/internal/catalog/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.SellableItem, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.SellableItem, error)
	GetItem(ctx context.Context, id string) (*model.SellableItem, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.SellableItem, int, error)
	DeactivateItem(ctx context.Context, id string) error

	ListActive(ctx context.Context) ([]model.SellableItemView, error)
	GetActiveView(ctx context.Context, id string) (*model.SellableItemView, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.SellableItemView, int, error)

	ListVATRates(ctx context.Context, activeOnly bool) ([]model.VATRate, error)
	CreateVATRate(ctx context.Context, input *dto.CreateVATRateInput) (*model.VATRate, error)
}
