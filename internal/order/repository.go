package order

import (
	"context"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/order/dto"
)

// Repository exposes the commit steps individually: the workflow drives the
// header → items sequence itself so a failure after the header can be
// reported as a partial commit needing reconciliation.
type Repository interface {
	InsertOrder(ctx context.Context, order *model.Order) error
	InsertOrderItems(ctx context.Context, items []model.OrderItem) error

	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
}
