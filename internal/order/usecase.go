package order

import (
	"context"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/order/dto"
)

type UseCase interface {
	// Checkout runs the commit sequence over a cart snapshot and returns the
	// persisted order together with the inventory projections it changed.
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error)

	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
}
