package stock

import (
	"context"
	"time"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock/dto"
)

type UseCase interface {
	Projection(ctx context.Context, itemID string) (*model.Inventory, error)
	AvailableStock(ctx context.Context, itemID string) (int, error)
	Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.Inventory, error)
	ApplySale(ctx context.Context, input *dto.OrderMovementInput) (*model.Inventory, error)
	ApplyReturn(ctx context.Context, input *dto.OrderMovementInput) (*model.Inventory, error)
	SetReserved(ctx context.Context, itemID string, reserved int) (*model.Inventory, error)
	Movements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
	Rebuild(ctx context.Context, itemID string) (*model.Inventory, error)
}

// Locker serializes stock mutations across tills. Satisfied by the redis
// client in production and faked in tests.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
