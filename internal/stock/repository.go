package stock

import (
	"context"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock/dto"
)

type Repository interface {
	// Projection
	GetByItem(ctx context.Context, itemID string) (*model.Inventory, error)
	RestoreProjection(ctx context.Context, inv *model.Inventory) error

	// Movements / audit
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
	MovementsByItem(ctx context.Context, itemID string) ([]model.StockMovement, error)

	// Transactional writes: projection update + movement append as one unit
	AdjustWithMovement(ctx context.Context, inv *model.Inventory, movement *model.StockMovement) error
	ApplyWithGuard(ctx context.Context, movement *model.StockMovement) (*model.Inventory, error)
}
