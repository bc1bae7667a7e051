package cashsession

import (
	"context"

	"github.com/mkadlec/salonpos/internal/cashsession/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type UseCase interface {
	// Open starts a drawer session for the cashier. A cashier can have at
	// most one open session at a time.
	Open(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error)

	// Close counts the drawer: expected balance is opening plus the sum of
	// movements, difference is counted minus expected.
	Close(ctx context.Context, input *dto.CloseSessionInput) (*model.CashSession, error)

	Get(ctx context.Context, id string) (*dto.SessionDetail, error)
	Current(ctx context.Context, cashierID string) (*model.CashSession, error)
	List(ctx context.Context, cashierID string, page, pageSize int) ([]model.CashSession, int, error)

	RecordMovement(ctx context.Context, input *dto.RecordMovementInput) (*model.CashMovement, error)

	// RecordSale books a cash payment against the cashier's open session.
	// A cash sale with no open session is left unbooked, not an error.
	RecordSale(ctx context.Context, cashierID string, order *model.Order) error
}
