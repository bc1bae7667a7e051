package cashsession

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/model"
)

type Repository interface {
	CreateSession(ctx context.Context, session *model.CashSession) error
	UpdateSession(ctx context.Context, session *model.CashSession) error
	FindSessionByID(ctx context.Context, id string) (*model.CashSession, error)
	FindOpenByCashier(ctx context.Context, cashierID string) (*model.CashSession, error)
	ListSessions(ctx context.Context, cashierID string, page, pageSize int) ([]model.CashSession, int, error)

	InsertMovement(ctx context.Context, movement *model.CashMovement) error
	ListMovements(ctx context.Context, sessionID string) ([]model.CashMovement, error)
	SumMovements(ctx context.Context, sessionID string) (decimal.Decimal, error)
}
