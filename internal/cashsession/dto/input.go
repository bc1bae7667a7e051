package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/model"
)

type OpenSessionInput struct {
	CashierID      string          `json:"-"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type CloseSessionInput struct {
	SessionID      string          `json:"-"`
	CashierID      string          `json:"-"`
	CountedBalance decimal.Decimal `json:"counted_balance"`
}

type RecordMovementInput struct {
	SessionID   string                 `json:"-"`
	CashierID   string                 `json:"-"`
	Type        model.CashMovementType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
}

// SessionDetail pairs a session with its movement log.
type SessionDetail struct {
	Session   *model.CashSession   `json:"session"`
	Movements []model.CashMovement `json:"movements"`
}
