package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashSessionStatus string

const (
	CashSessionOpen   CashSessionStatus = "open"
	CashSessionClosed CashSessionStatus = "closed"
)

// CashSession is one cashier's drawer shift. At close, the expected balance
// is opening balance plus the sum of the session's movements and difference
// is counted minus expected.
type CashSession struct {
	ID              string            `db:"id" json:"id"`
	CashierID       string            `db:"cashier_id" json:"cashier_id"`
	OpeningBalance  decimal.Decimal   `db:"opening_balance" json:"opening_balance"`
	ClosingBalance  *decimal.Decimal  `db:"closing_balance" json:"closing_balance"`
	ExpectedBalance *decimal.Decimal  `db:"expected_balance" json:"expected_balance"`
	Difference      *decimal.Decimal  `db:"difference" json:"difference"`
	StartedAt       time.Time         `db:"started_at" json:"started_at"`
	EndedAt         *time.Time        `db:"ended_at" json:"ended_at"`
	Status          CashSessionStatus `db:"status" json:"status"`
}

type CashMovementType string

const (
	CashMovementSale       CashMovementType = "sale"
	CashMovementRefund     CashMovementType = "refund"
	CashMovementOpening    CashMovementType = "opening"
	CashMovementClosing    CashMovementType = "closing"
	CashMovementAdjustment CashMovementType = "adjustment"
)

type CashMovement struct {
	ID            string           `db:"id" json:"id"`
	CashSessionID string           `db:"cash_session_id" json:"cash_session_id"`
	Type          CashMovementType `db:"type" json:"type"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"` // signed: refunds negative
	Description   *string          `db:"description" json:"description"`
	OrderID       *string          `db:"order_id" json:"order_id"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
