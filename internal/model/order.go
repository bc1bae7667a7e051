package model

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentBank    PaymentMethod = "bank"
	PaymentVoucher PaymentMethod = "voucher"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentBank, PaymentVoucher:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is immutable after commit except for status transitions. Totals are
// aggregated independently over the lines at commit time, not copied from the
// cart display values.
type Order struct {
	BaseModel
	OrderNumber   string          `db:"order_number" json:"order_number"`
	CustomerID    *string         `db:"customer_id" json:"customer_id"`
	CashierID     string          `db:"cashier_id" json:"cashier_id"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	VATAmount     decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status        OrderStatus     `db:"status" json:"status"`
	Notes         *string         `db:"notes" json:"notes"`
	Items         []OrderItem     `db:"-" json:"items,omitempty"`
}

// OrderItem freezes the price, VAT rate and derived amounts computed at
// commit time; later catalog edits never reach persisted lines.
type OrderItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ItemID    string          `db:"item_id" json:"item_id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	VATRate   decimal.Decimal `db:"vat_rate" json:"vat_rate"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	VATAmount decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	Total     decimal.Decimal `db:"total" json:"total"`
}
