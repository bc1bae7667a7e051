package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/salonpos/internal/apperr"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		quantity  int
		vat       string
		subtotal  string
		vatAmount string
		total     string
	}{
		{"standard czech rate", "500", 2, "21", "1000", "210", "1210"},
		{"single unit", "890", 1, "21", "890", "186.9", "1076.9"},
		{"zero vat", "150", 3, "0", "450", "0", "450"},
		{"rounding half up", "33.33", 1, "15", "33.33", "5", "38.33"},
		{"sub-cent vat rounds once", "0.99", 3, "21", "2.97", "0.62", "3.59"},
		{"free item", "0", 1, "21", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLine(dec(tt.unitPrice), tt.quantity, dec(tt.vat))
			require.NoError(t, err)
			assert.True(t, got.Subtotal.Equal(dec(tt.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.VATAmount.Equal(dec(tt.vatAmount)), "vat %s", got.VATAmount)
			assert.True(t, got.Total.Equal(dec(tt.total)), "total %s", got.Total)
		})
	}
}

func TestComputeLineRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		unitPrice string
		quantity  int
		vat       string
	}{
		{"negative price", "-1", 1, "21"},
		{"zero quantity", "100", 0, "21"},
		{"negative quantity", "100", -2, "21"},
		{"vat below range", "100", 1, "-1"},
		{"vat above range", "100", 1, "100.01"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(dec(tt.unitPrice), tt.quantity, dec(tt.vat))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidPricingInput))
		})
	}
}

func TestLineTotalIsExactSum(t *testing.T) {
	// The total must be subtotal + vat exactly for any valid input, with no
	// re-rounding after the sum.
	prices := []string{"0.01", "0.99", "33.33", "123.45", "500", "999.99"}
	vats := []string{"0", "10", "12", "15", "21", "100"}
	for _, p := range prices {
		for _, v := range vats {
			for qty := 1; qty <= 7; qty++ {
				line, err := ComputeLine(dec(p), qty, dec(v))
				require.NoError(t, err)
				require.True(t, line.Total.Equal(line.Subtotal.Add(line.VATAmount)),
					"price=%s qty=%d vat=%s", p, qty, v)
			}
		}
	}
}

func TestComputeOrderTotals(t *testing.T) {
	l1, err := ComputeLine(dec("500"), 2, dec("21"))
	require.NoError(t, err)
	l2, err := ComputeLine(dec("33.33"), 1, dec("15"))
	require.NoError(t, err)

	totals := ComputeOrderTotals([]LineTotals{l1, l2})

	assert.True(t, totals.Subtotal.Equal(l1.Subtotal.Add(l2.Subtotal)))
	assert.True(t, totals.VATAmount.Equal(l1.VATAmount.Add(l2.VATAmount)))
	assert.True(t, totals.Total.Equal(l1.Total.Add(l2.Total)))
	// Summed totals stay consistent: no VAT recomputation on the aggregate.
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.VATAmount)))
}

func TestComputeOrderTotalsEmpty(t *testing.T) {
	totals := ComputeOrderTotals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.VATAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}
