package document

import (
	"github.com/shopspring/decimal"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// Totals are the derived financial figures of a document. Amounts are exact
// decimals; use Float for the persisted float64 representation.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Balance       decimal.Decimal `json:"balance"`
	HasFinancials bool            `json:"hasFinancials"`
}

// LineTotal is quantity × unitPrice for one item.
func LineTotal(item entity.InvoiceItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity)).Mul(decimal.NewFromFloat(item.UnitPrice))
}

// ItemsSubtotal sums the line totals of items.
func ItemsSubtotal(items []entity.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum
}

// PaymentsTotal sums the payment amounts.
func PaymentsTotal(payments []entity.PaymentEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(decimal.NewFromFloat(p.Amount))
	}
	return sum
}

// Float converts a derived amount back to the stored representation.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func balanceTotals(subtotal, paid decimal.Decimal) Totals {
	return Totals{
		Subtotal:      subtotal,
		TotalPaid:     paid,
		Balance:       subtotal.Sub(paid),
		HasFinancials: true,
	}
}

func optionalAmount(p *float64) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*p)
}
