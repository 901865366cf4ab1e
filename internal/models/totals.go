package models

// Totals holds the amounts derived from an invoice's line items.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax amount and total.
// tax is a percentage; a negative value behaves as a discount.
// No rounding is applied, display formatting takes care of that.
func ComputeTotals(items []LineItem, tax float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount()
	}
	taxAmount := subtotal * (tax / 100)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}
