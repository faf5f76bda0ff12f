// Package receipt renders a confirmed sale as printable ticket lines.
package receipt

import (
	"fmt"

	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/domain/pricing"
	"puntoventa/pkg/amountwords"
)

// Ticket is the printable representation of a confirmed sale.
// Lines are ordered top to bottom as they appear on paper.
type Ticket struct {
	Number      string   `json:"number"`
	Header      []string `json:"header"`
	Items       []string `json:"items"`
	Adjustments []string `json:"adjustments"`
	Payment     []string `json:"payment"`
	Legal       string   `json:"legal"`
}

// Lines flattens the ticket into one printable sequence.
func (t Ticket) Lines() []string {
	var out []string
	out = append(out, t.Header...)
	out = append(out, t.Items...)
	out = append(out, t.Adjustments...)
	out = append(out, t.Payment...)
	out = append(out, t.Legal)
	return out
}

// Compose renders a sale document as ticket lines. Each adjustment
// origin prints on its own line; discounts and surcharges are never
// netted into one figure.
func Compose(doc *sale.Sale) Ticket {
	t := Ticket{Number: doc.Number}

	t.Header = append(t.Header,
		fmt.Sprintf("TICKET %s", doc.Number),
		fmt.Sprintf("FECHA %s", doc.Date.Format("02/01/2006 15:04")),
		fmt.Sprintf("PAGO: %s", doc.PaymentMethodName),
	)

	for _, line := range doc.Lines {
		t.Items = append(t.Items, fmt.Sprintf("%d x %s  $%s",
			line.Quantity, line.Label, line.UnitListPrice.StringFixed(2)))
		if line.UnitDiscountPercent.IsPositive() {
			t.Items = append(t.Items, fmt.Sprintf("   desc. articulo -%s%%",
				line.UnitDiscountPercent.String()))
		}
	}

	t.Adjustments = append(t.Adjustments,
		fmt.Sprintf("SUBTOTAL  $%s", doc.BasePrice.StringFixed(2)))
	for _, o := range doc.Origins {
		if o.Kind == string(pricing.OriginPerItem) {
			continue // already shown under its item line
		}
		t.Adjustments = append(t.Adjustments, originLine(o))
	}

	t.Payment = append(t.Payment,
		fmt.Sprintf("TOTAL  $%s", doc.Total.StringFixed(2)))
	if doc.InstallmentCount > 1 {
		t.Payment = append(t.Payment, installmentLine(doc))
	}

	t.Legal = fmt.Sprintf("SON: %s", amountwords.ToWords(doc.Total))

	return t
}

func originLine(o sale.Origin) string {
	sign := "-"
	if o.Percent.IsPositive() {
		sign = "+"
	}
	label := pricing.AdjustmentLabel(o.Percent)
	if label == "" {
		label = o.Label
	} else {
		label = fmt.Sprintf("%s %s", o.Label, label)
	}
	return fmt.Sprintf("%s  %s$%s", label, sign, o.Amount.StringFixed(2))
}

// installmentLine renders "2 cuotas de $3833.33 y 1 cuota de $3833.34".
// Equal installments collapse to a single clause.
func installmentLine(doc *sale.Sale) string {
	per := doc.AmountPerInstallment
	last := doc.LastInstallmentAmount

	if per.Equal(last) {
		return fmt.Sprintf("%d cuotas de $%s", doc.InstallmentCount, per.StringFixed(2))
	}
	return fmt.Sprintf("%d cuotas de $%s y 1 cuota de $%s",
		doc.InstallmentCount-1, per.StringFixed(2), last.StringFixed(2))
}
