package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"puntoventa/internal/core/types"
)

// adjustment is the resolved cart-level discount/surcharge state before
// the installment schedule runs.
type adjustment struct {
	baseSubtotal     types.Money
	effectivePercent types.Percent
	discountPercent  types.Percent // separated components, both ≥ 0
	surchargePercent types.Percent
	discountAmount   types.Money
	surchargeAmount  types.Money
	totalBefore      types.Money
	origins          []Origin
}

// resolveAdjustment combines per-line discounts, the payment-method
// percent, and the optional manual override.
//
// Precedence (pinned, do not "fix"): a manual discount REPLACES a
// payment-method discount, but STACKS with a payment-method surcharge.
// The two amounts are computed from the separated components, not from
// the net percent, so the receipt keeps them as distinct lines.
func resolveAdjustment(items []LineItem, method PaymentMethodAdjustment, manual *ManualDiscount) adjustment {
	var a adjustment

	subtotals := make([]types.Money, 0, len(items))
	for _, li := range items {
		subtotals = append(subtotals, li.Subtotal())
	}
	a.baseSubtotal = types.Round2(types.Sum(subtotals...))

	for _, li := range items {
		if li.UnitDiscountPercent.IsPositive() {
			listed := li.UnitListPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
			a.origins = append(a.origins, Origin{
				Kind:    OriginPerItem,
				Label:   li.Label,
				Percent: li.UnitDiscountPercent,
				Amount:  types.Round2(types.ApplyPercent(listed, li.UnitDiscountPercent)),
			})
		}
	}

	switch {
	case method.Percent.IsNegative() && manual != nil:
		// Manual wins; the method discount is discarded entirely.
		a.discountPercent = manual.Percent
		a.effectivePercent = manual.Percent.Neg()
	case method.Percent.IsNegative():
		a.discountPercent = method.Percent.Neg()
		a.effectivePercent = method.Percent
	case manual != nil:
		// Surcharge (or neutral) method and a manual discount compose
		// additively on the same base.
		a.surchargePercent = method.Percent
		a.discountPercent = manual.Percent
		a.effectivePercent = method.Percent.Sub(manual.Percent)
	default:
		a.surchargePercent = method.Percent
		a.effectivePercent = method.Percent
	}

	a.discountAmount = types.Round2(types.ApplyPercent(a.baseSubtotal, a.discountPercent))
	a.surchargeAmount = types.Round2(types.ApplyPercent(a.baseSubtotal, a.surchargePercent))

	if a.surchargePercent.IsPositive() {
		a.origins = append(a.origins, Origin{
			Kind:    OriginPaymentMethod,
			Label:   method.Label,
			Percent: a.surchargePercent,
			Amount:  a.surchargeAmount,
		})
	}
	if a.discountPercent.IsPositive() {
		kind := OriginManual
		label := "Descuento manual"
		if manual == nil {
			kind = OriginPaymentMethod
			label = method.Label
		}
		a.origins = append(a.origins, Origin{
			Kind:    kind,
			Label:   label,
			Percent: a.discountPercent.Neg(),
			Amount:  a.discountAmount,
		})
	}

	a.totalBefore = types.Round2(a.baseSubtotal.Sub(a.discountAmount).Add(a.surchargeAmount))
	if a.totalBefore.IsNegative() {
		a.totalBefore = types.Zero()
	}

	return a
}

// AdjustmentLabel renders the applied percent for the live display,
// e.g. "+15% recargo" or "-10% descuento".
func AdjustmentLabel(percent types.Percent) string {
	switch {
	case percent.IsPositive():
		return fmt.Sprintf("+%s%% recargo", percent.String())
	case percent.IsNegative():
		return fmt.Sprintf("-%s%% descuento", percent.Neg().String())
	default:
		return ""
	}
}
