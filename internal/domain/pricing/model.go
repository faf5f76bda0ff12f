// Package pricing computes the monetary breakdown of a sale: subtotal,
// discount/surcharge resolution, installment schedule, and the rounding
// remainder absorbed by the last installment.
//
// Everything here is a value object constructed per computation. The
// engine is pure and deterministic: the cart UI recomputes on every
// state change and the confirmed sale stores the same numbers.
package pricing

import (
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"

	"github.com/shopspring/decimal"
)

// LineItem is one cart line. Quantity is owned by the cart; the engine
// never mutates it.
type LineItem struct {
	ID                  id.ID
	Label               string
	UnitListPrice       types.Money
	UnitDiscountPercent types.Percent // ≥ 0, catalog-sourced
	Quantity            int
}

// EffectiveUnitPrice returns the unit price after the per-item discount,
// unrounded. Per-item discounts apply regardless of any cart-level
// adjustment.
func (li LineItem) EffectiveUnitPrice() types.Money {
	factor := decimal.NewFromInt(1).Sub(li.UnitDiscountPercent.Div(decimal.NewFromInt(100)))
	return li.UnitListPrice.Mul(factor)
}

// Subtotal returns the unrounded line subtotal.
func (li LineItem) Subtotal() types.Money {
	return li.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// PaymentMethodAdjustment carries the selected payment method's base
// percent: negative = discount, positive = surcharge, zero = neutral.
type PaymentMethodAdjustment struct {
	MethodID id.ID
	Label    string
	Percent  types.Percent
}

// InstallmentOption is the selected installment plan. Count 1 with zero
// surcharge is always available for every payment method.
type InstallmentOption struct {
	Count            int
	SurchargePercent types.Percent // ≥ 0
}

// ManualDiscount is an operator-typed discount percent, clamped to
// [0,100] at the API boundary before it reaches the engine.
type ManualDiscount struct {
	Percent types.Percent
}

// Request is the full input of one pricing pass, assembled fresh from
// current selections on every recompute. No hidden state.
type Request struct {
	LineItems      []LineItem
	PaymentMethod  PaymentMethodAdjustment
	Installment    InstallmentOption
	ManualDiscount *ManualDiscount
}

// OriginKind tags a discrete discount/surcharge source.
type OriginKind string

const (
	OriginPerItem       OriginKind = "per_item"
	OriginPaymentMethod OriginKind = "payment_method"
	OriginManual        OriginKind = "manual"
	OriginInstallment   OriginKind = "installment"
)

// Origin is one discrete adjustment line. The receipt and the persisted
// sale record show origins separately, never netted.
type Origin struct {
	Kind    OriginKind
	Label   string
	Percent types.Percent
	Amount  types.Money
}

// Breakdown is the immutable output of one pricing pass.
type Breakdown struct {
	BaseSubtotal               types.Money
	EffectiveAdjustmentPercent types.Percent
	DiscountAmount             types.Money
	SurchargeAmount            types.Money
	TotalBeforeInstallments    types.Money

	InstallmentSurchargePercent types.Percent
	InstallmentSurchargeAmount  types.Money
	FinalTotal                  types.Money
	InstallmentCount            int
	AmountPerInstallment        types.Money
	LastInstallmentAmount       types.Money
	RoundingRemainder           types.Money

	// Origins lists each adjustment source separately for the receipt
	// and the persisted sale record.
	Origins []Origin
}

// FreeSale reports whether the final total is zero: valid, but the
// operator must confirm it explicitly before the sale is stored.
func (b Breakdown) FreeSale() bool {
	return b.FinalTotal.IsZero()
}
