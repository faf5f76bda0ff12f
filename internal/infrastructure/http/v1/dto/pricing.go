package dto

import (
	"github.com/shopspring/decimal"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/pricing"
)

// --- Request DTOs ---

// QuoteLineItem is one cart line in a quote request. Prices travel as
// decimal strings to avoid float drift on the wire.
type QuoteLineItem struct {
	ItemID              string          `json:"itemId" binding:"required,uuid"`
	Label               string          `json:"label"`
	UnitListPrice       decimal.Decimal `json:"unitListPrice" binding:"required"`
	UnitDiscountPercent decimal.Decimal `json:"unitDiscountPercent"`
	Quantity            int             `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest is the input for one pricing pass. The payment method
// percent and installment surcharge are resolved server-side from the
// catalog; the client only sends its selections.
type QuoteRequest struct {
	Items                 []QuoteLineItem  `json:"items" binding:"required,min=1,dive"`
	PaymentMethodID       string           `json:"paymentMethodId" binding:"required,uuid"`
	InstallmentCount      int              `json:"installmentCount"`
	ManualDiscountPercent *decimal.Decimal `json:"manualDiscountPercent"`
}

// ToLineItems converts request lines to pricing inputs.
func (r *QuoteRequest) ToLineItems() ([]pricing.LineItem, error) {
	items := make([]pricing.LineItem, 0, len(r.Items))
	for i, li := range r.Items {
		itemID, err := id.Parse(li.ItemID)
		if err != nil {
			return nil, apperror.NewValidation("invalid item id").
				WithDetail("index", i).
				WithDetail("itemId", li.ItemID)
		}
		if li.UnitListPrice.IsNegative() {
			return nil, apperror.NewValidation("unit list price must not be negative").
				WithDetail("index", i)
		}
		if li.UnitDiscountPercent.IsNegative() || li.UnitDiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, apperror.NewValidation("unit discount percent must be within [0, 100]").
				WithDetail("index", i)
		}
		items = append(items, pricing.LineItem{
			ID:                  itemID,
			Label:               li.Label,
			UnitListPrice:       li.UnitListPrice,
			UnitDiscountPercent: li.UnitDiscountPercent,
			Quantity:            li.Quantity,
		})
	}
	return items, nil
}

// ManualDiscount clamps the operator-typed percent to [0, 100].
// Out-of-range input is corrected here, not rejected.
func (r *QuoteRequest) ManualDiscount() *types.Percent {
	if r.ManualDiscountPercent == nil {
		return nil
	}
	p := *r.ManualDiscountPercent
	if p.IsNegative() {
		p = decimal.Zero
	}
	if hundred := decimal.NewFromInt(100); p.GreaterThan(hundred) {
		p = hundred
	}
	return &p
}

// --- Response DTOs ---

// AdjustmentOrigin is one discrete discount/surcharge line.
type AdjustmentOrigin struct {
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Percent string `json:"percent"`
	Amount  string `json:"amount"`
}

// QuoteResponse is the full breakdown of one pricing pass. All amounts
// are decimal strings with two fractional digits.
type QuoteResponse struct {
	BaseSubtotal               string `json:"baseSubtotal"`
	EffectiveAdjustmentPercent string `json:"effectiveAdjustmentPercent"`
	DiscountAmount             string `json:"discountAmount"`
	SurchargeAmount            string `json:"surchargeAmount"`
	TotalBeforeInstallments    string `json:"totalBeforeInstallments"`

	InstallmentSurchargePercent string `json:"installmentSurchargePercent"`
	InstallmentSurchargeAmount  string `json:"installmentSurchargeAmount"`
	FinalTotal                  string `json:"finalTotal"`
	InstallmentCount            int    `json:"installmentCount"`
	AmountPerInstallment        string `json:"amountPerInstallment"`
	LastInstallmentAmount       string `json:"lastInstallmentAmount"`
	RoundingRemainder           string `json:"roundingRemainder"`

	Origins  []AdjustmentOrigin `json:"origins"`
	FreeSale bool               `json:"freeSale"`
}

// FromBreakdown creates a response from a pricing breakdown.
func FromBreakdown(b pricing.Breakdown) *QuoteResponse {
	origins := make([]AdjustmentOrigin, 0, len(b.Origins))
	for _, o := range b.Origins {
		label := o.Label
		if label == "" {
			label = pricing.AdjustmentLabel(o.Percent)
		}
		origins = append(origins, AdjustmentOrigin{
			Kind:    string(o.Kind),
			Label:   label,
			Percent: o.Percent.StringFixed(2),
			Amount:  o.Amount.StringFixed(2),
		})
	}

	return &QuoteResponse{
		BaseSubtotal:               b.BaseSubtotal.StringFixed(2),
		EffectiveAdjustmentPercent: b.EffectiveAdjustmentPercent.StringFixed(2),
		DiscountAmount:             b.DiscountAmount.StringFixed(2),
		SurchargeAmount:            b.SurchargeAmount.StringFixed(2),
		TotalBeforeInstallments:    b.TotalBeforeInstallments.StringFixed(2),

		InstallmentSurchargePercent: b.InstallmentSurchargePercent.StringFixed(2),
		InstallmentSurchargeAmount:  b.InstallmentSurchargeAmount.StringFixed(2),
		FinalTotal:                  b.FinalTotal.StringFixed(2),
		InstallmentCount:            b.InstallmentCount,
		AmountPerInstallment:        b.AmountPerInstallment.StringFixed(2),
		LastInstallmentAmount:       b.LastInstallmentAmount.StringFixed(2),
		RoundingRemainder:           b.RoundingRemainder.StringFixed(2),

		Origins:  origins,
		FreeSale: b.FreeSale(),
	}
}
