// Package paymentmethod provides the payment method catalog: each
// method carries its base adjustment percent and its installment plans.
package paymentmethod

import (
	"context"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/entity"
	"puntoventa/internal/core/types"
)

// PaymentMethod is one way to pay (efectivo, tarjeta, transferencia…).
// AdjustmentPercent is negative for a discount, positive for a
// surcharge, zero for neutral methods like cash.
type PaymentMethod struct {
	entity.Catalog

	AdjustmentPercent types.Percent `db:"adjustment_percent" json:"adjustmentPercent"`

	// Active methods are selectable at the register
	Active bool `db:"active" json:"active"`

	// Plans are the installment options offered by this method.
	// The single-installment plan is always available; it does not
	// need a row.
	Plans []InstallmentPlan `db:"-" json:"plans"`
}

// InstallmentPlan is one installment option of a payment method.
type InstallmentPlan struct {
	MethodID         string        `db:"method_id" json:"-"`
	Count            int           `db:"installment_count" json:"count"`
	SurchargePercent types.Percent `db:"surcharge_percent" json:"surchargePercent"`
}

// NewPaymentMethod creates an active payment method.
func NewPaymentMethod(code, name string, adjustmentPercent types.Percent) *PaymentMethod {
	return &PaymentMethod{
		Catalog:           entity.NewCatalog(code, name),
		AdjustmentPercent: adjustmentPercent,
		Active:            true,
	}
}

// Validate implements entity.Validatable.
func (m *PaymentMethod) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	hundred := types.MustMoney("100")
	if m.AdjustmentPercent.LessThan(hundred.Neg()) || m.AdjustmentPercent.GreaterThan(hundred) {
		return apperror.NewValidation("adjustment percent must be within [-100, 100]").
			WithDetail("field", "adjustmentPercent").
			WithDetail("value", m.AdjustmentPercent.String())
	}

	for _, p := range m.Plans {
		if p.Count < 1 {
			return apperror.NewValidation("installment count must be at least 1").
				WithDetail("field", "plans").
				WithDetail("count", p.Count)
		}
		if p.SurchargePercent.IsNegative() || p.SurchargePercent.GreaterThan(hundred) {
			return apperror.NewValidation("installment surcharge must be within [0, 100]").
				WithDetail("field", "plans").
				WithDetail("count", p.Count)
		}
	}

	return nil
}

// PlanFor returns the plan with the given installment count.
// Count 1 always resolves, with zero surcharge, even without a row.
func (m *PaymentMethod) PlanFor(count int) (InstallmentPlan, bool) {
	for _, p := range m.Plans {
		if p.Count == count {
			return p, true
		}
	}
	if count == 1 {
		return InstallmentPlan{Count: 1, SurchargePercent: types.Zero()}, true
	}
	return InstallmentPlan{}, false
}
