package pricing

// Engine is the single entry point for sale pricing. It composes the
// adjustment resolution and the installment schedule into the full
// breakdown used by the live total display, the receipt, and the
// persisted sale record.
//
// Compute is pure: no I/O, no clock, no shared state. Calling it twice
// with the same request yields an identical breakdown, which keeps the
// live preview and the confirmed sale on the same numbers.
type Engine struct{}

// NewEngine creates a pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute produces the full breakdown for a request. An empty cart is a
// valid state: every monetary field comes back zero.
func (e *Engine) Compute(req Request) Breakdown {
	adj := resolveAdjustment(req.LineItems, req.PaymentMethod, req.ManualDiscount)

	count := req.Installment.Count
	if count < 1 {
		// The zero-value option means "contado": one installment, no plan.
		count = 1
	}
	surcharge := req.Installment.SurchargePercent

	sched := scheduleInstallments(adj.totalBefore, count, surcharge)

	origins := adj.origins
	if sched.surchargeAmount.IsPositive() {
		origins = append(origins, Origin{
			Kind:    OriginInstallment,
			Label:   "Recargo cuotas",
			Percent: surcharge,
			Amount:  sched.surchargeAmount,
		})
	}

	return Breakdown{
		BaseSubtotal:               adj.baseSubtotal,
		EffectiveAdjustmentPercent: adj.effectivePercent,
		DiscountAmount:             adj.discountAmount,
		SurchargeAmount:            adj.surchargeAmount,
		TotalBeforeInstallments:    adj.totalBefore,

		InstallmentSurchargePercent: surcharge,
		InstallmentSurchargeAmount:  sched.surchargeAmount,
		FinalTotal:                  sched.finalTotal,
		InstallmentCount:            count,
		AmountPerInstallment:        sched.perInstallment,
		LastInstallmentAmount:       sched.lastInstallment,
		RoundingRemainder:           sched.roundingRemainder,

		Origins: origins,
	}
}
