package pricing

import (
	"github.com/shopspring/decimal"

	"puntoventa/internal/core/types"
)

// schedule is the installment plan applied to a post-adjustment total.
type schedule struct {
	surchargeAmount   types.Money
	finalTotal        types.Money
	perInstallment    types.Money
	lastInstallment   types.Money
	roundingRemainder types.Money
}

// scheduleInstallments splits the total into count installments with
// exact rounding reconciliation: every installment but the last is
// floored to whole cents and the residual lands in the last one, so
//
//	perInstallment × (count−1) + lastInstallment == finalTotal
//
// holds to the cent for every count ≥ 1.
func scheduleInstallments(totalBefore types.Money, count int, surchargePercent types.Percent) schedule {
	var s schedule

	s.surchargeAmount = types.Round2(types.ApplyPercent(totalBefore, surchargePercent))
	s.finalTotal = types.Round2(totalBefore.Add(s.surchargeAmount))

	if count <= 1 {
		s.perInstallment = s.finalTotal
		s.lastInstallment = s.finalTotal
		s.roundingRemainder = types.Zero()
		return s
	}

	n := decimal.NewFromInt(int64(count))
	s.perInstallment = types.FloorCents(s.finalTotal.Div(n))
	s.roundingRemainder = types.Round2(s.finalTotal.Sub(s.perInstallment.Mul(n)))
	s.lastInstallment = types.Round2(s.perInstallment.Add(s.roundingRemainder))

	return s
}
