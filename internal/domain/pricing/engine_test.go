package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntoventa/internal/core/types"
)

func TestCompute_ThreeInstallmentScenario(t *testing.T) {
	// Cart subtotal $10,000, method "3 cuotas" with 15% plan surcharge.
	req := Request{
		LineItems:     []LineItem{item("10000.00", "0", 1)},
		PaymentMethod: method("0"),
		Installment:   InstallmentOption{Count: 3, SurchargePercent: types.MustMoney("15")},
	}

	b := NewEngine().Compute(req)

	assert.True(t, b.TotalBeforeInstallments.Equal(types.MustMoney("10000")), "totalBeforeInstallments = %s", b.TotalBeforeInstallments)
	assert.True(t, b.InstallmentSurchargeAmount.Equal(types.MustMoney("1500")), "installmentSurchargeAmount = %s", b.InstallmentSurchargeAmount)
	assert.True(t, b.FinalTotal.Equal(types.MustMoney("11500")), "finalTotal = %s", b.FinalTotal)
	assert.True(t, b.AmountPerInstallment.Equal(types.MustMoney("3833.33")), "amountPerInstallment = %s", b.AmountPerInstallment)
	assert.True(t, b.RoundingRemainder.Equal(types.MustMoney("0.01")), "roundingRemainder = %s", b.RoundingRemainder)
	assert.True(t, b.LastInstallmentAmount.Equal(types.MustMoney("3833.34")), "lastInstallmentAmount = %s", b.LastInstallmentAmount)
}

func TestCompute_EmptyCart(t *testing.T) {
	b := NewEngine().Compute(Request{})

	assert.True(t, b.BaseSubtotal.IsZero())
	assert.True(t, b.FinalTotal.IsZero())
	assert.True(t, b.AmountPerInstallment.IsZero())
	assert.True(t, b.LastInstallmentAmount.IsZero())
	assert.True(t, b.RoundingRemainder.IsZero())
	assert.Equal(t, 1, b.InstallmentCount)
	assert.True(t, b.FreeSale())
	assert.Empty(t, b.Origins)
}

func TestCompute_Deterministic(t *testing.T) {
	req := Request{
		LineItems: []LineItem{
			item("1234.56", "10", 3),
			item("99.90", "0", 1),
		},
		PaymentMethod:  method("8"),
		Installment:    InstallmentOption{Count: 6, SurchargePercent: types.MustMoney("12.5")},
		ManualDiscount: manual("5"),
	}

	engine := NewEngine()
	first := engine.Compute(req)
	second := engine.Compute(req)

	// The UI recomputes on every keystroke; two passes over the same
	// request must not drift by a single cent.
	assert.True(t, first.FinalTotal.Equal(second.FinalTotal))
	assert.True(t, first.AmountPerInstallment.Equal(second.AmountPerInstallment))
	assert.True(t, first.LastInstallmentAmount.Equal(second.LastInstallmentAmount))
	assert.True(t, first.RoundingRemainder.Equal(second.RoundingRemainder))
	assert.Equal(t, len(first.Origins), len(second.Origins))
}

func TestCompute_BalanceInvariantAcrossInputs(t *testing.T) {
	prices := []string{"0.01", "19.99", "333.33", "10000.00"}
	methods := []string{"-10", "0", "8", "15"}
	counts := []int{1, 2, 3, 6, 12}

	engine := NewEngine()
	for _, price := range prices {
		for _, pct := range methods {
			for _, count := range counts {
				req := Request{
					LineItems:     []LineItem{item(price, "5", 2)},
					PaymentMethod: method(pct),
					Installment:   InstallmentOption{Count: count, SurchargePercent: types.MustMoney("7")},
				}
				b := engine.Compute(req)

				n := types.NewMoney(float64(count - 1))
				balance := b.AmountPerInstallment.Mul(n).Add(b.LastInstallmentAmount)
				require.True(t, balance.Equal(b.FinalTotal),
					"price=%s method=%s count=%d: balance %s != final %s",
					price, pct, count, balance, b.FinalTotal)
				require.False(t, b.FinalTotal.IsNegative())
			}
		}
	}
}

func TestCompute_ManualPrecedenceEndToEnd(t *testing.T) {
	req := Request{
		LineItems:      []LineItem{item("1000.00", "0", 1)},
		PaymentMethod:  method("-10"),
		Installment:    InstallmentOption{Count: 1},
		ManualDiscount: manual("15"),
	}

	b := NewEngine().Compute(req)

	require.True(t, b.FinalTotal.Equal(types.MustMoney("850")), "finalTotal = %s", b.FinalTotal)
	require.Len(t, b.Origins, 1)
	assert.Equal(t, OriginManual, b.Origins[0].Kind)
}

func TestCompute_FreeSaleFlag(t *testing.T) {
	req := Request{
		LineItems:      []LineItem{item("50.00", "0", 1)},
		PaymentMethod:  method("0"),
		Installment:    InstallmentOption{Count: 1},
		ManualDiscount: manual("100"),
	}

	b := NewEngine().Compute(req)
	assert.True(t, b.FreeSale())
	assert.True(t, b.FinalTotal.IsZero())
}

func TestCompute_InstallmentOriginAppended(t *testing.T) {
	req := Request{
		LineItems:     []LineItem{item("100.00", "0", 1)},
		PaymentMethod: method("0"),
		Installment:   InstallmentOption{Count: 3, SurchargePercent: types.MustMoney("15")},
	}

	b := NewEngine().Compute(req)

	require.Len(t, b.Origins, 1)
	assert.Equal(t, OriginInstallment, b.Origins[0].Kind)
	assert.True(t, b.Origins[0].Amount.Equal(types.MustMoney("15")))
}
