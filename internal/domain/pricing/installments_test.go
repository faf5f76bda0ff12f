package pricing

import (
	"testing"

	"puntoventa/internal/core/types"
)

func TestScheduleInstallments(t *testing.T) {
	tests := []struct {
		name          string
		total         string
		count         int
		surcharge     string
		wantSurcharge string
		wantFinal     string
		wantPer       string
		wantLast      string
		wantRemainder string
	}{
		{
			name:  "single installment no surcharge",
			total: "1500.00", count: 1, surcharge: "0",
			wantSurcharge: "0", wantFinal: "1500.00",
			wantPer: "1500.00", wantLast: "1500.00", wantRemainder: "0",
		},
		{
			name:  "three installments with truncation residue",
			total: "10000.00", count: 3, surcharge: "15",
			wantSurcharge: "1500.00", wantFinal: "11500.00",
			wantPer: "3833.33", wantLast: "3833.34", wantRemainder: "0.01",
		},
		{
			name:  "even split leaves no remainder",
			total: "300.00", count: 3, surcharge: "0",
			wantSurcharge: "0", wantFinal: "300.00",
			wantPer: "100.00", wantLast: "100.00", wantRemainder: "0",
		},
		{
			name:  "six installments",
			total: "999.99", count: 6, surcharge: "10",
			wantSurcharge: "100.00", wantFinal: "1099.99",
			wantPer: "183.33", wantLast: "183.34", wantRemainder: "0.01",
		},
		{
			name:  "zero total",
			total: "0", count: 12, surcharge: "40",
			wantSurcharge: "0", wantFinal: "0",
			wantPer: "0", wantLast: "0", wantRemainder: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scheduleInstallments(types.MustMoney(tt.total), tt.count, types.MustMoney(tt.surcharge))

			assertMoney(t, "surchargeAmount", s.surchargeAmount, tt.wantSurcharge)
			assertMoney(t, "finalTotal", s.finalTotal, tt.wantFinal)
			assertMoney(t, "perInstallment", s.perInstallment, tt.wantPer)
			assertMoney(t, "lastInstallment", s.lastInstallment, tt.wantLast)
			assertMoney(t, "roundingRemainder", s.roundingRemainder, tt.wantRemainder)
		})
	}
}

// TestScheduleBalance sweeps totals and counts checking exact balance:
// per × (count−1) + last == final, always.
func TestScheduleBalance(t *testing.T) {
	totals := []string{"0.01", "0.10", "1.00", "99.99", "100.01", "12345.67", "1000000.00"}
	for _, total := range totals {
		for count := 1; count <= 24; count++ {
			s := scheduleInstallments(types.MustMoney(total), count, types.MustMoney("0"))

			n := types.NewMoney(float64(count - 1))
			balance := s.perInstallment.Mul(n).Add(s.lastInstallment)
			if !balance.Equal(s.finalTotal) {
				t.Fatalf("total=%s count=%d: %s×%d + %s = %s, want %s",
					total, count, s.perInstallment, count-1, s.lastInstallment, balance, s.finalTotal)
			}

			if s.roundingRemainder.IsNegative() {
				t.Fatalf("total=%s count=%d: negative remainder %s", total, count, s.roundingRemainder)
			}
			limit := types.MustMoney("0.01").Mul(types.NewMoney(float64(count)))
			if s.roundingRemainder.GreaterThanOrEqual(limit) && count > 1 {
				t.Fatalf("total=%s count=%d: remainder %s exceeds %s", total, count, s.roundingRemainder, limit)
			}
		}
	}
}

func assertMoney(t *testing.T, field string, got types.Money, want string) {
	t.Helper()
	if !got.Equal(types.MustMoney(want)) {
		t.Errorf("%s = %s, want %s", field, got, want)
	}
}
