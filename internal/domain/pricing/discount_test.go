package pricing

import (
	"testing"

	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
)

func item(price string, discount string, qty int) LineItem {
	return LineItem{
		ID:                  id.New(),
		Label:               "Articulo",
		UnitListPrice:       types.MustMoney(price),
		UnitDiscountPercent: types.MustMoney(discount),
		Quantity:            qty,
	}
}

func method(percent string) PaymentMethodAdjustment {
	return PaymentMethodAdjustment{
		MethodID: id.New(),
		Label:    "Medio de pago",
		Percent:  types.MustMoney(percent),
	}
}

func manual(percent string) *ManualDiscount {
	return &ManualDiscount{Percent: types.MustMoney(percent)}
}

func TestResolveAdjustment_BaseSubtotal(t *testing.T) {
	// Per-item discounts always apply, independent of the cart-level adjustment.
	items := []LineItem{
		item("100.00", "10", 2), // 2 × 90 = 180
		item("50.00", "0", 3),   // 150
	}

	a := resolveAdjustment(items, method("0"), nil)
	assertMoney(t, "baseSubtotal", a.baseSubtotal, "330.00")
	assertMoney(t, "totalBefore", a.totalBefore, "330.00")
}

func TestResolveAdjustment_ManualReplacesMethodDiscount(t *testing.T) {
	items := []LineItem{item("1000.00", "0", 1)}

	a := resolveAdjustment(items, method("-10"), manual("15"))

	// Resolved discount is 15%, and no residual 10% anywhere.
	assertMoney(t, "effectivePercent", a.effectivePercent, "-15")
	assertMoney(t, "discountAmount", a.discountAmount, "150.00")
	assertMoney(t, "surchargeAmount", a.surchargeAmount, "0")
	assertMoney(t, "totalBefore", a.totalBefore, "850.00")
}

func TestResolveAdjustment_MethodDiscountWithoutManual(t *testing.T) {
	items := []LineItem{item("1000.00", "0", 1)}

	a := resolveAdjustment(items, method("-10"), nil)

	assertMoney(t, "effectivePercent", a.effectivePercent, "-10")
	assertMoney(t, "discountAmount", a.discountAmount, "100.00")
	assertMoney(t, "totalBefore", a.totalBefore, "900.00")
}

func TestResolveAdjustment_SurchargeStacksWithManual(t *testing.T) {
	items := []LineItem{item("1000.00", "0", 1)}

	a := resolveAdjustment(items, method("8"), manual("5"))

	// Both lines exist separately: +8% of base and −5% of base, not a net +3%.
	assertMoney(t, "surchargeAmount", a.surchargeAmount, "80.00")
	assertMoney(t, "discountAmount", a.discountAmount, "50.00")
	assertMoney(t, "effectivePercent", a.effectivePercent, "3")
	assertMoney(t, "totalBefore", a.totalBefore, "1030.00")

	var kinds []OriginKind
	for _, o := range a.origins {
		kinds = append(kinds, o.Kind)
	}
	if len(kinds) != 2 || kinds[0] != OriginPaymentMethod || kinds[1] != OriginManual {
		t.Fatalf("origins = %v, want [payment_method manual]", kinds)
	}
}

func TestResolveAdjustment_PureSurcharge(t *testing.T) {
	items := []LineItem{item("500.00", "0", 2)}

	a := resolveAdjustment(items, method("15"), nil)

	assertMoney(t, "surchargeAmount", a.surchargeAmount, "150.00")
	assertMoney(t, "discountAmount", a.discountAmount, "0")
	assertMoney(t, "totalBefore", a.totalBefore, "1150.00")
}

func TestResolveAdjustment_FlooredAtZero(t *testing.T) {
	// A 100% manual discount on a neutral method: never negative.
	items := []LineItem{item("99.99", "0", 1)}

	a := resolveAdjustment(items, method("0"), manual("100"))
	assertMoney(t, "totalBefore", a.totalBefore, "0")
}

func TestResolveAdjustment_PerItemOrigins(t *testing.T) {
	items := []LineItem{
		item("200.00", "25", 2), // listed 400, discount 100
		item("80.00", "0", 1),
	}

	a := resolveAdjustment(items, method("0"), nil)

	if len(a.origins) != 1 {
		t.Fatalf("origins = %d, want 1 per-item entry", len(a.origins))
	}
	if a.origins[0].Kind != OriginPerItem {
		t.Fatalf("origin kind = %s, want per_item", a.origins[0].Kind)
	}
	assertMoney(t, "per-item amount", a.origins[0].Amount, "100.00")
}

func TestAdjustmentLabel(t *testing.T) {
	if got := AdjustmentLabel(types.MustMoney("15")); got != "+15% recargo" {
		t.Errorf("surcharge label = %q", got)
	}
	if got := AdjustmentLabel(types.MustMoney("-10")); got != "-10% descuento" {
		t.Errorf("discount label = %q", got)
	}
	if got := AdjustmentLabel(types.Zero()); got != "" {
		t.Errorf("neutral label = %q", got)
	}
}
