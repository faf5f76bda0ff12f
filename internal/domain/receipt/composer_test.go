package receipt

import (
	"strings"
	"testing"
	"time"

	"puntoventa/internal/core/entity"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/domain/pricing"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func testSale() *sale.Sale {
	doc := &sale.Sale{
		Document:                   entity.NewDocument(),
		PaymentMethodID:            id.New(),
		PaymentMethodName:          "Tarjeta de crédito",
		BasePrice:                  money("10000"),
		InstallmentCount:           3,
		AmountPerInstallment:       money("3833.33"),
		LastInstallmentAmount:      money("3833.34"),
		RoundingRemainder:          money("0.01"),
		InstallmentSurchargeAmount: money("1500"),
		Total:                      money("11500"),
	}
	doc.Number = "TK-2026-00042"
	doc.Date = time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)
	doc.Lines = []sale.Line{
		{LineNo: 1, ItemID: id.New(), Label: "Remera", UnitListPrice: money("10000"), Quantity: 1},
	}
	doc.Origins = []sale.Origin{
		{LineNo: 1, Kind: string(pricing.OriginInstallment), Label: "Recargo cuotas", Percent: money("15"), Amount: money("1500")},
	}
	return doc
}

func TestCompose(t *testing.T) {
	ticket := Compose(testSale())

	all := strings.Join(ticket.Lines(), "\n")

	for _, want := range []string{
		"TICKET TK-2026-00042",
		"PAGO: Tarjeta de crédito",
		"1 x Remera  $10000.00",
		"SUBTOTAL  $10000.00",
		"Recargo cuotas +15% recargo  +$1500.00",
		"TOTAL  $11500.00",
		"2 cuotas de $3833.33 y 1 cuota de $3833.34",
		"SON: ONCE MIL QUINIENTOS PESOS",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("ticket missing %q:\n%s", want, all)
		}
	}
}

func TestComposeDiscountAndSurchargeLines(t *testing.T) {
	doc := testSale()
	doc.InstallmentCount = 1
	doc.AmountPerInstallment = doc.Total
	doc.LastInstallmentAmount = doc.Total
	doc.Origins = []sale.Origin{
		{LineNo: 1, Kind: string(pricing.OriginPaymentMethod), Label: "Tarjeta", Percent: money("10"), Amount: money("1000")},
		{LineNo: 2, Kind: string(pricing.OriginManual), Label: "Descuento manual", Percent: money("-5"), Amount: money("500")},
	}

	ticket := Compose(doc)
	all := strings.Join(ticket.Adjustments, "\n")

	if !strings.Contains(all, "Tarjeta +10% recargo  +$1000.00") {
		t.Errorf("surcharge line missing:\n%s", all)
	}
	if !strings.Contains(all, "Descuento manual -5% descuento  -$500.00") {
		t.Errorf("discount line missing:\n%s", all)
	}
}

func TestComposePerItemDiscountShownUnderItem(t *testing.T) {
	doc := testSale()
	doc.Lines[0].UnitDiscountPercent = money("20")
	doc.Origins = append(doc.Origins, sale.Origin{
		LineNo: 2, Kind: string(pricing.OriginPerItem), Label: "Remera", Percent: money("20"), Amount: money("2000"),
	})

	ticket := Compose(doc)

	items := strings.Join(ticket.Items, "\n")
	if !strings.Contains(items, "desc. articulo -20%") {
		t.Errorf("per-item discount not shown under item:\n%s", items)
	}
	adjustments := strings.Join(ticket.Adjustments, "\n")
	if strings.Contains(adjustments, "Remera") {
		t.Errorf("per-item origin must not repeat in adjustments:\n%s", adjustments)
	}
}

func TestComposeEqualInstallmentsCollapse(t *testing.T) {
	doc := testSale()
	doc.Total = money("300")
	doc.InstallmentCount = 3
	doc.AmountPerInstallment = money("100")
	doc.LastInstallmentAmount = money("100")
	doc.Origins = nil

	ticket := Compose(doc)
	payment := strings.Join(ticket.Payment, "\n")
	if !strings.Contains(payment, "3 cuotas de $100.00") {
		t.Errorf("expected collapsed installment line:\n%s", payment)
	}
	if strings.Contains(payment, "y 1 cuota") {
		t.Errorf("unexpected split installment line:\n%s", payment)
	}
}

func TestComposeSingleInstallmentOmitsLine(t *testing.T) {
	doc := testSale()
	doc.InstallmentCount = 1
	doc.AmountPerInstallment = doc.Total
	doc.LastInstallmentAmount = doc.Total

	ticket := Compose(doc)
	for _, line := range ticket.Payment {
		if strings.Contains(line, "cuota") {
			t.Errorf("contado ticket must not list installments: %s", line)
		}
	}
}
