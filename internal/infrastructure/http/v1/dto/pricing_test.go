package dto

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestManualDiscountClamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"within range", "25", "25"},
		{"negative clamps to zero", "-10", "0"},
		{"above hundred clamps to hundred", "150", "100"},
		{"zero stays zero", "0", "0"},
		{"hundred stays hundred", "100", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decimal.RequireFromString(tt.input)
			req := QuoteRequest{ManualDiscountPercent: &p}

			got := req.ManualDiscount()
			if got == nil {
				t.Fatal("expected clamped percent, got nil")
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ManualDiscount() = %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestManualDiscountAbsent(t *testing.T) {
	req := QuoteRequest{}
	if req.ManualDiscount() != nil {
		t.Error("expected nil for absent manual discount")
	}
}

func TestToLineItemsRejectsBadInput(t *testing.T) {
	base := QuoteLineItem{
		ItemID:        "01923456-7890-7123-8456-789012345678",
		Label:         "Remera",
		UnitListPrice: decimal.RequireFromString("1500"),
		Quantity:      1,
	}

	t.Run("invalid item id", func(t *testing.T) {
		li := base
		li.ItemID = "not-a-uuid"
		req := QuoteRequest{Items: []QuoteLineItem{li}}
		if _, err := req.ToLineItems(); err == nil {
			t.Error("expected error for invalid item id")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		li := base
		li.UnitListPrice = decimal.RequireFromString("-1")
		req := QuoteRequest{Items: []QuoteLineItem{li}}
		if _, err := req.ToLineItems(); err == nil {
			t.Error("expected error for negative price")
		}
	})

	t.Run("discount over hundred", func(t *testing.T) {
		li := base
		li.UnitDiscountPercent = decimal.RequireFromString("101")
		req := QuoteRequest{Items: []QuoteLineItem{li}}
		if _, err := req.ToLineItems(); err == nil {
			t.Error("expected error for discount over 100")
		}
	})

	t.Run("valid line", func(t *testing.T) {
		req := QuoteRequest{Items: []QuoteLineItem{base}}
		items, err := req.ToLineItems()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 || items[0].Label != "Remera" {
			t.Errorf("unexpected items: %+v", items)
		}
	})
}
