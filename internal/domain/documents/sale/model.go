// Package sale provides the confirmed sale document: the flattened,
// immutable record of one pricing pass, with its ticket number.
package sale

import (
	"context"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/entity"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain/pricing"
)

// Sale represents a confirmed sale. All monetary fields are copied
// from the breakdown at confirmation time and never recomputed after.
type Sale struct {
	entity.Document

	// Payment method snapshot
	PaymentMethodID   id.ID  `db:"payment_method_id" json:"paymentMethodId"`
	PaymentMethodName string `db:"payment_method_name" json:"paymentMethodName"`

	// Flattened breakdown
	BasePrice                  types.Money `db:"precio_base" json:"basePrice"`
	InstallmentCount           int         `db:"cuotas" json:"installmentCount"`
	AmountPerInstallment       types.Money `db:"monto_por_cuota" json:"amountPerInstallment"`
	LastInstallmentAmount      types.Money `db:"monto_ultima_cuota" json:"lastInstallmentAmount"`
	RoundingRemainder          types.Money `db:"diferencia_redondeo" json:"roundingRemainder"`
	InstallmentSurchargeAmount types.Money `db:"recargo_monto_cuotas" json:"installmentSurchargeAmount"`
	Total                      types.Money `db:"total" json:"total"`

	// FreeSaleConfirmed records that the operator explicitly accepted
	// a zero-total sale.
	FreeSaleConfirmed bool `db:"free_sale_confirmed" json:"freeSaleConfirmed"`

	// Table parts
	Lines   []Line   `db:"-" json:"lines"`
	Origins []Origin `db:"-" json:"origins"`
}

// Line is the snapshot of one cart line at confirmation.
type Line struct {
	LineNo              int           `db:"line_no" json:"lineNo"`
	ItemID              id.ID         `db:"item_id" json:"itemId"`
	Label               string        `db:"label" json:"label"`
	UnitListPrice       types.Money   `db:"unit_list_price" json:"unitListPrice"`
	UnitDiscountPercent types.Percent `db:"unit_discount_percent" json:"unitDiscountPercent"`
	Quantity            int           `db:"quantity" json:"quantity"`
}

// Origin is one persisted adjustment line. Origins are stored
// separately, never netted into a single figure.
type Origin struct {
	LineNo  int           `db:"line_no" json:"lineNo"`
	Kind    string        `db:"kind" json:"kind"`
	Label   string        `db:"label" json:"label"`
	Percent types.Percent `db:"percent" json:"percent"`
	Amount  types.Money   `db:"amount" json:"amount"`
}

// NewFromBreakdown flattens a pricing request and its breakdown into a
// sale document.
func NewFromBreakdown(req pricing.Request, b pricing.Breakdown) *Sale {
	s := &Sale{
		Document:                   entity.NewDocument(),
		PaymentMethodID:            req.PaymentMethod.MethodID,
		PaymentMethodName:          req.PaymentMethod.Label,
		BasePrice:                  b.BaseSubtotal,
		InstallmentCount:           b.InstallmentCount,
		AmountPerInstallment:       b.AmountPerInstallment,
		LastInstallmentAmount:      b.LastInstallmentAmount,
		RoundingRemainder:          b.RoundingRemainder,
		InstallmentSurchargeAmount: b.InstallmentSurchargeAmount,
		Total:                      b.FinalTotal,
	}

	for i, li := range req.LineItems {
		s.Lines = append(s.Lines, Line{
			LineNo:              i + 1,
			ItemID:              li.ID,
			Label:               li.Label,
			UnitListPrice:       li.UnitListPrice,
			UnitDiscountPercent: li.UnitDiscountPercent,
			Quantity:            li.Quantity,
		})
	}

	for i, o := range b.Origins {
		s.Origins = append(s.Origins, Origin{
			LineNo:  i + 1,
			Kind:    string(o.Kind),
			Label:   o.Label,
			Percent: o.Percent,
			Amount:  o.Amount,
		})
	}

	return s
}

// FreeSale reports whether the sale total is zero.
func (s *Sale) FreeSale() bool {
	return s.Total.IsZero()
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.PaymentMethodID) {
		return apperror.NewValidation("payment method is required").
			WithDetail("field", "paymentMethodId")
	}

	if s.InstallmentCount < 1 {
		return apperror.NewValidation("installment count must be at least 1").
			WithDetail("field", "installmentCount")
	}

	if s.Total.IsNegative() {
		return apperror.NewValidation("total cannot be negative").
			WithDetail("field", "total")
	}

	for i, line := range s.Lines {
		if line.Quantity < 1 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
