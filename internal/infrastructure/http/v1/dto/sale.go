package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/domain/pricing"
	"puntoventa/internal/domain/receipt"
)

// --- Request DTOs ---

// ConfirmSaleRequest is the request body for confirming a sale.
// Amounts are never accepted from the client; the server recomputes
// the full breakdown from these selections.
type ConfirmSaleRequest struct {
	Items                 []QuoteLineItem  `json:"items" binding:"required,min=1,dive"`
	PaymentMethodID       string           `json:"paymentMethodId" binding:"required,uuid"`
	InstallmentCount      int              `json:"installmentCount"`
	ManualDiscountPercent *decimal.Decimal `json:"manualDiscountPercent"`
	FreeSaleConfirmed     bool             `json:"freeSaleConfirmed"`
	Comment               string           `json:"comment"`
}

// --- Response DTOs ---

// SaleLineResponse is one persisted cart line.
type SaleLineResponse struct {
	LineNo              int    `json:"lineNo"`
	ItemID              string `json:"itemId"`
	Label               string `json:"label"`
	UnitListPrice       string `json:"unitListPrice"`
	UnitDiscountPercent string `json:"unitDiscountPercent"`
	Quantity            int    `json:"quantity"`
}

// SaleResponse represents a confirmed sale in API responses.
type SaleResponse struct {
	BaseResponse
	Number            string    `json:"number"`
	Date              time.Time `json:"date"`
	Comment           string    `json:"comment,omitempty"`
	PaymentMethodID   string    `json:"paymentMethodId"`
	PaymentMethodName string    `json:"paymentMethodName"`

	BasePrice                  string `json:"basePrice"`
	InstallmentCount           int    `json:"installmentCount"`
	AmountPerInstallment       string `json:"amountPerInstallment"`
	LastInstallmentAmount      string `json:"lastInstallmentAmount"`
	RoundingRemainder          string `json:"roundingRemainder"`
	InstallmentSurchargeAmount string `json:"installmentSurchargeAmount"`
	Total                      string `json:"total"`
	FreeSaleConfirmed          bool   `json:"freeSaleConfirmed"`

	Lines   []SaleLineResponse `json:"lines"`
	Origins []AdjustmentOrigin `json:"origins"`
}

// FromSale creates a response from the domain document.
func FromSale(doc *sale.Sale) *SaleResponse {
	lines := make([]SaleLineResponse, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, SaleLineResponse{
			LineNo:              l.LineNo,
			ItemID:              l.ItemID.String(),
			Label:               l.Label,
			UnitListPrice:       l.UnitListPrice.StringFixed(2),
			UnitDiscountPercent: l.UnitDiscountPercent.StringFixed(2),
			Quantity:            l.Quantity,
		})
	}

	origins := make([]AdjustmentOrigin, 0, len(doc.Origins))
	for _, o := range doc.Origins {
		label := o.Label
		if label == "" {
			label = pricing.AdjustmentLabel(o.Percent)
		}
		origins = append(origins, AdjustmentOrigin{
			Kind:    o.Kind,
			Label:   label,
			Percent: o.Percent.StringFixed(2),
			Amount:  o.Amount.StringFixed(2),
		})
	}

	return &SaleResponse{
		BaseResponse:      FromBaseDocument(doc.BaseDocument),
		Number:            doc.Number,
		Date:              doc.Date,
		Comment:           doc.Comment,
		PaymentMethodID:   doc.PaymentMethodID.String(),
		PaymentMethodName: doc.PaymentMethodName,

		BasePrice:                  doc.BasePrice.StringFixed(2),
		InstallmentCount:           doc.InstallmentCount,
		AmountPerInstallment:       doc.AmountPerInstallment.StringFixed(2),
		LastInstallmentAmount:      doc.LastInstallmentAmount.StringFixed(2),
		RoundingRemainder:          doc.RoundingRemainder.StringFixed(2),
		InstallmentSurchargeAmount: doc.InstallmentSurchargeAmount.StringFixed(2),
		Total:                      doc.Total.StringFixed(2),
		FreeSaleConfirmed:          doc.FreeSaleConfirmed,

		Lines:   lines,
		Origins: origins,
	}
}

// ConfirmSaleResponse returns the stored sale, the breakdown used and
// the printable ticket.
type ConfirmSaleResponse struct {
	Sale      *SaleResponse  `json:"sale"`
	Breakdown *QuoteResponse `json:"breakdown"`
	Ticket    []string       `json:"ticket"`
}

// NewConfirmSaleResponse assembles the confirmation payload.
func NewConfirmSaleResponse(doc *sale.Sale, b pricing.Breakdown) *ConfirmSaleResponse {
	return &ConfirmSaleResponse{
		Sale:      FromSale(doc),
		Breakdown: FromBreakdown(b),
		Ticket:    receipt.Compose(doc).Lines(),
	}
}

// --- Filters ---

// SaleFilter contains sale list query parameters.
type SaleFilter struct {
	PaginationRequest
	Search          string     `form:"search"`
	PaymentMethodID string     `form:"paymentMethodId"`
	DateFrom        *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo          *time.Time `form:"dateTo" time_format:"2006-01-02"`
}
