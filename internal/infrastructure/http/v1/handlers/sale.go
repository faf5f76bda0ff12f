package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain"
	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/domain/receipt"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale confirmation and retrieval.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Confirm handles POST /sales
//
// Recomputes the breakdown server-side from the submitted selections,
// assigns the ticket number and stores the document. The response
// includes the printable ticket.
func (h *SaleHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ConfirmSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	methodID, err := id.Parse(req.PaymentMethodID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid payment method id"))
		return
	}

	quote := dto.QuoteRequest{
		Items:                 req.Items,
		PaymentMethodID:       req.PaymentMethodID,
		InstallmentCount:      req.InstallmentCount,
		ManualDiscountPercent: req.ManualDiscountPercent,
	}
	items, err := quote.ToLineItems()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, breakdown, err := h.service.Confirm(ctx, sale.ConfirmInput{
		Items:                 items,
		PaymentMethodID:       methodID,
		InstallmentCount:      req.InstallmentCount,
		ManualDiscountPercent: quote.ManualDiscount(),
		FreeSaleConfirmed:     req.FreeSaleConfirmed,
		Comment:               req.Comment,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.NewConfirmSaleResponse(doc, breakdown)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// GetByID handles GET /sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSale(doc))
}

// GetByNumber handles GET /sales/by-number/:number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	doc, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSale(doc))
}

// Ticket handles GET /sales/:id/ticket
//
// Returns the printable ticket lines for a stored sale.
func (h *SaleHandler) Ticket(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"number": doc.Number,
		"ticket": receipt.Compose(doc).Lines(),
	})
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	filter.Defaults()

	listFilter := sale.ListFilter{
		ListFilter: domain.ListFilter{
			Search: filter.Search,
			Limit:  filter.PageSize,
			Offset: filter.Offset(),
		},
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
	}
	if filter.PaymentMethodID != "" {
		methodID, err := id.Parse(filter.PaymentMethodID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid payment method id"))
			return
		}
		listFilter.PaymentMethodID = &methodID
	}

	result, err := h.service.List(c.Request.Context(), listFilter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.SaleResponse, 0, len(result.Items))
	for _, doc := range result.Items {
		items = append(items, dto.FromSale(doc))
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      filter.PageSize,
		Offset:     filter.Offset(),
	})
}
