package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/paymentmethod"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// PaymentMethodHandler handles the payment method catalog.
type PaymentMethodHandler struct {
	*BaseHandler
	service *paymentmethod.Service
}

// NewPaymentMethodHandler creates a new payment method handler.
func NewPaymentMethodHandler(base *BaseHandler, service *paymentmethod.Service) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /payment-methods
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	method := req.ToEntity()
	if err := h.service.Create(ctx, method); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPaymentMethod(method))
}

// Update handles PUT /payment-methods/:id
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	methodID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	method, err := h.service.GetByID(ctx, methodID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(method)
	if err := h.service.Update(ctx, method); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPaymentMethod(method))
}

// GetByID handles GET /payment-methods/:id
func (h *PaymentMethodHandler) GetByID(c *gin.Context) {
	methodID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	method, err := h.service.GetByID(c.Request.Context(), methodID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPaymentMethod(method))
}

// List handles GET /payment-methods
//
// Returns active methods by default; includeInactive=true shows all.
func (h *PaymentMethodHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	methods, err := h.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		items = append(items, dto.FromPaymentMethod(m))
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      len(items),
		Offset:     0,
	})
}

// SetDeletionMark handles POST /payment-methods/:id/deletion-mark
func (h *PaymentMethodHandler) SetDeletionMark(c *gin.Context) {
	methodID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), methodID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}
