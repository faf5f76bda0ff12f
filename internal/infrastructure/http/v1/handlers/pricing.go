package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/paymentmethod"
	"puntoventa/internal/domain/pricing"
	"puntoventa/internal/infrastructure/http/v1/dto"
)

// PricingHandler handles live pricing quotes for the cart display.
type PricingHandler struct {
	*BaseHandler
	engine  *pricing.Engine
	methods *paymentmethod.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, engine *pricing.Engine, methods *paymentmethod.Service) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		engine:      engine,
		methods:     methods,
	}
}

// Quote handles POST /pricing/quote
//
// Computes the full breakdown for the current cart state without
// storing anything. The register calls this on every selection change.
func (h *PricingHandler) Quote(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	methodID, err := id.Parse(req.PaymentMethodID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid payment method id"))
		return
	}

	items, err := req.ToLineItems()
	if err != nil {
		h.Error(c, err)
		return
	}

	adjustment, option, err := h.methods.ResolveSelection(ctx, methodID, req.InstallmentCount)
	if err != nil {
		h.Error(c, err)
		return
	}

	pricingReq := pricing.Request{
		LineItems:     items,
		PaymentMethod: adjustment,
		Installment:   option,
	}
	if manual := req.ManualDiscount(); manual != nil {
		pricingReq.ManualDiscount = &pricing.ManualDiscount{Percent: *manual}
	}

	breakdown := h.engine.Compute(pricingReq)

	c.JSON(http.StatusOK, dto.FromBreakdown(breakdown))
}
