package dto

import (
	"github.com/shopspring/decimal"

	"puntoventa/internal/domain/catalogs/paymentmethod"
)

// --- Request DTOs ---

// InstallmentPlanRequest is one installment option of a payment method.
type InstallmentPlanRequest struct {
	Count            int             `json:"count" binding:"required,min=1"`
	SurchargePercent decimal.Decimal `json:"surchargePercent"`
}

// CreatePaymentMethodRequest is the request body for creating a payment method.
type CreatePaymentMethodRequest struct {
	Code              string                   `json:"code"`
	Name              string                   `json:"name" binding:"required"`
	AdjustmentPercent decimal.Decimal          `json:"adjustmentPercent"`
	Plans             []InstallmentPlanRequest `json:"plans" binding:"dive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePaymentMethodRequest) ToEntity() *paymentmethod.PaymentMethod {
	m := paymentmethod.NewPaymentMethod(r.Code, r.Name, r.AdjustmentPercent)
	for _, p := range r.Plans {
		m.Plans = append(m.Plans, paymentmethod.InstallmentPlan{
			Count:            p.Count,
			SurchargePercent: p.SurchargePercent,
		})
	}
	return m
}

// UpdatePaymentMethodRequest is the request body for updating a payment method.
type UpdatePaymentMethodRequest struct {
	Code              string                   `json:"code"`
	Name              string                   `json:"name" binding:"required"`
	AdjustmentPercent decimal.Decimal          `json:"adjustmentPercent"`
	Active            bool                     `json:"active"`
	Plans             []InstallmentPlanRequest `json:"plans" binding:"dive"`
	Version           int                      `json:"version" binding:"required,min=1"`
}

// Apply copies the request onto an existing entity.
func (r *UpdatePaymentMethodRequest) Apply(m *paymentmethod.PaymentMethod) {
	m.Code = r.Code
	m.Name = r.Name
	m.AdjustmentPercent = r.AdjustmentPercent
	m.Active = r.Active
	m.Version = r.Version
	m.Plans = m.Plans[:0]
	for _, p := range r.Plans {
		m.Plans = append(m.Plans, paymentmethod.InstallmentPlan{
			MethodID:         m.ID.String(),
			Count:            p.Count,
			SurchargePercent: p.SurchargePercent,
		})
	}
}

// --- Response DTOs ---

// InstallmentPlanResponse is one installment option in API responses.
type InstallmentPlanResponse struct {
	Count            int    `json:"count"`
	SurchargePercent string `json:"surchargePercent"`
}

// PaymentMethodResponse represents a payment method in API responses.
type PaymentMethodResponse struct {
	BaseResponse
	Code              string                    `json:"code"`
	Name              string                    `json:"name"`
	AdjustmentPercent string                    `json:"adjustmentPercent"`
	Active            bool                      `json:"active"`
	Plans             []InstallmentPlanResponse `json:"plans"`
}

// FromPaymentMethod creates a response from the domain entity.
func FromPaymentMethod(m *paymentmethod.PaymentMethod) *PaymentMethodResponse {
	plans := make([]InstallmentPlanResponse, 0, len(m.Plans))
	for _, p := range m.Plans {
		plans = append(plans, InstallmentPlanResponse{
			Count:            p.Count,
			SurchargePercent: p.SurchargePercent.StringFixed(2),
		})
	}

	return &PaymentMethodResponse{
		BaseResponse:      FromBaseCatalog(m.BaseEntity),
		Code:              m.Code,
		Name:              m.Name,
		AdjustmentPercent: m.AdjustmentPercent.StringFixed(2),
		Active:            m.Active,
		Plans:             plans,
	}
}
