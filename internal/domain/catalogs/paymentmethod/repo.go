package paymentmethod

import (
	"context"

	"puntoventa/internal/core/id"
)

// Repository defines persistence for the payment method catalog.
type Repository interface {
	Create(ctx context.Context, method *PaymentMethod) error
	Update(ctx context.Context, method *PaymentMethod) error
	GetByID(ctx context.Context, methodID id.ID) (*PaymentMethod, error)
	FindByCode(ctx context.Context, code string) (*PaymentMethod, error)
	List(ctx context.Context, includeInactive bool) ([]*PaymentMethod, error)
	SetDeletionMark(ctx context.Context, methodID id.ID, marked bool) error

	// SavePlans replaces the installment plans of a method.
	SavePlans(ctx context.Context, methodID id.ID, plans []InstallmentPlan) error
	// GetPlans loads the installment plans of a method.
	GetPlans(ctx context.Context, methodID id.ID) ([]InstallmentPlan, error)
}
