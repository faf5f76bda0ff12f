package paymentmethod

import (
	"context"
	"fmt"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/domain/pricing"
	"puntoventa/pkg/logger"
)

// Service provides business operations for the payment method catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new payment method service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create stores a new payment method with its installment plans.
func (s *Service) Create(ctx context.Context, method *PaymentMethod) error {
	if err := method.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.FindByCode(ctx, method.Code); err == nil && existing != nil {
		return apperror.NewConflict("payment method with this code already exists").
			WithDetail("code", method.Code)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, method); err != nil {
			return fmt.Errorf("create payment method: %w", err)
		}
		if err := s.repo.SavePlans(ctx, method.ID, method.Plans); err != nil {
			return fmt.Errorf("save plans: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "payment method created", "id", method.ID, "code", method.Code)
	return nil
}

// Update updates a payment method and replaces its plans.
func (s *Service) Update(ctx context.Context, method *PaymentMethod) error {
	if err := method.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, method); err != nil {
			return fmt.Errorf("update payment method: %w", err)
		}
		if err := s.repo.SavePlans(ctx, method.ID, method.Plans); err != nil {
			return fmt.Errorf("save plans: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a payment method with its plans.
func (s *Service) GetByID(ctx context.Context, methodID id.ID) (*PaymentMethod, error) {
	method, err := s.repo.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}

	plans, err := s.repo.GetPlans(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("get plans: %w", err)
	}
	method.Plans = plans

	return method, nil
}

// List returns payment methods, active ones only unless includeInactive.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]*PaymentMethod, error) {
	methods, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	for _, m := range methods {
		plans, err := s.repo.GetPlans(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("get plans for %s: %w", m.Code, err)
		}
		m.Plans = plans
	}

	return methods, nil
}

// SetDeletionMark soft-deletes or restores a payment method.
func (s *Service) SetDeletionMark(ctx context.Context, methodID id.ID, marked bool) error {
	return s.repo.SetDeletionMark(ctx, methodID, marked)
}

// ResolveSelection turns a method + installment count selection into the
// pricing inputs. Inactive methods and unknown plans are rejected here,
// so the engine only ever sees validated input.
func (s *Service) ResolveSelection(ctx context.Context, methodID id.ID, installmentCount int) (pricing.PaymentMethodAdjustment, pricing.InstallmentOption, error) {
	method, err := s.GetByID(ctx, methodID)
	if err != nil {
		return pricing.PaymentMethodAdjustment{}, pricing.InstallmentOption{}, err
	}

	if !method.Active || method.DeletionMark {
		return pricing.PaymentMethodAdjustment{}, pricing.InstallmentOption{},
			apperror.NewBusinessRule(apperror.CodeInactiveMethod, "payment method is not selectable").
				WithDetail("method_id", methodID.String())
	}

	if installmentCount < 1 {
		installmentCount = 1
	}
	plan, ok := method.PlanFor(installmentCount)
	if !ok {
		return pricing.PaymentMethodAdjustment{}, pricing.InstallmentOption{},
			apperror.NewBusinessRule(apperror.CodeUnknownPlan, "installment plan not offered by this payment method").
				WithDetail("method_id", methodID.String()).
				WithDetail("count", installmentCount)
	}

	adjustment := pricing.PaymentMethodAdjustment{
		MethodID: method.ID,
		Label:    method.Name,
		Percent:  method.AdjustmentPercent,
	}
	option := pricing.InstallmentOption{
		Count:            plan.Count,
		SurchargePercent: plan.SurchargePercent,
	}
	return adjustment, option, nil
}
