package sale

import (
	"context"
	"fmt"
	"time"

	"puntoventa/internal/core/apperror"
	appctx "puntoventa/internal/core/context"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/tx"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain"
	"puntoventa/internal/domain/pricing"
	"puntoventa/pkg/logger"
	"puntoventa/pkg/numerator"
)

// TicketPrefix for sale document numbers.
const TicketPrefix = "TK"

// MethodResolver validates a payment method + installment selection
// and returns the pricing inputs for it.
type MethodResolver interface {
	ResolveSelection(ctx context.Context, methodID id.ID, installmentCount int) (pricing.PaymentMethodAdjustment, pricing.InstallmentOption, error)
}

// AuditLogger records confirmed-sale snapshots.
type AuditLogger interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

// ConfirmInput carries the operator's selections. Amounts are never
// accepted from the client; the breakdown is recomputed here.
type ConfirmInput struct {
	Items                 []pricing.LineItem
	PaymentMethodID       id.ID
	InstallmentCount      int
	ManualDiscountPercent *types.Percent
	FreeSaleConfirmed     bool
	Comment               string
}

// Service confirms and retrieves sale documents.
type Service struct {
	repo      Repository
	engine    *pricing.Engine
	methods   MethodResolver
	numerator numerator.Generator
	txManager tx.Manager
	audit     AuditLogger // optional
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	engine *pricing.Engine,
	methods MethodResolver,
	gen numerator.Generator,
	txManager tx.Manager,
	audit AuditLogger,
) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		methods:   methods,
		numerator: gen,
		txManager: txManager,
		audit:     audit,
	}
}

// Confirm recomputes the breakdown from the given selections, stores
// the sale and returns it together with the breakdown used.
func (s *Service) Confirm(ctx context.Context, input ConfirmInput) (*Sale, pricing.Breakdown, error) {
	adjustment, option, err := s.methods.ResolveSelection(ctx, input.PaymentMethodID, input.InstallmentCount)
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}

	req := pricing.Request{
		LineItems:     input.Items,
		PaymentMethod: adjustment,
		Installment:   option,
	}
	if input.ManualDiscountPercent != nil {
		req.ManualDiscount = &pricing.ManualDiscount{Percent: *input.ManualDiscountPercent}
	}

	breakdown := s.engine.Compute(req)

	if breakdown.FreeSale() && !input.FreeSaleConfirmed {
		return nil, pricing.Breakdown{}, apperror.NewFreeSaleNotConfirmed()
	}

	doc := NewFromBreakdown(req, breakdown)
	doc.Comment = input.Comment
	doc.FreeSaleConfirmed = breakdown.FreeSale() && input.FreeSaleConfirmed
	if operatorID := appctx.GetOperatorID(ctx); operatorID != "" {
		doc.CreatedBy = operatorID
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, pricing.Breakdown{}, err
	}

	cfg := numerator.DefaultConfig(TicketPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		return nil, pricing.Breakdown{}, fmt.Errorf("generate ticket number: %w", err)
	}
	doc.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		if err := s.repo.SaveOrigins(ctx, doc.ID, doc.Origins); err != nil {
			return fmt.Errorf("save origins: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}

	if s.audit != nil {
		changes := map[string]any{
			"number":  doc.Number,
			"total":   doc.Total.String(),
			"cuotas":  doc.InstallmentCount,
			"method":  doc.PaymentMethodName,
			"origins": doc.Origins,
			"lines":   doc.Lines,
		}
		if err := s.audit.LogChange(ctx, "Sale", doc.ID, "confirm", changes); err != nil {
			logger.Warn(ctx, "sale audit log failed", "error", err, "id", doc.ID)
		}
	}

	logger.Info(ctx, "sale confirmed",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.Total.String(),
		"installments", doc.InstallmentCount)

	return doc, breakdown, nil
}

// GetByID retrieves a sale with lines and origins.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.loadParts(ctx, doc)
}

// GetByNumber retrieves a sale by ticket number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.loadParts(ctx, doc)
}

// List returns confirmed sales without table parts.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) loadParts(ctx context.Context, doc *Sale) (*Sale, error) {
	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	origins, err := s.repo.GetOrigins(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get origins: %w", err)
	}
	doc.Origins = origins

	return doc, nil
}
