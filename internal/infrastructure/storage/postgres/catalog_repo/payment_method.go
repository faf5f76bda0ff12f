// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/catalogs/paymentmethod"
	"puntoventa/internal/infrastructure/storage/postgres"
)

var paymentMethodCols = []string{
	"id", "code", "name", "adjustment_percent", "active",
	"deletion_mark", "version",
}

// PaymentMethodRepo implements paymentmethod.Repository.
type PaymentMethodRepo struct {
	txManager *postgres.TxManager
}

// NewPaymentMethodRepo creates a new payment method repository.
func NewPaymentMethodRepo(txManager *postgres.TxManager) *PaymentMethodRepo {
	return &PaymentMethodRepo{txManager: txManager}
}

var _ paymentmethod.Repository = (*PaymentMethodRepo)(nil)

func (r *PaymentMethodRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PaymentMethodRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(paymentMethodCols...).
		From("cat_payment_methods")
}

// Create inserts a new payment method.
func (r *PaymentMethodRepo) Create(ctx context.Context, method *paymentmethod.PaymentMethod) error {
	q := r.builder().
		Insert("cat_payment_methods").
		Columns(paymentMethodCols...).
		Values(
			method.ID, method.Code, method.Name, method.AdjustmentPercent,
			method.Active, method.DeletionMark, method.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert cat_payment_methods: %w", err)
	}

	return nil
}

// Update modifies a payment method with optimistic locking.
func (r *PaymentMethodRepo) Update(ctx context.Context, method *paymentmethod.PaymentMethod) error {
	q := r.builder().
		Update("cat_payment_methods").
		Set("code", method.Code).
		Set("name", method.Name).
		Set("adjustment_percent", method.AdjustmentPercent).
		Set("active", method.Active).
		Set("deletion_mark", method.DeletionMark).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": method.ID}).
		Where(squirrel.Eq{"version": method.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update cat_payment_methods: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("payment_method", method.ID)
	}

	method.Version++
	return nil
}

// GetByID retrieves a payment method by ID.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, methodID id.ID) (*paymentmethod.PaymentMethod, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": methodID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var method paymentmethod.PaymentMethod
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &method, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment_method", methodID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return &method, nil
}

// FindByCode retrieves a payment method by code.
func (r *PaymentMethodRepo) FindByCode(ctx context.Context, code string) (*paymentmethod.PaymentMethod, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var method paymentmethod.PaymentMethod
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &method, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment_method", code)
		}
		return nil, fmt.Errorf("get by code: %w", err)
	}

	return &method, nil
}

// List retrieves payment methods.
func (r *PaymentMethodRepo) List(ctx context.Context, includeInactive bool) ([]*paymentmethod.PaymentMethod, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code")

	if !includeInactive {
		q = q.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var methods []*paymentmethod.PaymentMethod
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &methods, sql, args...); err != nil {
		return nil, fmt.Errorf("list cat_payment_methods: %w", err)
	}

	return methods, nil
}

// SetDeletionMark soft-deletes or restores a payment method.
func (r *PaymentMethodRepo) SetDeletionMark(ctx context.Context, methodID id.ID, marked bool) error {
	q := r.builder().
		Update("cat_payment_methods").
		Set("deletion_mark", marked).
		Where(squirrel.Eq{"id": methodID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("payment_method", methodID.String())
	}

	return nil
}

// SavePlans replaces the installment plans of a method.
func (r *PaymentMethodRepo) SavePlans(ctx context.Context, methodID id.ID, plans []paymentmethod.InstallmentPlan) error {
	querier := r.txManager.GetQuerier(ctx)

	if _, err := querier.Exec(ctx,
		`DELETE FROM cat_payment_method_plans WHERE method_id = $1`, methodID); err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}

	if len(plans) == 0 {
		return nil
	}

	q := r.builder().
		Insert("cat_payment_method_plans").
		Columns("method_id", "installment_count", "surcharge_percent")
	for _, p := range plans {
		q = q.Values(methodID, p.Count, p.SurchargePercent)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert plans: %w", err)
	}

	return nil
}

// GetPlans loads the installment plans of a method.
func (r *PaymentMethodRepo) GetPlans(ctx context.Context, methodID id.ID) ([]paymentmethod.InstallmentPlan, error) {
	q := r.builder().
		Select("method_id", "installment_count", "surcharge_percent").
		From("cat_payment_method_plans").
		Where(squirrel.Eq{"method_id": methodID}).
		OrderBy("installment_count")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var plans []paymentmethod.InstallmentPlan
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &plans, sql, args...); err != nil {
		return nil, fmt.Errorf("get plans: %w", err)
	}

	return plans, nil
}
