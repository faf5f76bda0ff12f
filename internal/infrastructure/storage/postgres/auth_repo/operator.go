// Package auth_repo provides the PostgreSQL operator repository.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain/auth"
	"puntoventa/internal/infrastructure/storage/postgres"
)

// OperatorRepo implements auth.OperatorRepository.
type OperatorRepo struct {
	txManager *postgres.TxManager
}

// NewOperatorRepo creates a new operator repository.
func NewOperatorRepo(txManager *postgres.TxManager) *OperatorRepo {
	return &OperatorRepo{txManager: txManager}
}

var _ auth.OperatorRepository = (*OperatorRepo)(nil)

const operatorCols = `id, username, password_hash, name,
	   is_active, is_admin, last_login_at,
	   failed_login_attempts, locked_until,
	   created_at, updated_at, version`

func scanOperator(row pgx.Row) (*auth.Operator, error) {
	var op auth.Operator
	err := row.Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.Name,
		&op.IsActive, &op.IsAdmin, &op.LastLoginAt,
		&op.FailedLoginAttempts, &op.LockedUntil,
		&op.CreatedAt, &op.UpdatedAt, &op.Version,
	)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Create creates a new operator.
func (r *OperatorRepo) Create(ctx context.Context, op *auth.Operator) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		INSERT INTO sys_operators (
			id, username, password_hash, name,
			is_active, is_admin, created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		op.ID, op.Username, op.PasswordHash, op.Name,
		op.IsActive, op.IsAdmin, op.CreatedAt, op.UpdatedAt, op.Version,
	)
	if err != nil {
		return fmt.Errorf("insert operator: %w", err)
	}

	return nil
}

// GetByID retrieves an operator by ID.
func (r *OperatorRepo) GetByID(ctx context.Context, operatorID id.ID) (*auth.Operator, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `SELECT ` + operatorCols + ` FROM sys_operators WHERE id = $1`

	op, err := scanOperator(q.QueryRow(ctx, query, operatorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("operator", operatorID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query operator: %w", err)
	}

	return op, nil
}

// GetByUsername retrieves an operator by username.
func (r *OperatorRepo) GetByUsername(ctx context.Context, username string) (*auth.Operator, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `SELECT ` + operatorCols + ` FROM sys_operators WHERE username = $1`

	op, err := scanOperator(q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("operator", username)
	}
	if err != nil {
		return nil, fmt.Errorf("query operator: %w", err)
	}

	return op, nil
}

// Update updates operator data with optimistic locking.
func (r *OperatorRepo) Update(ctx context.Context, op *auth.Operator) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		UPDATE sys_operators SET
			password_hash = $2,
			name = $3,
			is_active = $4,
			is_admin = $5,
			last_login_at = $6,
			failed_login_attempts = $7,
			locked_until = $8,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $1 AND version = $9
	`

	result, err := q.Exec(ctx, query,
		op.ID, op.PasswordHash, op.Name, op.IsActive, op.IsAdmin,
		op.LastLoginAt, op.FailedLoginAttempts, op.LockedUntil,
		op.Version,
	)
	if err != nil {
		return fmt.Errorf("update operator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("operator", op.ID)
	}

	op.Version++
	return nil
}

// Exists checks if an operator with the given username exists.
func (r *OperatorRepo) Exists(ctx context.Context, username string) (bool, error) {
	q := r.txManager.GetQuerier(ctx)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sys_operators WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check operator exists: %w", err)
	}

	return exists, nil
}

// List retrieves all operators.
func (r *OperatorRepo) List(ctx context.Context) ([]*auth.Operator, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `SELECT ` + operatorCols + ` FROM sys_operators ORDER BY username`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query operators: %w", err)
	}
	defer rows.Close()

	var operators []*auth.Operator
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operator: %w", err)
		}
		operators = append(operators, op)
	}

	return operators, rows.Err()
}
