package auth

import (
	"context"

	"puntoventa/internal/core/id"
)

// OperatorRepository defines persistence for operators.
type OperatorRepository interface {
	Create(ctx context.Context, op *Operator) error
	GetByID(ctx context.Context, operatorID id.ID) (*Operator, error)
	GetByUsername(ctx context.Context, username string) (*Operator, error)
	Update(ctx context.Context, op *Operator) error
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*Operator, error)
}
