package sale

import (
	"context"
	"time"

	"puntoventa/internal/core/id"
	"puntoventa/internal/domain"
)

// Repository defines persistence for confirmed sales. Sales are
// append-only: there is no Update or Delete.
type Repository interface {
	Create(ctx context.Context, doc *Sale) error
	GetByID(ctx context.Context, docID id.ID) (*Sale, error)
	GetByNumber(ctx context.Context, number string) (*Sale, error)

	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveOrigins(ctx context.Context, docID id.ID, origins []Origin) error
	GetOrigins(ctx context.Context, docID id.ID) ([]Origin, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)
}

// ListFilter for filtering confirmed sales.
type ListFilter struct {
	domain.ListFilter

	PaymentMethodID *id.ID
	DateFrom        *time.Time
	DateTo          *time.Time
}
