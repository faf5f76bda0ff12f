// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/domain"
	"puntoventa/internal/domain/documents/sale"
	"puntoventa/internal/infrastructure/storage/postgres"
)

const (
	salesTable       = "doc_sales"
	saleLinesTable   = "doc_sale_lines"
	saleOriginsTable = "doc_sale_origins"
)

var saleCols = []string{
	"id", "number", "date", "comment",
	"payment_method_id", "payment_method_name",
	"precio_base", "cuotas", "monto_por_cuota", "monto_ultima_cuota",
	"diferencia_redondeo", "recargo_monto_cuotas", "total",
	"free_sale_confirmed",
	"created_at", "updated_at", "created_by", "version",
}

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	txManager *postgres.TxManager
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{txManager: txManager}
}

var _ sale.Repository = (*SaleRepo)(nil)

func (r *SaleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SaleRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(saleCols...).
		From(salesTable)
}

// Create inserts a confirmed sale.
func (r *SaleRepo) Create(ctx context.Context, doc *sale.Sale) error {
	q := r.builder().
		Insert(salesTable).
		Columns(saleCols...).
		Values(
			doc.ID, doc.Number, doc.Date, doc.Comment,
			doc.PaymentMethodID, doc.PaymentMethodName,
			doc.BasePrice, doc.InstallmentCount, doc.AmountPerInstallment, doc.LastInstallmentAmount,
			doc.RoundingRemainder, doc.InstallmentSurchargeAmount, doc.Total,
			doc.FreeSaleConfirmed,
			doc.CreatedAt, doc.UpdatedAt, doc.CreatedBy, doc.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	return nil
}

// GetByID retrieves a sale by ID.
func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": docID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc sale.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", docID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return &doc, nil
}

// GetByNumber retrieves a sale by ticket number.
func (r *SaleRepo) GetByNumber(ctx context.Context, number string) (*sale.Sale, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"number": number}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc sale.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", number)
		}
		return nil, fmt.Errorf("get by number: %w", err)
	}

	return &doc, nil
}

// SaveLines saves sale lines (delete existing + insert new).
func (r *SaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + saleLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(saleLinesTable).
		Columns(
			"document_id", "line_no", "item_id", "label",
			"unit_list_price", "unit_discount_percent", "quantity",
		)
	for _, line := range lines {
		q = q.Values(
			docID, line.LineNo, line.ItemID, line.Label,
			line.UnitListPrice, line.UnitDiscountPercent, line.Quantity,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// GetLines retrieves sale lines.
func (r *SaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.Line, error) {
	q := r.builder().
		Select(
			"line_no", "item_id", "label",
			"unit_list_price", "unit_discount_percent", "quantity",
		).
		From(saleLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveOrigins saves the adjustment origins of a sale.
func (r *SaleRepo) SaveOrigins(ctx context.Context, docID id.ID, origins []sale.Origin) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + saleOriginsTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing origins: %w", err)
	}

	if len(origins) == 0 {
		return nil
	}

	q := r.builder().
		Insert(saleOriginsTable).
		Columns("document_id", "line_no", "kind", "label", "percent", "amount")
	for _, o := range origins {
		q = q.Values(docID, o.LineNo, o.Kind, o.Label, o.Percent, o.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert origins: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert origins: %w", err)
	}

	return nil
}

// GetOrigins retrieves the adjustment origins of a sale.
func (r *SaleRepo) GetOrigins(ctx context.Context, docID id.ID) ([]sale.Origin, error) {
	q := r.builder().
		Select("line_no", "kind", "label", "percent", "amount").
		From(saleOriginsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var origins []sale.Origin
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &origins, sql, args...); err != nil {
		return nil, fmt.Errorf("get origins: %w", err)
	}

	return origins, nil
}

// List retrieves sales with filtering.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.PaymentMethodID != nil {
		q = q.Where(squirrel.Eq{"payment_method_id": *filter.PaymentMethodID})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.ILike{"number": pattern})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy := "date DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
