package sale

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/internal/core/types"
	"puntoventa/internal/domain"
	"puntoventa/internal/domain/pricing"
	"puntoventa/pkg/numerator"
)

type memRepo struct {
	sales   map[id.ID]*Sale
	lines   map[id.ID][]Line
	origins map[id.ID][]Origin
}

func newMemRepo() *memRepo {
	return &memRepo{
		sales:   make(map[id.ID]*Sale),
		lines:   make(map[id.ID][]Line),
		origins: make(map[id.ID][]Origin),
	}
}

func (r *memRepo) Create(_ context.Context, doc *Sale) error {
	r.sales[doc.ID] = doc
	return nil
}

func (r *memRepo) GetByID(_ context.Context, docID id.ID) (*Sale, error) {
	doc, ok := r.sales[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID)
	}
	cp := *doc
	return &cp, nil
}

func (r *memRepo) GetByNumber(_ context.Context, number string) (*Sale, error) {
	for _, doc := range r.sales {
		if doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("sale", number)
}

func (r *memRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *memRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *memRepo) SaveOrigins(_ context.Context, docID id.ID, origins []Origin) error {
	r.origins[docID] = origins
	return nil
}

func (r *memRepo) GetOrigins(_ context.Context, docID id.ID) ([]Origin, error) {
	return r.origins[docID], nil
}

func (r *memRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Sale], error) {
	var items []*Sale
	for _, doc := range r.sales {
		items = append(items, doc)
	}
	return domain.ListResult[*Sale]{Items: items, TotalCount: int64(len(items))}, nil
}

type stubResolver struct {
	adjustment pricing.PaymentMethodAdjustment
	option     pricing.InstallmentOption
	err        error
}

func (s *stubResolver) ResolveSelection(_ context.Context, _ id.ID, count int) (pricing.PaymentMethodAdjustment, pricing.InstallmentOption, error) {
	if s.err != nil {
		return pricing.PaymentMethodAdjustment{}, pricing.InstallmentOption{}, s.err
	}
	opt := s.option
	if opt.Count == 0 {
		opt.Count = count
	}
	return s.adjustment, opt, nil
}

type seqGenerator struct {
	next int64
}

func (g *seqGenerator) GetNextNumber(_ context.Context, cfg numerator.Config, _ *numerator.Options, period time.Time) (string, error) {
	g.next++
	return fmt.Sprintf("%s-%s-%05d", cfg.Prefix, period.Format("2006"), g.next), nil
}

func (g *seqGenerator) SetNextNumber(_ context.Context, _ numerator.Config, _ time.Time, value int64) error {
	g.next = value
	return nil
}

type spyAudit struct {
	entityType string
	action     string
	changes    map[string]any
	calls      int
}

func (a *spyAudit) LogChange(_ context.Context, entityType string, _ id.ID, action string, changes map[string]any) error {
	a.entityType = entityType
	a.action = action
	a.changes = changes
	a.calls++
	return nil
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func money(s string) types.Money {
	return types.MustMoney(s)
}

func newTestService(resolver *stubResolver) (*Service, *memRepo, *spyAudit) {
	repo := newMemRepo()
	audit := &spyAudit{}
	svc := NewService(repo, pricing.NewEngine(), resolver, &seqGenerator{}, noopTxManager{}, audit)
	return svc, repo, audit
}

func cardResolver() *stubResolver {
	return &stubResolver{
		adjustment: pricing.PaymentMethodAdjustment{
			MethodID: id.New(),
			Label:    "Tarjeta de crédito",
			Percent:  money("0"),
		},
		option: pricing.InstallmentOption{Count: 3, SurchargePercent: money("15")},
	}
}

func TestConfirm(t *testing.T) {
	resolver := cardResolver()
	svc, repo, audit := newTestService(resolver)
	ctx := context.Background()

	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Remera", UnitListPrice: money("10000"), Quantity: 1},
		},
		PaymentMethodID:  resolver.adjustment.MethodID,
		InstallmentCount: 3,
	}

	doc, breakdown, err := svc.Confirm(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Number != "TK-"+time.Now().Format("2006")+"-00001" {
		t.Errorf("unexpected ticket number %s", doc.Number)
	}
	if !doc.Total.Equal(money("11500")) {
		t.Errorf("expected total 11500, got %s", doc.Total)
	}
	if doc.InstallmentCount != 3 {
		t.Errorf("expected 3 installments, got %d", doc.InstallmentCount)
	}
	if !doc.AmountPerInstallment.Equal(money("3833.33")) {
		t.Errorf("expected per installment 3833.33, got %s", doc.AmountPerInstallment)
	}
	if !doc.LastInstallmentAmount.Equal(money("3833.34")) {
		t.Errorf("expected last installment 3833.34, got %s", doc.LastInstallmentAmount)
	}
	if !doc.RoundingRemainder.Equal(money("0.01")) {
		t.Errorf("expected remainder 0.01, got %s", doc.RoundingRemainder)
	}
	if !breakdown.FinalTotal.Equal(doc.Total) {
		t.Error("breakdown and document totals differ")
	}

	if _, ok := repo.sales[doc.ID]; !ok {
		t.Fatal("sale not persisted")
	}
	if len(repo.lines[doc.ID]) != 1 {
		t.Errorf("expected 1 persisted line, got %d", len(repo.lines[doc.ID]))
	}
	if len(repo.origins[doc.ID]) != len(breakdown.Origins) {
		t.Errorf("expected %d persisted origins, got %d", len(breakdown.Origins), len(repo.origins[doc.ID]))
	}

	if audit.calls != 1 || audit.entityType != "Sale" || audit.action != "confirm" {
		t.Errorf("unexpected audit call: %+v", audit)
	}
}

func TestConfirmRecomputesServerSide(t *testing.T) {
	// Two identical confirmations produce identical numbers no matter
	// what the client believed the totals were.
	resolver := cardResolver()
	svc, _, _ := newTestService(resolver)
	ctx := context.Background()

	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Pantalón", UnitListPrice: money("333.33"), Quantity: 3},
		},
		PaymentMethodID:  resolver.adjustment.MethodID,
		InstallmentCount: 3,
	}

	first, _, err := svc.Confirm(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := svc.Confirm(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Total.Equal(second.Total) {
		t.Errorf("totals differ: %s vs %s", first.Total, second.Total)
	}
	if first.Number == second.Number {
		t.Error("ticket numbers must be unique")
	}
}

func TestConfirmFreeSaleRequiresConfirmation(t *testing.T) {
	resolver := &stubResolver{
		adjustment: pricing.PaymentMethodAdjustment{MethodID: id.New(), Label: "Efectivo", Percent: money("0")},
		option:     pricing.InstallmentOption{Count: 1, SurchargePercent: money("0")},
	}
	svc, repo, _ := newTestService(resolver)
	ctx := context.Background()

	hundredOff := money("100")
	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Muestra", UnitListPrice: money("500"), Quantity: 1},
		},
		PaymentMethodID:       resolver.adjustment.MethodID,
		InstallmentCount:      1,
		ManualDiscountPercent: &hundredOff,
	}

	_, _, err := svc.Confirm(ctx, input)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeFreeSale {
		t.Fatalf("expected code %s, got %v", apperror.CodeFreeSale, err)
	}
	if len(repo.sales) != 0 {
		t.Error("free sale must not be stored without confirmation")
	}

	input.FreeSaleConfirmed = true
	doc, _, err := svc.Confirm(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.FreeSaleConfirmed {
		t.Error("expected FreeSaleConfirmed on stored document")
	}
	if !doc.Total.IsZero() {
		t.Errorf("expected zero total, got %s", doc.Total)
	}
}

func TestConfirmPropagatesResolverError(t *testing.T) {
	resolver := &stubResolver{
		err: apperror.NewBusinessRule(apperror.CodeInactiveMethod, "payment method is not selectable"),
	}
	svc, repo, _ := newTestService(resolver)

	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Remera", UnitListPrice: money("100"), Quantity: 1},
		},
		PaymentMethodID:  id.New(),
		InstallmentCount: 1,
	}

	_, _, err := svc.Confirm(context.Background(), input)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeInactiveMethod {
		t.Errorf("expected code %s, got %v", apperror.CodeInactiveMethod, err)
	}
	if len(repo.sales) != 0 {
		t.Error("nothing must be stored when the selection is invalid")
	}
}

func TestConfirmPersistsOriginsSeparately(t *testing.T) {
	// Surcharge method plus manual discount: both origins stored,
	// never netted into one figure.
	resolver := &stubResolver{
		adjustment: pricing.PaymentMethodAdjustment{MethodID: id.New(), Label: "Tarjeta", Percent: money("10")},
		option:     pricing.InstallmentOption{Count: 1, SurchargePercent: money("0")},
	}
	svc, repo, _ := newTestService(resolver)

	five := money("5")
	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Campera", UnitListPrice: money("1000"), Quantity: 1},
		},
		PaymentMethodID:       resolver.adjustment.MethodID,
		InstallmentCount:      1,
		ManualDiscountPercent: &five,
	}

	doc, _, err := svc.Confirm(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origins := repo.origins[doc.ID]
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(origins))
	}
	kinds := map[string]bool{}
	for _, o := range origins {
		kinds[o.Kind] = true
	}
	if !kinds[string(pricing.OriginPaymentMethod)] || !kinds[string(pricing.OriginManual)] {
		t.Errorf("expected payment_method and manual origins, got %+v", origins)
	}
}

func TestGetByIDLoadsParts(t *testing.T) {
	resolver := cardResolver()
	svc, _, _ := newTestService(resolver)
	ctx := context.Background()

	input := ConfirmInput{
		Items: []pricing.LineItem{
			{ID: id.New(), Label: "Remera", UnitListPrice: money("100"), Quantity: 2},
		},
		PaymentMethodID:  resolver.adjustment.MethodID,
		InstallmentCount: 3,
	}
	doc, _, err := svc.Confirm(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Errorf("expected 1 line, got %d", len(got.Lines))
	}
	if len(got.Origins) == 0 {
		t.Error("expected origins loaded")
	}

	byNumber, err := svc.GetByNumber(ctx, doc.Number)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byNumber.ID != doc.ID {
		t.Error("GetByNumber returned a different document")
	}
}
