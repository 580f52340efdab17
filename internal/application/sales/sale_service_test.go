package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizcore/backend/internal/application/ledger"
	"github.com/bizcore/backend/internal/application/transaction"
	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) FindCredit(ctx context.Context, tenantID uuid.UUID) ([]sales.Sale, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockSaleRepository) CountLinesForItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of finance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaidBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaidBySales(ctx context.Context, tenantID uuid.UUID, saleIDs []uuid.UUID) (map[uuid.UUID][]finance.Payment, error) {
	args := m.Called(ctx, tenantID, saleIDs)
	return args.Get(0).(map[uuid.UUID][]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).(int64), args.Error(1)
}

type recordingLedger struct {
	entries []ledger.Entry
}

func (r *recordingLedger) Record(_ context.Context, e ledger.Entry) {
	r.entries = append(r.entries, e)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type saleFixture struct {
	saleRepo    *MockSaleRepository
	paymentRepo *MockPaymentRepository
	ledger      *recordingLedger
	publisher   *recordingPublisher
	svc         *SaleService
	tenantID    uuid.UUID
	actorID     uuid.UUID
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		saleRepo:    new(MockSaleRepository),
		paymentRepo: new(MockPaymentRepository),
		ledger:      &recordingLedger{},
		publisher:   &recordingPublisher{},
		tenantID:    uuid.New(),
		actorID:     uuid.New(),
	}
	scope := &transaction.NoOpScope{Sales: f.saleRepo, Payments: f.paymentRepo}
	f.svc = NewSaleService(scope, f.saleRepo, f.paymentRepo, f.ledger, nil)
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func mixedRequest(paymentType string) CreateSaleRequest {
	return CreateSaleRequest{
		Total:       decimal.RequireFromString("99.90"),
		PaymentType: paymentType,
		Items: []SaleLineRequest{
			{ItemRef: uuid.NewString(), Quantity: 2, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20)},
			{ItemRef: uuid.NewString(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			{ItemRef: "cesta-42", Name: "Cesta Básica", Quantity: 1, UnitPrice: decimal.NewFromInt(70), Subtotal: decimal.NewFromInt(70)},
		},
	}
}

func TestCreateSale_CashSaleRecordsLedger(t *testing.T) {
	f := newSaleFixture()
	f.saleRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *sales.Sale) bool {
		return len(s.StockLines) == 2 && len(s.BasketLines) == 1 && s.Status == sales.SaleStatusPending
	})).Return(nil).Once()

	resp, err := f.svc.CreateSale(context.Background(), f.tenantID, f.actorID, mixedRequest(""))
	require.NoError(t, err)

	assert.Equal(t, "99.9", resp.Total.String(), "total is stored as given, not recomputed")
	assert.Equal(t, "dinheiro", resp.PaymentType)
	assert.Equal(t, "retirada", resp.DeliveryMethod)
	assert.Len(t, resp.Items, 2)
	require.Len(t, resp.Baskets, 1)
	assert.Equal(t, "42", resp.Baskets[0].BasketID)
	assert.Len(t, resp.AllItems, 3)

	require.Len(t, f.ledger.entries, 1)
	entry := f.ledger.entries[0]
	assert.Equal(t, finance.DirectionInflow, entry.Direction)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("99.90")))
	assert.Equal(t, "Venda - Cliente: Não informado", entry.Description)
	assert.Equal(t, finance.CategorySales, entry.Category)
	assert.Equal(t, "dinheiro", entry.PaymentForm)
	assert.Equal(t, "Venda ID: "+resp.ID.String(), entry.Notes)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, sales.EventTypeSaleCreated, f.publisher.events[0].EventType())
	f.saleRepo.AssertExpectations(t)
}

func TestCreateSale_CreditTypesDeferLedger(t *testing.T) {
	for _, pt := range []string{"fiado", "a prazo", "parcelado"} {
		t.Run(pt, func(t *testing.T) {
			f := newSaleFixture()
			f.saleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

			_, err := f.svc.CreateSale(context.Background(), f.tenantID, f.actorID, mixedRequest(pt))
			require.NoError(t, err)
			assert.Empty(t, f.ledger.entries)
		})
	}

	t.Run("credit match is case-sensitive", func(t *testing.T) {
		f := newSaleFixture()
		f.saleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		clientID := uuid.New()
		req := mixedRequest("Fiado")
		req.ClientID = &clientID
		_, err := f.svc.CreateSale(context.Background(), f.tenantID, f.actorID, req)
		require.NoError(t, err)
		require.Len(t, f.ledger.entries, 1)
		assert.Equal(t, "Venda - Cliente: "+clientID.String(), f.ledger.entries[0].Description)
	})
}

func TestCreateSale_Failures(t *testing.T) {
	t.Run("empty sale", func(t *testing.T) {
		f := newSaleFixture()
		_, err := f.svc.CreateSale(context.Background(), f.tenantID, f.actorID, CreateSaleRequest{Total: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		assert.Contains(t, err.Error(), "empty sale")
		f.saleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("transaction failure skips ledger and events", func(t *testing.T) {
		f := newSaleFixture()
		f.saleRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		_, err := f.svc.CreateSale(context.Background(), f.tenantID, f.actorID, mixedRequest("pix"))
		assert.EqualError(t, err, "insert failed")
		assert.Empty(t, f.ledger.entries)
		assert.Empty(t, f.publisher.events)
	})
}

func newCreditSale(t *testing.T, tenantID uuid.UUID, total int64) sales.Sale {
	t.Helper()
	s, err := sales.NewSale(tenantID, uuid.New(), sales.NewSaleParams{
		Total:       decimal.NewFromInt(total),
		PaymentType: "fiado",
		Lines:       []sales.LineRequest{{ItemRef: uuid.NewString(), Quantity: 1, UnitPrice: decimal.NewFromInt(total)}},
	})
	require.NoError(t, err)
	return *s
}

func TestListOutstandingCredit(t *testing.T) {
	f := newSaleFixture()
	open := newCreditSale(t, f.tenantID, 100)
	settled := newCreditSale(t, f.tenantID, 50)

	earlier := time.Now().Add(-time.Hour)
	nextA := time.Now().AddDate(0, 0, 7)
	nextB := time.Now().AddDate(0, 0, 14)
	p1 := finance.Payment{SaleID: open.ID, Amount: decimal.NewFromInt(30), Status: finance.PaymentStatusPaid, PaidAt: &earlier, NextPaymentDate: &nextA}
	now := time.Now()
	p2 := finance.Payment{SaleID: open.ID, Amount: decimal.NewFromInt(20), Status: finance.PaymentStatusPaid, PaidAt: &now, NextPaymentDate: &nextB}
	p3 := finance.Payment{SaleID: settled.ID, Amount: decimal.NewFromInt(50), Status: finance.PaymentStatusPaid, PaidAt: &now}

	f.saleRepo.On("FindCredit", mock.Anything, f.tenantID).Return([]sales.Sale{open, settled}, nil)
	f.paymentRepo.On("FindPaidBySales", mock.Anything, f.tenantID, []uuid.UUID{open.ID, settled.ID}).
		Return(map[uuid.UUID][]finance.Payment{
			open.ID:    {p1, p2},
			settled.ID: {p3},
		}, nil)

	result, err := f.svc.ListOutstandingCredit(context.Background(), f.tenantID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, open.ID, result[0].SaleID)
	assert.True(t, result[0].TotalPaid.Equal(decimal.NewFromInt(50)))
	assert.True(t, result[0].PendingBalance.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, result[0].NextPaymentDate)
	assert.True(t, result[0].NextPaymentDate.Equal(nextB))
}

func TestListOutstandingCredit_NoCreditSales(t *testing.T) {
	f := newSaleFixture()
	f.saleRepo.On("FindCredit", mock.Anything, f.tenantID).Return([]sales.Sale{}, nil)

	result, err := f.svc.ListOutstandingCredit(context.Background(), f.tenantID)
	require.NoError(t, err)
	assert.Empty(t, result)
	f.paymentRepo.AssertNotCalled(t, "FindPaidBySales", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteSale(t *testing.T) {
	t.Run("refused when payments exist", func(t *testing.T) {
		f := newSaleFixture()
		sale := newCreditSale(t, f.tenantID, 10)
		f.saleRepo.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(&sale, nil)
		f.paymentRepo.On("CountBySale", mock.Anything, f.tenantID, sale.ID).Return(int64(1), nil)

		err := f.svc.DeleteSale(context.Background(), f.tenantID, sale.ID)
		assert.ErrorIs(t, err, shared.ErrHasPayments)
		f.saleRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes sale without payments", func(t *testing.T) {
		f := newSaleFixture()
		sale := newCreditSale(t, f.tenantID, 10)
		f.saleRepo.On("FindByIDForUpdate", mock.Anything, f.tenantID, sale.ID).Return(&sale, nil)
		f.paymentRepo.On("CountBySale", mock.Anything, f.tenantID, sale.ID).Return(int64(0), nil)
		f.saleRepo.On("DeleteForTenant", mock.Anything, f.tenantID, sale.ID).Return(nil)

		require.NoError(t, f.svc.DeleteSale(context.Background(), f.tenantID, sale.ID))
		f.saleRepo.AssertExpectations(t)
	})

	t.Run("unknown sale", func(t *testing.T) {
		f := newSaleFixture()
		id := uuid.New()
		f.saleRepo.On("FindByIDForUpdate", mock.Anything, f.tenantID, id).Return(nil, shared.NewNotFoundError("sale"))

		err := f.svc.DeleteSale(context.Background(), f.tenantID, id)
		assert.True(t, shared.IsKind(err, shared.KindNotFound))
	})
}

func TestListSales(t *testing.T) {
	f := newSaleFixture()
	sale := newCreditSale(t, f.tenantID, 10)
	f.saleRepo.On("FindAllForTenant", mock.Anything, f.tenantID, mock.MatchedBy(func(fl shared.Filter) bool {
		return fl.Filters["status"] == sales.SaleStatusPending && fl.PageSize == 5
	})).Return([]sales.Sale{sale}, int64(11), nil)

	page, err := f.svc.ListSales(context.Background(), f.tenantID, SaleListFilter{Status: "PENDING", PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].LineCount)

	_, err = f.svc.ListSales(context.Background(), f.tenantID, SaleListFilter{Status: "pending"})
	assert.True(t, shared.IsKind(err, shared.KindValidation))
}
