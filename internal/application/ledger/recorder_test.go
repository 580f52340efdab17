package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockMovementRepository is a mock implementation of finance.FinancialMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(ctx context.Context, movement *finance.FinancialMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FinancialMovement, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.FinancialMovement), args.Get(1).(int64), args.Error(2)
}

func newTestRecorder(repo finance.FinancialMovementRepository) (*RetryingRecorder, *observer.ObservedLogs, *[]time.Duration) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRetryingRecorder(repo, RetryConfig{MaxAttempts: 3, BaseBackoff: 10 * time.Millisecond}, zap.New(core))
	var sleeps []time.Duration
	r.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return r, logs, &sleeps
}

func testEntry() Entry {
	return Entry{
		TenantID:    uuid.New(),
		Direction:   finance.DirectionInflow,
		Amount:      decimal.NewFromInt(100),
		Description: "Venda - Cliente: Não informado",
		Category:    finance.CategorySales,
		PaymentForm: "dinheiro",
		CreatedBy:   uuid.New(),
	}
}

func TestRetryingRecorder_Record(t *testing.T) {
	t.Run("writes movement on first attempt", func(t *testing.T) {
		repo := new(MockMovementRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(m *finance.FinancialMovement) bool {
			return m.Direction == finance.DirectionInflow &&
				m.Amount.Equal(decimal.NewFromInt(100)) &&
				m.Category == finance.CategorySales
		})).Return(nil).Once()

		r, logs, sleeps := newTestRecorder(repo)
		r.Record(context.Background(), testEntry())

		repo.AssertExpectations(t)
		assert.Empty(t, *sleeps)
		assert.Zero(t, logs.FilterMessage("ledger entry lost").Len())
	})

	t.Run("retries with exponential backoff then succeeds", func(t *testing.T) {
		repo := new(MockMovementRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Twice()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		r, logs, sleeps := newTestRecorder(repo)
		r.Record(context.Background(), testEntry())

		repo.AssertNumberOfCalls(t, "Create", 3)
		assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *sleeps)
		assert.Equal(t, 2, logs.FilterMessage("ledger entry write failed, retrying").Len())
		assert.Zero(t, logs.FilterMessage("ledger entry lost").Len())
	})

	t.Run("logs lost entry after max attempts without panicking", func(t *testing.T) {
		repo := new(MockMovementRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		r, logs, _ := newTestRecorder(repo)
		assert.NotPanics(t, func() { r.Record(context.Background(), testEntry()) })

		repo.AssertNumberOfCalls(t, "Create", 3)
		lost := logs.FilterMessage("ledger entry lost").All()
		require.Len(t, lost, 1)
		fields := lost[0].ContextMap()
		assert.Equal(t, "100", fields["amount"])
		assert.Equal(t, "INFLOW", fields["direction"])
	})

	t.Run("invalid entry is logged and never written", func(t *testing.T) {
		repo := new(MockMovementRepository)
		r, logs, _ := newTestRecorder(repo)

		entry := testEntry()
		entry.Amount = decimal.Zero
		r.Record(context.Background(), entry)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Equal(t, 1, logs.FilterMessage("ledger entry rejected").Len())
	})

	t.Run("survives cancelled request context", func(t *testing.T) {
		repo := new(MockMovementRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		r, _, _ := newTestRecorder(repo)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r.Record(ctx, testEntry())

		repo.AssertExpectations(t)
	})
}
