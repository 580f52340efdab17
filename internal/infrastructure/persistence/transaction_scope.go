package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizcore/backend/internal/application/transaction"
	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgreSQL error codes that are safe to retry from the start of the transaction
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// RetryConfig bounds how a transaction is retried
type RetryConfig struct {
	// MaxAttempts counts the first run
	MaxAttempts int
	BaseBackoff time.Duration
	// Timeout bounds each attempt; zero means no limit beyond the caller's context
	Timeout time.Duration
}

// DefaultRetryConfig returns three attempts starting at 50ms with a 10s timeout
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: 50 * time.Millisecond,
		Timeout:     10 * time.Second,
	}
}

// GormTransactionScope implements transaction.Scope using GORM transactions.
// An attempt that fails with a serialization failure, a deadlock or a stale
// version is rolled back and run again with exponential backoff.
type GormTransactionScope struct {
	db     *gorm.DB
	config RetryConfig
	logger *zap.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB, cfg RetryConfig, log *zap.Logger) *GormTransactionScope {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GormTransactionScope{
		db:     db,
		config: cfg,
		logger: log,
		sleep:  sleepContext,
	}
}

// Execute runs fn within a database transaction. If fn returns an error the
// transaction is rolled back; domain errors are returned unchanged and
// anything else is wrapped as a persistence error.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos transaction.Repositories) error) error {
	backoff := s.config.BaseBackoff
	var err error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		err = s.run(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == s.config.MaxAttempts {
			break
		}

		logger.FromContextOr(ctx, s.logger).Warn("Retrying transaction",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if sleepErr := s.sleep(ctx, backoff); sleepErr != nil {
			err = sleepErr
			break
		}
		backoff *= 2
	}
	return classifyError(err)
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos transaction.Repositories) error) error {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// IsRetryable reports whether err is a transient conflict worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

func classifyError(err error) error {
	var de *shared.DomainError
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return shared.NewPersistenceError("transaction timed out", err)
	case errors.Is(err, context.Canceled):
		return shared.NewPersistenceError("transaction cancelled", err)
	case IsRetryable(err):
		return shared.ErrConcurrencyConflict.WithMessage("transaction conflicted with a concurrent update, try again")
	default:
		return shared.NewPersistenceError("transaction failed", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// InventoryRepo returns the inventory item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// MovementRepo returns the ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MovementRepo() finance.FinancialMovementRepository {
	return NewGormFinancialMovementRepository(r.tx)
}

// Ensure GormTransactionScope implements Scope
var _ transaction.Scope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements Repositories
var _ transaction.Repositories = (*gormTransactionalRepositories)(nil)
