package ledger

import (
	"context"
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Entry is a ledger line requested by one of the core flows
type Entry struct {
	TenantID    uuid.UUID
	Direction   finance.Direction
	Amount      decimal.Decimal
	Description string
	Category    string
	PaymentForm string
	Notes       string
	CreatedBy   uuid.UUID
}

// Recorder appends automatic financial movements. Record never fails the
// caller: the primary operation has already committed when it runs.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// RetryConfig bounds the attempts made for one entry
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
	// Timeout bounds a whole Record call, detached from the request context
	Timeout time.Duration
}

// DefaultRetryConfig returns the default retry bounds
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: 100 * time.Millisecond,
		Timeout:     5 * time.Second,
	}
}

// RetryingRecorder writes each entry through the movement repository,
// retrying with exponential backoff. An entry that still fails is logged at
// error level with every field needed to replay it.
type RetryingRecorder struct {
	repo   finance.FinancialMovementRepository
	config RetryConfig
	logger *zap.Logger
	sleep  func(time.Duration)
}

// NewRetryingRecorder creates a RetryingRecorder
func NewRetryingRecorder(repo finance.FinancialMovementRepository, cfg RetryConfig, log *zap.Logger) *RetryingRecorder {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryingRecorder{
		repo:   repo,
		config: cfg,
		logger: log,
		sleep:  time.Sleep,
	}
}

// Record builds the movement and persists it, retrying transient failures
func (r *RetryingRecorder) Record(ctx context.Context, entry Entry) {
	log := logger.FromContextOr(ctx, r.logger)
	fields := entryFields(entry)

	movement, err := finance.NewFinancialMovement(entry.TenantID, entry.CreatedBy, finance.MovementParams{
		Direction:   entry.Direction,
		Amount:      entry.Amount,
		Description: entry.Description,
		Category:    entry.Category,
		PaymentForm: entry.PaymentForm,
		Notes:       entry.Notes,
	})
	if err != nil {
		log.Error("ledger entry rejected", append(fields, zap.Error(err))...)
		return
	}

	// The request may be cancelled as soon as the response is written
	writeCtx := context.WithoutCancel(ctx)
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(writeCtx, r.config.Timeout)
		defer cancel()
	}

	backoff := r.config.BaseBackoff
	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err = r.repo.Create(writeCtx, movement)
		if err == nil {
			log.Debug("ledger entry recorded",
				zap.String("movement_id", movement.ID.String()),
				zap.Int("attempt", attempt),
			)
			return
		}
		if shared.IsKind(err, shared.KindValidation) || writeCtx.Err() != nil {
			break
		}
		if attempt < r.config.MaxAttempts {
			log.Warn("ledger entry write failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			r.sleep(backoff)
			backoff *= 2
		}
	}

	log.Error("ledger entry lost",
		append(fields,
			zap.String("movement_id", movement.ID.String()),
			zap.Int("max_attempts", r.config.MaxAttempts),
			zap.Error(err),
		)...,
	)
}

func entryFields(e Entry) []zap.Field {
	return []zap.Field{
		zap.String("tenant_id", e.TenantID.String()),
		zap.String("direction", string(e.Direction)),
		zap.String("amount", e.Amount.String()),
		zap.String("description", e.Description),
		zap.String("category", e.Category),
		zap.String("payment_form", e.PaymentForm),
		zap.String("notes", e.Notes),
	}
}

var _ Recorder = (*RetryingRecorder)(nil)
