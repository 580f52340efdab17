package finance

import (
	"context"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository persists payments received against sales
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]Payment, error)
	FindPaidBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]Payment, error)
	// FindPaidBySales groups PAID payments by sale id
	FindPaidBySales(ctx context.Context, tenantID uuid.UUID, saleIDs []uuid.UUID) (map[uuid.UUID][]Payment, error)
	CountBySale(ctx context.Context, tenantID, saleID uuid.UUID) (int64, error)
}

// FinancialMovementRepository persists ledger entries. Entries are never
// updated through this interface.
type FinancialMovementRepository interface {
	Create(ctx context.Context, movement *FinancialMovement) error
	// FindAllForTenant lists entries. Filters: "direction", "category", "from", "to".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FinancialMovement, int64, error)
}
