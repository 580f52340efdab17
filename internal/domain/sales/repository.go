package sales

import (
	"context"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository persists sales together with their stock lines
type SaleRepository interface {
	// FindByIDForTenant loads a sale with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate loads a sale header and row-locks it until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindAllForTenant lists sales. Filters: "status", "payment_type".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, int64, error)

	// FindCredit lists non-cancelled sales whose payment type defers payment
	FindCredit(ctx context.Context, tenantID uuid.UUID) ([]Sale, error)

	// Create inserts the header, the basket payload and every stock line
	Create(ctx context.Context, sale *Sale) error

	// SaveWithLock updates the header when the stored version is sale.Version-1
	SaveWithLock(ctx context.Context, sale *Sale) error

	// DeleteForTenant removes the header and its stock lines
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountLinesForItem counts stock lines referencing an inventory item
	CountLinesForItem(ctx context.Context, tenantID, itemID uuid.UUID) (int64, error)
}
