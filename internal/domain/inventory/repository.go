package inventory

import (
	"context"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryItemRepository persists inventory items
type InventoryItemRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)

	// FindByIDForUpdate loads the item and row-locks it until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)

	// FindAllForTenant lists items. Filters: "include_inactive", "category", "search".
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InventoryItem, int64, error)

	Create(ctx context.Context, item *InventoryItem) error

	// SaveWithLock updates the item when the stored version is item.Version-1
	SaveWithLock(ctx context.Context, item *InventoryItem) error

	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
