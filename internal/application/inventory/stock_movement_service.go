package inventory

import (
	"context"
	"fmt"

	"github.com/bizcore/backend/internal/application/ledger"
	"github.com/bizcore/backend/internal/application/transaction"
	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockMovementService manages inventory items and their on-hand quantity
type StockMovementService struct {
	scope          transaction.Scope
	itemRepo       inventory.InventoryItemRepository
	recorder       ledger.Recorder
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockMovementService creates a new StockMovementService
func NewStockMovementService(
	scope transaction.Scope,
	itemRepo inventory.InventoryItemRepository,
	recorder ledger.Recorder,
	logger *zap.Logger,
) *StockMovementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockMovementService{
		scope:    scope,
		itemRepo: itemRepo,
		recorder: recorder,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher for stock events
func (s *StockMovementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ApplyStockMovement adds or removes stock. The item row is locked while the
// new quantity is computed and written, so concurrent movements never drive
// the quantity below zero. Inbound movements with a unit cost are recorded in
// the ledger as a purchase.
func (s *StockMovementService) ApplyStockMovement(ctx context.Context, in ApplyMovementInput) (*MovementResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stock", "apply_movement")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, in.TenantID,
		telemetry.SpanAttrItemID, in.ItemID,
		telemetry.SpanAttrDirection, in.Direction,
		telemetry.SpanAttrQuantity, in.Quantity,
	)

	direction, err := inventory.ParseMovementDirection(in.Direction)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		err := shared.NewValidationError("INVALID_QUANTITY", "quantity must be greater than zero")
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		item    *inventory.InventoryItem
		summary *inventory.MovementSummary
	)
	err = s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		var err error
		item, err = repos.InventoryRepo().FindByIDForUpdate(ctx, in.TenantID, in.ItemID)
		if err != nil {
			return err
		}
		summary, err = item.ApplyMovement(direction, in.Quantity, in.UnitCost, in.Notes)
		if err != nil {
			return err
		}
		return repos.InventoryRepo().SaveWithLock(ctx, item)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if cost := summary.PurchaseCost(); cost.IsPositive() && s.recorder != nil {
		s.recorder.Record(ctx, ledger.Entry{
			TenantID:    in.TenantID,
			Direction:   finance.DirectionOutflow,
			Amount:      cost,
			Description: fmt.Sprintf("Compra de %s %s de %s", in.Quantity, item.Unit, item.Name),
			Category:    finance.CategoryStockPurchase,
			Notes:       in.Notes,
			CreatedBy:   in.ActorID,
		})
	}

	transaction.PublishEvents(ctx, s.eventPublisher, item)

	s.logger.Info("stock moved",
		zap.String("tenant_id", in.TenantID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("direction", string(direction)),
		zap.String("quantity", in.Quantity.String()),
		zap.String("quantity_after", summary.QuantityAfter.String()),
	)

	return &MovementResult{
		Item:     ToItemResponse(item),
		Movement: *summary,
	}, nil
}

// CreateItem registers a new active inventory item
func (s *StockMovementService) CreateItem(ctx context.Context, tenantID, actorID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewInventoryItem(tenantID, actorID, inventory.NewItemParams{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		UnitCost:    req.UnitCost,
		SalePrice:   req.SalePrice,
		Unit:        req.Unit,
		Location:    req.Location,
		Supplier:    req.Supplier,
		Barcode:     req.Barcode,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem returns one item of the tenant
func (s *StockMovementService) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns a page of items ordered by name. Inactive items are
// hidden unless asked for.
func (s *StockMovementService) ListItems(ctx context.Context, tenantID uuid.UUID, f ItemListFilter) (shared.Paginated[ItemResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page = f.Page
	filter.PageSize = f.PageSize
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter = filter.Normalize()

	if f.IncludeInactive {
		filter.Filters["include_inactive"] = true
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Search != "" {
		filter.Filters["search"] = f.Search
	}

	items, total, err := s.itemRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}
	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = ToItemResponse(&items[i])
	}
	return shared.NewPaginated(resp, total, filter.Page, filter.PageSize), nil
}

// DeleteItem removes an item. Items referenced by sale lines are deactivated
// instead so the sales keep pointing at a real row.
func (s *StockMovementService) DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) (*DeleteResult, error) {
	result := &DeleteResult{}
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		item, err := repos.InventoryRepo().FindByIDForUpdate(ctx, tenantID, itemID)
		if err != nil {
			return err
		}
		refs, err := repos.SaleRepo().CountLinesForItem(ctx, tenantID, itemID)
		if err != nil {
			return fmt.Errorf("count sale lines: %w", err)
		}
		if refs > 0 {
			result.Deactivated = true
			if !item.Active {
				return nil
			}
			item.Deactivate()
			return repos.InventoryRepo().SaveWithLock(ctx, item)
		}
		result.Deactivated = false
		return repos.InventoryRepo().DeleteForTenant(ctx, tenantID, itemID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory item deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("item_id", itemID.String()),
		zap.Bool("deactivated", result.Deactivated),
	)
	return result, nil
}
