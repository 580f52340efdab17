package inventory

import (
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AggregateTypeInventoryItem = "InventoryItem"

const EventTypeStockMoved = "StockMoved"

// StockMovedEvent is raised after an inbound or outbound movement is applied
type StockMovedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID         `json:"item_id"`
	Direction      MovementDirection `json:"direction"`
	Quantity       decimal.Decimal   `json:"quantity"`
	QuantityBefore decimal.Decimal   `json:"quantity_before"`
	QuantityAfter  decimal.Decimal   `json:"quantity_after"`
	BelowMinimum   bool              `json:"below_minimum"`
}

// NewStockMovedEvent creates a new StockMovedEvent
func NewStockMovedEvent(item *InventoryItem, s *MovementSummary) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, AggregateTypeInventoryItem, item.ID, item.TenantID),
		ItemID:          item.ID,
		Direction:       s.Direction,
		Quantity:        s.Quantity,
		QuantityBefore:  s.QuantityBefore,
		QuantityAfter:   s.QuantityAfter,
		BelowMinimum:    item.IsBelowMinimum(),
	}
}
