package sales

import (
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AggregateTypeSale = "Sale"

const (
	EventTypeSaleCreated   = "SaleCreated"
	EventTypeSaleCompleted = "SaleCompleted"
)

// SaleCreatedEvent is raised when a sale and its lines are recorded
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	Total       decimal.Decimal `json:"total"`
	PaymentType string          `json:"payment_type"`
	StockLines  int             `json:"stock_lines"`
	BasketLines int             `json:"basket_lines"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, sale.ID, sale.TenantID),
		SaleID:          sale.ID,
		Total:           sale.Total,
		PaymentType:     sale.PaymentType,
		StockLines:      len(sale.StockLines),
		BasketLines:     len(sale.BasketLines),
	}
}

// SaleCompletedEvent is raised when cumulative payments reach the sale total
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID uuid.UUID       `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID, sale.TenantID),
		SaleID:          sale.ID,
		Total:           sale.Total,
	}
}
