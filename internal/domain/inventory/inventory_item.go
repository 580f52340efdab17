package inventory

import (
	"strings"
	"time"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDirection is the sign of a stock movement
type MovementDirection string

const (
	DirectionInbound  MovementDirection = "inbound"
	DirectionOutbound MovementDirection = "outbound"
)

// ParseMovementDirection accepts inbound/outbound and the entrada/saida labels
func ParseMovementDirection(raw string) (MovementDirection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inbound", "entrada":
		return DirectionInbound, nil
	case "outbound", "saida", "saída":
		return DirectionOutbound, nil
	}
	return "", shared.NewValidationError("INVALID_MOVEMENT_TYPE", "invalid movement type")
}

// InventoryItem is one stock-keeping unit of a tenant
type InventoryItem struct {
	shared.TenantAggregateRoot
	Name        string
	Category    string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	MaxQuantity decimal.Decimal
	UnitCost    decimal.Decimal
	SalePrice   decimal.Decimal
	Unit        string
	Location    string
	Supplier    string
	Barcode     string
	Notes       string
	Active      bool
}

// NewItemParams carries the catalog fields of a new item
type NewItemParams struct {
	Name        string
	Category    string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	MaxQuantity decimal.Decimal
	UnitCost    decimal.Decimal
	SalePrice   decimal.Decimal
	Unit        string
	Location    string
	Supplier    string
	Barcode     string
	Notes       string
}

// NewInventoryItem creates an active item
func NewInventoryItem(tenantID, createdBy uuid.UUID, p NewItemParams) (*InventoryItem, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_TENANT", "tenant is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "item name is required")
	}
	for field, v := range map[string]decimal.Decimal{
		"quantity":     p.Quantity,
		"min_quantity": p.MinQuantity,
		"max_quantity": p.MaxQuantity,
		"unit_cost":    p.UnitCost,
		"sale_price":   p.SalePrice,
	} {
		if v.IsNegative() {
			return nil, shared.NewValidationError("INVALID_"+strings.ToUpper(field), field+" cannot be negative")
		}
	}
	if p.Unit == "" {
		p.Unit = "un"
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		Name:                p.Name,
		Category:            p.Category,
		Quantity:            p.Quantity,
		MinQuantity:         p.MinQuantity,
		MaxQuantity:         p.MaxQuantity,
		UnitCost:            p.UnitCost,
		SalePrice:           p.SalePrice,
		Unit:                p.Unit,
		Location:            p.Location,
		Supplier:            p.Supplier,
		Barcode:             p.Barcode,
		Notes:               p.Notes,
		Active:              true,
	}, nil
}

// MovementSummary describes an applied movement. It is returned to the
// caller and never stored.
type MovementSummary struct {
	Direction      MovementDirection `json:"direction"`
	Quantity       decimal.Decimal   `json:"quantity"`
	QuantityBefore decimal.Decimal   `json:"quantity_before"`
	QuantityAfter  decimal.Decimal   `json:"quantity_after"`
	Notes          string            `json:"notes,omitempty"`
	UnitCost       decimal.Decimal   `json:"unit_cost"`
	Timestamp      time.Time         `json:"timestamp"`
}

// ApplyMovement changes the on-hand quantity by quantity in direction.
// Outbound movements that would leave the quantity below zero fail and leave
// the item untouched.
func (i *InventoryItem) ApplyMovement(direction MovementDirection, quantity, unitCost decimal.Decimal, notes string) (*MovementSummary, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewValidationError("INVALID_COST", "unit cost cannot be negative")
	}

	before := i.Quantity
	var after decimal.Decimal
	switch direction {
	case DirectionInbound:
		after = before.Add(quantity)
	case DirectionOutbound:
		after = before.Sub(quantity)
		if after.IsNegative() {
			return nil, shared.ErrInsufficientStock
		}
	default:
		return nil, shared.NewValidationError("INVALID_MOVEMENT_TYPE", "invalid movement type")
	}

	i.Quantity = after
	i.IncrementVersion()

	summary := &MovementSummary{
		Direction:      direction,
		Quantity:       quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Notes:          notes,
		UnitCost:       unitCost,
		Timestamp:      i.UpdatedAt,
	}
	i.AddDomainEvent(NewStockMovedEvent(i, summary))
	return summary, nil
}

// PurchaseCost is the cost of an inbound movement rounded to cents, zero when
// no unit cost was given
func (s *MovementSummary) PurchaseCost() decimal.Decimal {
	if s.Direction != DirectionInbound || !s.UnitCost.IsPositive() {
		return decimal.Zero
	}
	return s.Quantity.Mul(s.UnitCost).Round(shared.MoneyScale)
}

// IsBelowMinimum reports whether the item needs restocking
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.MinQuantity.IsPositive() && i.Quantity.LessThan(i.MinQuantity)
}

// Deactivate soft-deletes the item
func (i *InventoryItem) Deactivate() {
	if !i.Active {
		return
	}
	i.Active = false
	i.IncrementVersion()
}
