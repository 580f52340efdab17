package inventory

import (
	"time"

	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the input of CreateItem
type CreateItemRequest struct {
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

// ItemListFilter narrows an item listing
type ItemListFilter struct {
	Search          string
	Category        string
	IncludeInactive bool
	Page            int
	PageSize        int
}

// ApplyMovementInput moves stock of one item in or out
type ApplyMovementInput struct {
	TenantID  uuid.UUID
	ItemID    uuid.UUID
	ActorID   uuid.UUID
	Direction string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Notes     string
}

// ItemResponse is the API view of an inventory item
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	MaxQuantity  decimal.Decimal `json:"max_quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Unit         string          `json:"unit"`
	Location     string          `json:"location,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Active       bool            `json:"active"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToItemResponse converts a domain item
func ToItemResponse(i *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		MaxQuantity:  i.MaxQuantity,
		UnitCost:     i.UnitCost,
		SalePrice:    i.SalePrice,
		Unit:         i.Unit,
		Location:     i.Location,
		Supplier:     i.Supplier,
		Barcode:      i.Barcode,
		Notes:        i.Notes,
		Active:       i.Active,
		BelowMinimum: i.IsBelowMinimum(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
		Version:      i.Version,
	}
}

// MovementResult is the item after a movement plus the movement summary
type MovementResult struct {
	Item     ItemResponse              `json:"item"`
	Movement inventory.MovementSummary `json:"movement"`
}

// DeleteResult tells whether an item was removed or only deactivated
type DeleteResult struct {
	Deactivated bool `json:"deactivated"`
}
