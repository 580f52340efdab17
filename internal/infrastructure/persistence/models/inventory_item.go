package models

import (
	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
type InventoryItemModel struct {
	TenantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Location    string          `gorm:"type:varchar(100)"`
	Supplier    string          `gorm:"type:varchar(200)"`
	Barcode     string          `gorm:"type:varchar(64);index"`
	Notes       string          `gorm:"type:text"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem entity.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Category:            m.Category,
		Quantity:            m.Quantity,
		MinQuantity:         m.MinQuantity,
		MaxQuantity:         m.MaxQuantity,
		UnitCost:            m.UnitCost,
		SalePrice:           m.SalePrice,
		Unit:                m.Unit,
		Location:            m.Location,
		Supplier:            m.Supplier,
		Barcode:             m.Barcode,
		Notes:               m.Notes,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem entity.
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.Name = i.Name
	m.Category = i.Category
	m.Quantity = i.Quantity
	m.MinQuantity = i.MinQuantity
	m.MaxQuantity = i.MaxQuantity
	m.UnitCost = i.UnitCost
	m.SalePrice = i.SalePrice
	m.Unit = i.Unit
	m.Location = i.Location
	m.Supplier = i.Supplier
	m.Barcode = i.Barcode
	m.Notes = i.Notes
	m.Active = i.Active
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem entity.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
