package models

import (
	"time"

	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
// Basket lines live in a jsonb column on the header row; stock lines live in sale_items.
type SaleModel struct {
	TenantAggregateModel
	ClientID       *uuid.UUID         `gorm:"type:uuid;index"`
	VendorID       *uuid.UUID         `gorm:"type:uuid"`
	Total          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Discount       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status         string             `gorm:"type:varchar(20);not null;index"`
	Notes          string             `gorm:"type:text"`
	PaymentType    string             `gorm:"type:varchar(50);not null;index"`
	DeliveryDate   *time.Time
	DeliveryMethod string             `gorm:"type:varchar(50)"`
	BasketLines    []sales.BasketLine `gorm:"type:jsonb;serializer:json"`
	Items          []SaleItemModel    `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale. Stock lines are
// only present when Items was loaded.
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ClientID:            m.ClientID,
		VendorID:            m.VendorID,
		Total:               m.Total,
		Discount:            m.Discount,
		Status:              sales.SaleStatus(m.Status),
		Notes:               m.Notes,
		PaymentType:         m.PaymentType,
		DeliveryDate:        m.DeliveryDate,
		DeliveryMethod:      m.DeliveryMethod,
		StockLines:          make([]sales.StockLine, len(m.Items)),
		BasketLines:         m.BasketLines,
	}
	if sale.BasketLines == nil {
		sale.BasketLines = []sales.BasketLine{}
	}
	for i := range m.Items {
		sale.StockLines[i] = m.Items[i].ToDomain()
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.ClientID = s.ClientID
	m.VendorID = s.VendorID
	m.Total = s.Total
	m.Discount = s.Discount
	m.Status = string(s.Status)
	m.Notes = s.Notes
	m.PaymentType = s.PaymentType
	m.DeliveryDate = s.DeliveryDate
	m.DeliveryMethod = s.DeliveryMethod
	m.BasketLines = s.BasketLines
	if m.BasketLines == nil {
		m.BasketLines = []sales.BasketLine{}
	}
	m.Items = make([]SaleItemModel, len(s.StockLines))
	for i, line := range s.StockLines {
		m.Items[i] = SaleItemModelFromDomain(s, line)
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SaleItemModel is one stock-backed line of a sale
type SaleItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the line to its domain form
func (m *SaleItemModel) ToDomain() sales.StockLine {
	return sales.StockLine{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
	}
}

// SaleItemModelFromDomain maps a stock line of sale
func SaleItemModelFromDomain(s *sales.Sale, line sales.StockLine) SaleItemModel {
	return SaleItemModel{
		ID:        line.ID,
		TenantID:  s.TenantID,
		SaleID:    s.ID,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		Subtotal:  line.Subtotal,
		CreatedAt: s.CreatedAt,
	}
}
