package models

import (
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FinancialMovementModel is the persistence model for a ledger entry
type FinancialMovementModel struct {
	TenantAggregateModel
	Direction    string          `gorm:"type:varchar(10);not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description  string          `gorm:"type:varchar(500);not null"`
	Category     string          `gorm:"type:varchar(100);index"`
	MovementDate time.Time       `gorm:"not null;index"`
	PaymentForm  string          `gorm:"type:varchar(50)"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FinancialMovementModel) TableName() string {
	return "financial_movements"
}

// ToDomain converts the persistence model to a domain FinancialMovement
func (m *FinancialMovementModel) ToDomain() *finance.FinancialMovement {
	return &finance.FinancialMovement{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Direction:           finance.Direction(m.Direction),
		Amount:              m.Amount,
		Description:         m.Description,
		Category:            m.Category,
		MovementDate:        m.MovementDate,
		PaymentForm:         m.PaymentForm,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain FinancialMovement
func (m *FinancialMovementModel) FromDomain(f *finance.FinancialMovement) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Direction = string(f.Direction)
	m.Amount = f.Amount
	m.Description = f.Description
	m.Category = f.Category
	m.MovementDate = f.MovementDate
	m.PaymentForm = f.PaymentForm
	m.Notes = f.Notes
}

// FinancialMovementModelFromDomain creates a new persistence model from a domain FinancialMovement
func FinancialMovementModelFromDomain(f *finance.FinancialMovement) *FinancialMovementModel {
	m := &FinancialMovementModel{}
	m.FromDomain(f)
	return m
}

// All returns every model managed by the schema, in dependency order
func All() []any {
	return []any{
		&InventoryItemModel{},
		&SaleModel{},
		&SaleItemModel{},
		&PaymentModel{},
		&FinancialMovementModel{},
	}
}
