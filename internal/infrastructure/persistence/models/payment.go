package models

import (
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for a payment received against a sale
type PaymentModel struct {
	TenantAggregateModel
	SaleID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID          *uuid.UUID      `gorm:"type:uuid;index"`
	VendorResponsible *uuid.UUID      `gorm:"type:uuid"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method            string          `gorm:"type:varchar(30);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	DueDate           time.Time       `gorm:"not null"`
	PaidAt            *time.Time
	NextPaymentDate   *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SaleID:              m.SaleID,
		ClientID:            m.ClientID,
		VendorResponsible:   m.VendorResponsible,
		Amount:              m.Amount,
		Method:              finance.PaymentMethod(m.Method),
		Status:              finance.PaymentStatus(m.Status),
		DueDate:             m.DueDate,
		PaidAt:              m.PaidAt,
		NextPaymentDate:     m.NextPaymentDate,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.SaleID = p.SaleID
	m.ClientID = p.ClientID
	m.VendorResponsible = p.VendorResponsible
	m.Amount = p.Amount
	m.Method = string(p.Method)
	m.Status = string(p.Status)
	m.DueDate = p.DueDate
	m.PaidAt = p.PaidAt
	m.NextPaymentDate = p.NextPaymentDate
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
