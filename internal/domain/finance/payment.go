package finance

import (
	"time"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// PaymentMethod is the canonical way money was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodPix          PaymentMethod = "PIX"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodStoreCredit  PaymentMethod = "STORE_CREDIT"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodPix, PaymentMethodBankTransfer, PaymentMethodStoreCredit:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

var methodLabels = map[string]PaymentMethod{
	"dinheiro":       PaymentMethodCash,
	"pix":            PaymentMethodPix,
	"cartao":         PaymentMethodCreditCard,
	"cartão":         PaymentMethodCreditCard,
	"cartao_credito": PaymentMethodCreditCard,
	"cartao_debito":  PaymentMethodDebitCard,
	"transferencia":  PaymentMethodBankTransfer,
	"fiado":          PaymentMethodStoreCredit,
}

// MapPaymentMethodLabel resolves a caller-facing label to its canonical
// method, ignoring case. Unknown labels fall back to cash.
func MapPaymentMethodLabel(label string) PaymentMethod {
	// cases.Caser is stateful, so each call builds its own
	if m, ok := methodLabels[cases.Fold().String(label)]; ok {
		return m
	}
	return PaymentMethodCash
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial,
		PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}

// Payment is money received against a sale
type Payment struct {
	shared.TenantAggregateRoot
	SaleID            uuid.UUID
	ClientID          *uuid.UUID
	VendorResponsible *uuid.UUID
	Amount            decimal.Decimal
	Method            PaymentMethod
	Status            PaymentStatus
	DueDate           time.Time
	PaidAt            *time.Time
	NextPaymentDate   *time.Time
	Notes             string
}

// ReceivedPaymentParams describes money that has just arrived
type ReceivedPaymentParams struct {
	SaleID            uuid.UUID
	ClientID          *uuid.UUID
	VendorResponsible *uuid.UUID
	Amount            decimal.Decimal
	Method            PaymentMethod
	NextPaymentDate   *time.Time
	Notes             string
}

// NewReceivedPayment creates a payment that is already PAID, due and paid now
func NewReceivedPayment(tenantID, createdBy uuid.UUID, p ReceivedPaymentParams) (*Payment, error) {
	if p.SaleID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SALE", "sale is required")
	}
	if !p.Amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "amount must be positive")
	}
	if err := shared.CheckMoneyScale("amount", p.Amount); err != nil {
		return nil, err
	}
	if !p.Method.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", "invalid payment method")
	}

	now := time.Now()
	payment := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		SaleID:              p.SaleID,
		ClientID:            p.ClientID,
		VendorResponsible:   p.VendorResponsible,
		Amount:              p.Amount,
		Method:              p.Method,
		Status:              PaymentStatusPaid,
		DueDate:             now,
		PaidAt:              &now,
		NextPaymentDate:     p.NextPaymentDate,
		Notes:               p.Notes,
	}
	payment.AddDomainEvent(NewPaymentReceivedEvent(payment))
	return payment, nil
}

// IsPaid reports whether the payment counts toward the sale balance
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// SumPaid totals the amounts of PAID payments
func SumPaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for i := range payments {
		if payments[i].IsPaid() {
			total = total.Add(payments[i].Amount)
		}
	}
	return total
}

// LatestNextPaymentDate returns the next-payment date of the most recently
// paid payment that carries one
func LatestNextPaymentDate(payments []Payment) *time.Time {
	var latest *Payment
	for i := range payments {
		p := &payments[i]
		if !p.IsPaid() || p.NextPaymentDate == nil {
			continue
		}
		if latest == nil || paidTime(p).After(paidTime(latest)) {
			latest = p
		}
	}
	if latest == nil {
		return nil
	}
	return latest.NextPaymentDate
}

func paidTime(p *Payment) time.Time {
	if p.PaidAt != nil {
		return *p.PaidAt
	}
	return p.CreatedAt
}
