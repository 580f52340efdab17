package finance

import (
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterPaymentInput is money received against a credit sale
type RegisterPaymentInput struct {
	TenantID          uuid.UUID
	SaleID            uuid.UUID
	ActorID           uuid.UUID
	Amount            decimal.Decimal
	MethodLabel       string
	VendorResponsible *uuid.UUID
	NextPaymentDate   *time.Time
	Notes             string
}

// PaymentResponse is the API view of a payment
type PaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	SaleID            uuid.UUID       `json:"sale_id"`
	ClientID          *uuid.UUID      `json:"client_id,omitempty"`
	VendorResponsible *uuid.UUID      `json:"vendor_responsible,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	Status            string          `json:"status"`
	DueDate           time.Time       `json:"due_date"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	NextPaymentDate   *time.Time      `json:"next_payment_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		SaleID:            p.SaleID,
		ClientID:          p.ClientID,
		VendorResponsible: p.VendorResponsible,
		Amount:            p.Amount,
		Method:            p.Method.String(),
		Status:            string(p.Status),
		DueDate:           p.DueDate,
		PaidAt:            p.PaidAt,
		NextPaymentDate:   p.NextPaymentDate,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
	}
}

// SettlementResult is the outcome of a registered payment
type SettlementResult struct {
	Payment          PaymentResponse `json:"payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IsFullyPaid      bool            `json:"is_fully_paid"`
	SaleStatus       string          `json:"sale_status"`
}
