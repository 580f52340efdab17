package finance

import (
	"time"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether money entered or left the business
type Direction string

const (
	DirectionInflow  Direction = "INFLOW"
	DirectionOutflow Direction = "OUTFLOW"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// Ledger categories and descriptions used by the automatic entries
const (
	CategorySales         = "Vendas"
	CategoryCreditReceipt = "Recebimento Fiado"
	CategoryStockPurchase = "estoque"
	UnknownClientLabel    = "Não informado"
)

// FinancialMovement is an append-only ledger entry
type FinancialMovement struct {
	shared.TenantAggregateRoot
	Direction    Direction
	Amount       decimal.Decimal
	Description  string
	Category     string
	MovementDate time.Time
	PaymentForm  string
	Notes        string
}

// MovementParams carries the fields of a new ledger entry
type MovementParams struct {
	Direction   Direction
	Amount      decimal.Decimal
	Description string
	Category    string
	PaymentForm string
	Notes       string
}

// NewFinancialMovement creates a ledger entry dated now
func NewFinancialMovement(tenantID, createdBy uuid.UUID, p MovementParams) (*FinancialMovement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_TENANT", "tenant is required")
	}
	if !p.Direction.IsValid() {
		return nil, shared.NewValidationError("INVALID_DIRECTION", "invalid movement direction")
	}
	if !p.Amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "amount must be positive")
	}
	if err := shared.CheckMoneyScale("amount", p.Amount); err != nil {
		return nil, err
	}
	if p.Description == "" {
		return nil, shared.NewValidationError("INVALID_DESCRIPTION", "description is required")
	}

	m := &FinancialMovement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		Direction:           p.Direction,
		Amount:              p.Amount,
		Description:         p.Description,
		Category:            p.Category,
		PaymentForm:         p.PaymentForm,
		Notes:               p.Notes,
	}
	m.MovementDate = m.CreatedAt
	return m, nil
}
