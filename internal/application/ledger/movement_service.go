package ledger

import (
	"context"
	"time"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementResponse is the API view of a financial movement
type MovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	MovementDate time.Time       `json:"movement_date"`
	PaymentForm  string          `json:"payment_form,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToMovementResponse converts a domain movement
func ToMovementResponse(m *finance.FinancialMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		Direction:    string(m.Direction),
		Amount:       m.Amount,
		Description:  m.Description,
		Category:     m.Category,
		MovementDate: m.MovementDate,
		PaymentForm:  m.PaymentForm,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// MovementListFilter narrows a movement listing
type MovementListFilter struct {
	Direction string
	Category  string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// MovementService exposes read access to the ledger
type MovementService struct {
	repo finance.FinancialMovementRepository
}

// NewMovementService creates a new MovementService
func NewMovementService(repo finance.FinancialMovementRepository) *MovementService {
	return &MovementService{repo: repo}
}

// List returns a page of movements, newest first
func (s *MovementService) List(ctx context.Context, tenantID uuid.UUID, f MovementListFilter) (shared.Paginated[MovementResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page = f.Page
	filter.PageSize = f.PageSize
	filter.OrderBy = "movement_date"
	filter = filter.Normalize()

	if f.Direction != "" {
		d := finance.Direction(f.Direction)
		if !d.IsValid() {
			return shared.Paginated[MovementResponse]{}, shared.NewValidationError("INVALID_DIRECTION", "invalid movement direction")
		}
		filter.Filters["direction"] = d
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.From != nil {
		filter.Filters["from"] = *f.From
	}
	if f.To != nil {
		filter.Filters["to"] = *f.To
	}

	movements, total, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[MovementResponse]{}, err
	}
	items := make([]MovementResponse, len(movements))
	for i := range movements {
		items[i] = ToMovementResponse(&movements[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
