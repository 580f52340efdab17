package handler

import (
	"context"
	"time"

	"github.com/bizcore/backend/internal/application/ledger"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MovementLister reads the financial ledger
type MovementLister interface {
	List(ctx context.Context, tenantID uuid.UUID, f ledger.MovementListFilter) (shared.Paginated[ledger.MovementResponse], error)
}

// FinancialMovementHandler handles GET /financial-movements
type FinancialMovementHandler struct {
	BaseHandler
	service MovementLister
}

// NewFinancialMovementHandler creates a new FinancialMovementHandler
func NewFinancialMovementHandler(service MovementLister) *FinancialMovementHandler {
	return &FinancialMovementHandler{service: service}
}

// MovementListQuery is the query string of GET /financial-movements. Dates
// are RFC 3339 or YYYY-MM-DD.
type MovementListQuery struct {
	dto.ListRequest
	Direction string `form:"direction" binding:"omitempty,oneof=INFLOW OUTFLOW"`
	Category  string `form:"category"`
	From      string `form:"from"`
	To        string `form:"to"`
}

// List handles GET /financial-movements
func (h *FinancialMovementHandler) List(c *gin.Context) {
	var q MovementListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	from, err := parseDateParam(q.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseDateParam(q.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date")
		return
	}

	page, err := h.service.List(c.Request.Context(), middleware.TenantID(c), ledger.MovementListFilter{
		Direction: q.Direction,
		Category:  q.Category,
		From:      from,
		To:        to,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
