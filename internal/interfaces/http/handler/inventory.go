package handler

import (
	"context"

	inventoryapp "github.com/bizcore/backend/internal/application/inventory"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryService is the inventory use-case surface the handler needs
type InventoryService interface {
	CreateItem(ctx context.Context, tenantID, actorID uuid.UUID, req inventoryapp.CreateItemRequest) (*inventoryapp.ItemResponse, error)
	GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*inventoryapp.ItemResponse, error)
	ListItems(ctx context.Context, tenantID uuid.UUID, f inventoryapp.ItemListFilter) (shared.Paginated[inventoryapp.ItemResponse], error)
	ApplyStockMovement(ctx context.Context, in inventoryapp.ApplyMovementInput) (*inventoryapp.MovementResult, error)
	DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) (*inventoryapp.DeleteResult, error)
}

// InventoryHandler handles the /inventory endpoints
type InventoryHandler struct {
	BaseHandler
	service InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// CreateItemRequest is the body of POST /inventory
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Category    string          `json:"category" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity" binding:"gte=0"`
	MinQuantity decimal.Decimal `json:"min_quantity" binding:"gte=0"`
	MaxQuantity decimal.Decimal `json:"max_quantity" binding:"gte=0"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"gte=0"`
	SalePrice   decimal.Decimal `json:"sale_price" binding:"gte=0"`
	Unit        string          `json:"unit" binding:"max=20"`
	Location    string          `json:"location" binding:"max=100"`
	Supplier    string          `json:"supplier" binding:"max=200"`
	Barcode     string          `json:"barcode" binding:"max=100"`
	Notes       string          `json:"notes" binding:"max=2000"`
}

// StockMovementRequest is the body of POST /inventory/:id/movements. type
// accepts inbound/outbound and the entrada/saida labels.
type StockMovementRequest struct {
	Type     string          `json:"type" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"gte=0"`
	Notes    string          `json:"notes" binding:"max=2000"`
}

// ItemListQuery is the query string of GET /inventory
type ItemListQuery struct {
	dto.ListRequest
	Search          string `form:"search"`
	Category        string `form:"category"`
	IncludeInactive bool   `form:"include_inactive"`
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), middleware.TenantID(c), middleware.ActorID(c), inventoryapp.CreateItemRequest{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		UnitCost:    req.UnitCost,
		SalePrice:   req.SalePrice,
		Unit:        req.Unit,
		Location:    req.Location,
		Supplier:    req.Supplier,
		Barcode:     req.Barcode,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Get handles GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	item, err := h.service.GetItem(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var q ItemListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	page, err := h.service.ListItems(c.Request.Context(), middleware.TenantID(c), inventoryapp.ItemListFilter{
		Search:          q.Search,
		Category:        q.Category,
		IncludeInactive: q.IncludeInactive,
		Page:            q.Page,
		PageSize:        q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// ApplyMovement handles POST /inventory/:id/movements
func (h *InventoryHandler) ApplyMovement(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.ApplyStockMovement(c.Request.Context(), inventoryapp.ApplyMovementInput{
		TenantID:  middleware.TenantID(c),
		ItemID:    id,
		ActorID:   middleware.ActorID(c),
		Direction: req.Type,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /inventory/:id. An item still referenced by sales is
// deactivated and the response says so.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	result, err := h.service.DeleteItem(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
