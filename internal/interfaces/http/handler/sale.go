package handler

import (
	"context"
	"time"

	salesapp "github.com/bizcore/backend/internal/application/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService is the sale use-case surface the handler needs
type SaleService interface {
	CreateSale(ctx context.Context, tenantID, actorID uuid.UUID, req salesapp.CreateSaleRequest) (*salesapp.SaleResponse, error)
	GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*salesapp.SaleResponse, error)
	ListSales(ctx context.Context, tenantID uuid.UUID, f salesapp.SaleListFilter) (shared.Paginated[salesapp.SaleListItemResponse], error)
	ListOutstandingCredit(ctx context.Context, tenantID uuid.UUID) ([]salesapp.OutstandingCreditResponse, error)
	DeleteSale(ctx context.Context, tenantID, saleID uuid.UUID) error
}

// SaleHandler handles the /sales endpoints
type SaleHandler struct {
	BaseHandler
	service SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// CreateSaleRequest is the body of POST /sales
type CreateSaleRequest struct {
	ClientID       *uuid.UUID          `json:"client_id"`
	VendorID       *uuid.UUID          `json:"vendor_id"`
	Total          *decimal.Decimal    `json:"total" binding:"required,gte=0"`
	Discount       decimal.Decimal     `json:"discount" binding:"gte=0"`
	Notes          string              `json:"notes" binding:"max=2000"`
	PaymentType    string              `json:"payment_type" binding:"max=50"`
	DeliveryDate   *time.Time          `json:"delivery_date"`
	DeliveryMethod string              `json:"delivery_method" binding:"max=50"`
	Items          []CreateSaleLineReq `json:"items" binding:"required,min=1,dive"`
}

// CreateSaleLineReq is one requested line. item_ref is an inventory item id
// or a "cesta-" prefixed basket reference.
type CreateSaleLineReq struct {
	ItemRef   string          `json:"item_ref" binding:"required,max=100"`
	Name      string          `json:"name" binding:"max=200"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"gte=0"`
	Subtotal  decimal.Decimal `json:"subtotal" binding:"gte=0"`
}

// SaleListQuery is the query string of GET /sales
type SaleListQuery struct {
	dto.ListRequest
	Status      string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED RETURNED"`
	PaymentType string `form:"payment_type"`
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := salesapp.CreateSaleRequest{
		ClientID:       req.ClientID,
		VendorID:       req.VendorID,
		Total:          *req.Total,
		Discount:       req.Discount,
		Notes:          req.Notes,
		PaymentType:    req.PaymentType,
		DeliveryDate:   req.DeliveryDate,
		DeliveryMethod: req.DeliveryMethod,
		Items:          make([]salesapp.SaleLineRequest, len(req.Items)),
	}
	for i, item := range req.Items {
		appReq.Items[i] = salesapp.SaleLineRequest{
			ItemRef:   item.ItemRef,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	sale, err := h.service.CreateSale(c.Request.Context(), middleware.TenantID(c), middleware.ActorID(c), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	sale, err := h.service.GetSale(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	var q SaleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	page, err := h.service.ListSales(c.Request.Context(), middleware.TenantID(c), salesapp.SaleListFilter{
		Status:      q.Status,
		PaymentType: q.PaymentType,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// OutstandingCredit handles GET /sales/outstanding-credit
func (h *SaleHandler) OutstandingCredit(c *gin.Context) {
	list, err := h.service.ListOutstandingCredit(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if list == nil {
		list = []salesapp.OutstandingCreditResponse{}
	}
	h.Success(c, list)
}

// Delete handles DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSale(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
