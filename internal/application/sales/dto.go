package sales

import (
	"time"

	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the input of CreateSale
type CreateSaleRequest struct {
	ClientID       *uuid.UUID
	VendorID       *uuid.UUID
	Total          decimal.Decimal
	Discount       decimal.Decimal
	Notes          string
	PaymentType    string
	DeliveryDate   *time.Time
	DeliveryMethod string
	Items          []SaleLineRequest
}

// SaleLineRequest is one requested line. ItemRef is an inventory item id or
// a "cesta-" prefixed basket reference.
type SaleLineRequest struct {
	ItemRef   string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// SaleListFilter narrows a sale listing
type SaleListFilter struct {
	Status      string
	PaymentType string
	Page        int
	PageSize    int
}

// StockLineResponse is a persisted line item
type StockLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse is the full view of a sale
type SaleResponse struct {
	ID             uuid.UUID           `json:"id"`
	TenantID       uuid.UUID           `json:"tenant_id"`
	ClientID       *uuid.UUID          `json:"client_id,omitempty"`
	VendorID       *uuid.UUID          `json:"vendor_id,omitempty"`
	Total          decimal.Decimal     `json:"total"`
	Discount       decimal.Decimal     `json:"discount"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	PaymentType    string              `json:"payment_type"`
	DeliveryDate   *time.Time          `json:"delivery_date,omitempty"`
	DeliveryMethod string              `json:"delivery_method"`
	Items          []StockLineResponse `json:"items"`
	Baskets        []sales.BasketLine  `json:"baskets"`
	AllItems       []sales.DisplayLine `json:"all_items"`
	CreatedBy      *uuid.UUID          `json:"created_by,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// ToSaleResponse converts a domain sale
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]StockLineResponse, len(s.StockLines))
	for i, l := range s.StockLines {
		items[i] = StockLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
	}
	baskets := s.BasketLines
	if baskets == nil {
		baskets = []sales.BasketLine{}
	}
	return SaleResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		ClientID:       s.ClientID,
		VendorID:       s.VendorID,
		Total:          s.Total,
		Discount:       s.Discount,
		Status:         string(s.Status),
		Notes:          s.Notes,
		PaymentType:    s.PaymentType,
		DeliveryDate:   s.DeliveryDate,
		DeliveryMethod: s.DeliveryMethod,
		Items:          items,
		Baskets:        baskets,
		AllItems:       s.DisplayLines(),
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}
}

// SaleListItemResponse is a sale in list responses
type SaleListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	PaymentType string          `json:"payment_type"`
	LineCount   int             `json:"line_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToSaleListItemResponse converts a domain sale for listings
func ToSaleListItemResponse(s *sales.Sale) SaleListItemResponse {
	return SaleListItemResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		Total:       s.Total,
		Status:      string(s.Status),
		PaymentType: s.PaymentType,
		LineCount:   s.LineCount(),
		CreatedAt:   s.CreatedAt,
	}
}

// OutstandingCreditResponse is a credit sale that still has money to receive
type OutstandingCreditResponse struct {
	SaleID          uuid.UUID       `json:"sale_id"`
	ClientID        *uuid.UUID      `json:"client_id,omitempty"`
	PaymentType     string          `json:"payment_type"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	PendingBalance  decimal.Decimal `json:"pending_balance"`
	NextPaymentDate *time.Time      `json:"next_payment_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
