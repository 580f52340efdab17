package sales

import (
	"strings"
	"time"

	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
	SaleStatusReturned  SaleStatus = "RETURNED"
)

// IsValid checks if the status is a known value
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusReturned:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to target.
// Status only moves forward, apart from explicit cancellation.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return target == SaleStatusCompleted || target == SaleStatusCancelled
	case SaleStatusCompleted:
		return target == SaleStatusReturned || target == SaleStatusCancelled
	default:
		return false
	}
}

const (
	// BasketMarker prefixes line references that point at a basket instead of an inventory item
	BasketMarker = "cesta-"

	DefaultPaymentType    = "dinheiro"
	DefaultDeliveryMethod = "retirada"
)

// creditPaymentTypes are the payment-type labels whose money arrives later.
// Matching is exact and case-sensitive.
var creditPaymentTypes = map[string]struct{}{
	"fiado":     {},
	"a prazo":   {},
	"parcelado": {},
}

// IsCreditPaymentType reports whether a payment-type label defers payment
func IsCreditPaymentType(label string) bool {
	_, ok := creditPaymentTypes[label]
	return ok
}

// CreditPaymentTypes returns the credit-like labels
func CreditPaymentTypes() []string {
	return []string{"fiado", "a prazo", "parcelado"}
}

// LineKind discriminates sale lines
type LineKind string

const (
	LineKindStock  LineKind = "stock"
	LineKindBasket LineKind = "basket"
)

// ClassifyLineRef splits a line reference into its kind and the referenced id.
// "cesta-42" is basket "42"; anything else is returned unchanged as a stock reference.
func ClassifyLineRef(ref string) (LineKind, string) {
	if id, ok := strings.CutPrefix(ref, BasketMarker); ok {
		return LineKindBasket, id
	}
	return LineKindStock, ref
}

// LineRequest is one requested sale line before classification
type LineRequest struct {
	ItemRef   string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// StockLine is a sale line backed by an inventory item
type StockLine struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// BasketLine is a bundle sold as a unit with no inventory row of its own
type BasketLine struct {
	BasketID  string          `json:"basket_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale is the aggregate root for one commercial transaction
type Sale struct {
	shared.TenantAggregateRoot
	ClientID       *uuid.UUID
	VendorID       *uuid.UUID
	Total          decimal.Decimal
	Discount       decimal.Decimal
	Status         SaleStatus
	Notes          string
	PaymentType    string
	DeliveryDate   *time.Time
	DeliveryMethod string
	StockLines     []StockLine
	BasketLines    []BasketLine
}

// NewSaleParams carries the caller-supplied fields of a new sale
type NewSaleParams struct {
	ClientID       *uuid.UUID
	VendorID       *uuid.UUID
	Total          decimal.Decimal
	Discount       decimal.Decimal
	Notes          string
	PaymentType    string
	DeliveryDate   *time.Time
	DeliveryMethod string
	Lines          []LineRequest
}

// NewSale validates params and builds a PENDING sale with its lines split
// into stock-backed and basket lines. The total is stored as given.
func NewSale(tenantID, createdBy uuid.UUID, p NewSaleParams) (*Sale, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_TENANT", "tenant is required")
	}
	if len(p.Lines) == 0 {
		return nil, shared.NewValidationError("EMPTY_SALE", "empty sale")
	}
	if p.Total.IsNegative() {
		return nil, shared.NewValidationError("INVALID_TOTAL", "total cannot be negative")
	}
	if p.Discount.IsNegative() {
		return nil, shared.NewValidationError("INVALID_DISCOUNT", "discount cannot be negative")
	}
	if err := shared.CheckMoneyScale("total", p.Total); err != nil {
		return nil, err
	}
	if err := shared.CheckMoneyScale("discount", p.Discount); err != nil {
		return nil, err
	}

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, createdBy),
		ClientID:            p.ClientID,
		VendorID:            p.VendorID,
		Total:               p.Total,
		Discount:            p.Discount,
		Status:              SaleStatusPending,
		Notes:               p.Notes,
		PaymentType:         p.PaymentType,
		DeliveryDate:        p.DeliveryDate,
		DeliveryMethod:      p.DeliveryMethod,
		StockLines:          make([]StockLine, 0, len(p.Lines)),
		BasketLines:         make([]BasketLine, 0),
	}
	if sale.PaymentType == "" {
		sale.PaymentType = DefaultPaymentType
	}
	if sale.DeliveryMethod == "" {
		sale.DeliveryMethod = DefaultDeliveryMethod
	}

	for _, req := range p.Lines {
		subtotal, err := lineSubtotal(req)
		if err != nil {
			return nil, err
		}

		kind, ref := ClassifyLineRef(req.ItemRef)
		switch kind {
		case LineKindBasket:
			if ref == "" {
				return nil, shared.NewValidationError("INVALID_BASKET_REF", "basket reference has no id")
			}
			sale.BasketLines = append(sale.BasketLines, BasketLine{
				BasketID:  ref,
				Name:      req.Name,
				Quantity:  req.Quantity,
				UnitPrice: req.UnitPrice,
				Subtotal:  subtotal,
			})
		default:
			itemID, err := uuid.Parse(ref)
			if err != nil {
				return nil, shared.NewValidationError("INVALID_ITEM_REF", "line item reference is not a valid item id: "+ref)
			}
			sale.StockLines = append(sale.StockLines, StockLine{
				ID:        uuid.New(),
				ItemID:    itemID,
				Quantity:  req.Quantity,
				UnitPrice: req.UnitPrice,
				Subtotal:  subtotal,
			})
		}
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))
	return sale, nil
}

// lineSubtotal checks a line and returns quantity x unit price. A zero
// subtotal is filled in; any other value must match.
func lineSubtotal(req LineRequest) (decimal.Decimal, error) {
	if req.Quantity <= 0 {
		return decimal.Zero, shared.NewValidationError("INVALID_QUANTITY", "line quantity must be positive")
	}
	if req.UnitPrice.IsNegative() {
		return decimal.Zero, shared.NewValidationError("INVALID_PRICE", "line unit price cannot be negative")
	}
	if err := shared.CheckMoneyScale("unit price", req.UnitPrice); err != nil {
		return decimal.Zero, err
	}
	if err := shared.CheckMoneyScale("subtotal", req.Subtotal); err != nil {
		return decimal.Zero, err
	}
	expected := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if !req.Subtotal.IsZero() && !req.Subtotal.Equal(expected) {
		return decimal.Zero, shared.NewValidationError("SUBTOTAL_MISMATCH",
			"line subtotal does not equal quantity times unit price")
	}
	return expected, nil
}

// IsCredit reports whether the sale defers payment
func (s *Sale) IsCredit() bool {
	return IsCreditPaymentType(s.PaymentType)
}

// LineCount returns the number of stock and basket lines
func (s *Sale) LineCount() int {
	return len(s.StockLines) + len(s.BasketLines)
}

// PendingBalance returns total minus the amount already received
func (s *Sale) PendingBalance(received decimal.Decimal) decimal.Decimal {
	return s.Total.Sub(received)
}

// MarkCompleted moves the sale to COMPLETED once it is fully paid
func (s *Sale) MarkCompleted() error {
	if !s.Status.CanTransitionTo(SaleStatusCompleted) {
		return shared.ErrInvalidState.WithMessage("cannot complete sale in status " + string(s.Status))
	}
	s.Status = SaleStatusCompleted
	s.IncrementVersion()
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// Cancel cancels the sale
func (s *Sale) Cancel() error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.ErrInvalidState.WithMessage("cannot cancel sale in status " + string(s.Status))
	}
	s.Status = SaleStatusCancelled
	s.IncrementVersion()
	return nil
}

// DisplayLine is a unified, read-only view over both line kinds
type DisplayLine struct {
	Kind      LineKind        `json:"kind"`
	Ref       string          `json:"ref"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// DisplayLines merges stock lines and basket lines, stock lines first
func (s *Sale) DisplayLines() []DisplayLine {
	lines := make([]DisplayLine, 0, s.LineCount())
	for _, l := range s.StockLines {
		lines = append(lines, DisplayLine{
			Kind:      LineKindStock,
			Ref:       l.ItemID.String(),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	for _, b := range s.BasketLines {
		lines = append(lines, DisplayLine{
			Kind:      LineKindBasket,
			Ref:       BasketMarker + b.BasketID,
			Name:      b.Name,
			Quantity:  b.Quantity,
			UnitPrice: b.UnitPrice,
			Subtotal:  b.Subtotal,
		})
	}
	return lines
}
