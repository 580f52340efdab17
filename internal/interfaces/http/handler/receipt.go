package handler

import (
	"context"
	"time"

	financeapp "github.com/bizcore/backend/internal/application/finance"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditSettlementService is the settlement use case
type CreditSettlementService interface {
	RegisterCreditPayment(ctx context.Context, in financeapp.RegisterPaymentInput) (*financeapp.SettlementResult, error)
}

// ReceiptHandler handles the /receipts endpoints
type ReceiptHandler struct {
	BaseHandler
	service CreditSettlementService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(service CreditSettlementService) *ReceiptHandler {
	return &ReceiptHandler{service: service}
}

// RegisterCreditPaymentRequest is the body of POST /receipts/credit
type RegisterCreditPaymentRequest struct {
	SaleID            uuid.UUID       `json:"sale_id" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Method            string          `json:"method" binding:"max=50"`
	VendorResponsible *uuid.UUID      `json:"vendor_responsible"`
	NextPaymentDate   *time.Time      `json:"next_payment_date"`
	Notes             string          `json:"notes" binding:"max=2000"`
}

// RegisterCreditPayment handles POST /receipts/credit
func (h *ReceiptHandler) RegisterCreditPayment(c *gin.Context) {
	var req RegisterCreditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.RegisterCreditPayment(c.Request.Context(), financeapp.RegisterPaymentInput{
		TenantID:          middleware.TenantID(c),
		SaleID:            req.SaleID,
		ActorID:           middleware.ActorID(c),
		Amount:            req.Amount,
		MethodLabel:       req.Method,
		VendorResponsible: req.VendorResponsible,
		NextPaymentDate:   req.NextPaymentDate,
		Notes:             req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
