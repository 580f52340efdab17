package handler

import (
	"net/http"
	"testing"

	financeapp "github.com/bizcore/backend/internal/application/finance"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReceiptRouter(caller testCaller, svc *MockSettlementService) *gin.Engine {
	h := NewReceiptHandler(svc)
	return newTestRouter(caller, func(r gin.IRouter) {
		r.POST("/receipts/credit", h.RegisterCreditPayment)
	})
}

func TestReceiptHandler_RegisterCreditPayment(t *testing.T) {
	caller := newTestCaller()
	saleID := uuid.New()

	t.Run("registers the payment", func(t *testing.T) {
		svc := new(MockSettlementService)
		svc.On("RegisterCreditPayment", mock.Anything, mock.MatchedBy(func(in financeapp.RegisterPaymentInput) bool {
			return in.TenantID == caller.TenantID &&
				in.ActorID == caller.UserID &&
				in.SaleID == saleID &&
				in.Amount.Equal(decimal.RequireFromString("25.50")) &&
				in.MethodLabel == "pix" &&
				in.NextPaymentDate != nil
		})).Return(&financeapp.SettlementResult{
			Payment:          financeapp.PaymentResponse{ID: uuid.New(), SaleID: saleID, Amount: decimal.RequireFromString("25.50"), Status: "PAID"},
			RemainingBalance: decimal.RequireFromString("74.50"),
			SaleStatus:       "PENDING",
		}, nil)

		body := `{"sale_id":"` + saleID.String() + `","amount":"25.50","method":"pix","next_payment_date":"2026-11-01T00:00:00Z"}`
		rec := doRequest(newReceiptRouter(caller, svc), http.MethodPost, "/receipts/credit", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		data := decodeResponse(t, rec).Data.(map[string]any)
		assert.Equal(t, "74.5", data["remaining_balance"])
		assert.Equal(t, false, data["is_fully_paid"])
		svc.AssertExpectations(t)
	})

	t.Run("zero amount is rejected before the service", func(t *testing.T) {
		svc := new(MockSettlementService)
		body := `{"sale_id":"` + saleID.String() + `","amount":"0"}`
		rec := doRequest(newReceiptRouter(caller, svc), http.MethodPost, "/receipts/credit", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, rec).Error.Code)
		svc.AssertNotCalled(t, "RegisterCreditPayment")
	})

	t.Run("missing sale id is rejected", func(t *testing.T) {
		svc := new(MockSettlementService)
		rec := doRequest(newReceiptRouter(caller, svc), http.MethodPost, "/receipts/credit", `{"amount":"10"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "RegisterCreditPayment")
	})

	t.Run("fully paid sale is a conflict", func(t *testing.T) {
		svc := new(MockSettlementService)
		svc.On("RegisterCreditPayment", mock.Anything, mock.Anything).Return(nil, shared.ErrAlreadyFullyPaid)

		body := `{"sale_id":"` + saleID.String() + `","amount":"10"}`
		rec := doRequest(newReceiptRouter(caller, svc), http.MethodPost, "/receipts/credit", body)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrCodeAlreadyFullyPaid, decodeResponse(t, rec).Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := new(MockSettlementService)
		rec := doRequest(newReceiptRouter(caller, svc), http.MethodPost, "/receipts/credit", `{"amount":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, rec).Error.Code)
	})
}
