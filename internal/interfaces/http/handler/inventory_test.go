package handler

import (
	"net/http"
	"testing"

	inventoryapp "github.com/bizcore/backend/internal/application/inventory"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInventoryRouter(caller testCaller, svc *MockInventoryService) *gin.Engine {
	h := NewInventoryHandler(svc)
	return newTestRouter(caller, func(r gin.IRouter) {
		r.POST("/inventory", h.Create)
		r.GET("/inventory", h.List)
		r.GET("/inventory/:id", h.Get)
		r.DELETE("/inventory/:id", h.Delete)
		r.POST("/inventory/:id/movements", h.ApplyMovement)
	})
}

func TestInventoryHandler_Create(t *testing.T) {
	caller := newTestCaller()

	t.Run("created", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("CreateItem", mock.Anything, caller.TenantID, caller.UserID, mock.MatchedBy(func(req inventoryapp.CreateItemRequest) bool {
			return req.Name == "Feijão" && req.Quantity.Equal(decimal.NewFromInt(12)) && req.Unit == "kg"
		})).Return(&inventoryapp.ItemResponse{ID: uuid.New(), Name: "Feijão"}, nil)

		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory",
			`{"name":"Feijão","quantity":"12","unit":"kg","unit_cost":"7.90"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("name is required", func(t *testing.T) {
		svc := new(MockInventoryService)
		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory", `{"quantity":"1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateItem")
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		svc := new(MockInventoryService)
		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory", `{"name":"Sal","quantity":"-1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateItem")
	})
}

func TestInventoryHandler_List(t *testing.T) {
	caller := newTestCaller()
	svc := new(MockInventoryService)
	svc.On("ListItems", mock.Anything, caller.TenantID, inventoryapp.ItemListFilter{
		Search: "arroz", IncludeInactive: true, Page: 1, PageSize: 20,
	}).Return(shared.NewPaginated([]inventoryapp.ItemResponse{}, 0, 1, 20), nil)

	rec := doRequest(newInventoryRouter(caller, svc), http.MethodGet, "/inventory?search=arroz&include_inactive=true&page=1&page_size=20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0,"page":1,"page_size":20,"total_pages":0}}`, rec.Body.String())
}

func TestInventoryHandler_ApplyMovement(t *testing.T) {
	caller := newTestCaller()
	itemID := uuid.New()

	t.Run("passes the raw direction label", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("ApplyStockMovement", mock.Anything, mock.MatchedBy(func(in inventoryapp.ApplyMovementInput) bool {
			return in.TenantID == caller.TenantID &&
				in.ItemID == itemID &&
				in.ActorID == caller.UserID &&
				in.Direction == "saida" &&
				in.Quantity.Equal(decimal.NewFromInt(3))
		})).Return(&inventoryapp.MovementResult{
			Item: inventoryapp.ItemResponse{ID: itemID, Quantity: decimal.NewFromInt(7)},
		}, nil)

		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory/"+itemID.String()+"/movements",
			`{"type":"saida","quantity":"3"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec).Data.(map[string]any)
		assert.Equal(t, "7", data["item"].(map[string]any)["quantity"])
	})

	t.Run("insufficient stock is a conflict", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("ApplyStockMovement", mock.Anything, mock.Anything).Return(nil, shared.ErrInsufficientStock)

		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory/"+itemID.String()+"/movements",
			`{"type":"outbound","quantity":"300"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrCodeInsufficientStock, decodeResponse(t, rec).Error.Code)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		svc := new(MockInventoryService)
		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory/"+itemID.String()+"/movements",
			`{"type":"inbound","quantity":"0"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ApplyStockMovement")
	})

	t.Run("malformed item id", func(t *testing.T) {
		svc := new(MockInventoryService)
		rec := doRequest(newInventoryRouter(caller, svc), http.MethodPost, "/inventory/nope/movements",
			`{"type":"inbound","quantity":"1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInventoryHandler_Delete(t *testing.T) {
	caller := newTestCaller()
	itemID := uuid.New()
	svc := new(MockInventoryService)
	svc.On("DeleteItem", mock.Anything, caller.TenantID, itemID).Return(&inventoryapp.DeleteResult{Deactivated: true}, nil)

	rec := doRequest(newInventoryRouter(caller, svc), http.MethodDelete, "/inventory/"+itemID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"deactivated":true}}`, rec.Body.String())
}

func TestInventoryHandler_Get_NotFound(t *testing.T) {
	caller := newTestCaller()
	svc := new(MockInventoryService)
	svc.On("GetItem", mock.Anything, caller.TenantID, mock.Anything).Return(nil, shared.NewNotFoundError("inventory item"))

	rec := doRequest(newInventoryRouter(caller, svc), http.MethodGet, "/inventory/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "inventory item not found", decodeResponse(t, rec).Error.Message)
}
