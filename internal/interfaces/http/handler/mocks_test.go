package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	financeapp "github.com/bizcore/backend/internal/application/finance"
	inventoryapp "github.com/bizcore/backend/internal/application/inventory"
	"github.com/bizcore/backend/internal/application/ledger"
	salesapp "github.com/bizcore/backend/internal/application/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, tenantID, actorID uuid.UUID, req salesapp.CreateSaleRequest) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*salesapp.SaleResponse, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleResponse), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, tenantID uuid.UUID, f salesapp.SaleListFilter) (shared.Paginated[salesapp.SaleListItemResponse], error) {
	args := m.Called(ctx, tenantID, f)
	return args.Get(0).(shared.Paginated[salesapp.SaleListItemResponse]), args.Error(1)
}

func (m *MockSaleService) ListOutstandingCredit(ctx context.Context, tenantID uuid.UUID) ([]salesapp.OutstandingCreditResponse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]salesapp.OutstandingCreditResponse), args.Error(1)
}

func (m *MockSaleService) DeleteSale(ctx context.Context, tenantID, saleID uuid.UUID) error {
	return m.Called(ctx, tenantID, saleID).Error(0)
}

type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) RegisterCreditPayment(ctx context.Context, in financeapp.RegisterPaymentInput) (*financeapp.SettlementResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.SettlementResult), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateItem(ctx context.Context, tenantID, actorID uuid.UUID, req inventoryapp.CreateItemRequest) (*inventoryapp.ItemResponse, error) {
	args := m.Called(ctx, tenantID, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*inventoryapp.ItemResponse, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.ItemResponse), args.Error(1)
}

func (m *MockInventoryService) ListItems(ctx context.Context, tenantID uuid.UUID, f inventoryapp.ItemListFilter) (shared.Paginated[inventoryapp.ItemResponse], error) {
	args := m.Called(ctx, tenantID, f)
	return args.Get(0).(shared.Paginated[inventoryapp.ItemResponse]), args.Error(1)
}

func (m *MockInventoryService) ApplyStockMovement(ctx context.Context, in inventoryapp.ApplyMovementInput) (*inventoryapp.MovementResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.MovementResult), args.Error(1)
}

func (m *MockInventoryService) DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) (*inventoryapp.DeleteResult, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.DeleteResult), args.Error(1)
}

type MockMovementLister struct {
	mock.Mock
}

func (m *MockMovementLister) List(ctx context.Context, tenantID uuid.UUID, f ledger.MovementListFilter) (shared.Paginated[ledger.MovementResponse], error) {
	args := m.Called(ctx, tenantID, f)
	return args.Get(0).(shared.Paginated[ledger.MovementResponse]), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// testCaller is the tenant and user every handler test runs as
type testCaller struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

func newTestCaller() testCaller {
	return testCaller{TenantID: uuid.New(), UserID: uuid.New()}
}

// newTestRouter mounts routes behind the identity the JWT middleware would set
func newTestRouter(caller testCaller, mount func(r gin.IRouter)) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, caller.TenantID.String())
		c.Set(middleware.JWTUserIDKey, caller.UserID.String())
		c.Next()
	})
	router.Use(middleware.RequireTenant())
	mount(router)
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
