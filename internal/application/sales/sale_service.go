package sales

import (
	"context"
	"fmt"

	"github.com/bizcore/backend/internal/application/ledger"
	"github.com/bizcore/backend/internal/application/transaction"
	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService creates sales and serves the read and delete operations around them
type SaleService struct {
	scope          transaction.Scope
	saleRepo       sales.SaleRepository
	paymentRepo    finance.PaymentRepository
	recorder       ledger.Recorder
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	scope transaction.Scope,
	saleRepo sales.SaleRepository,
	paymentRepo finance.PaymentRepository,
	recorder ledger.Recorder,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		scope:       scope,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for sale events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateSale records a sale with all of its lines in one transaction. Sales
// paid up front also get an inflow ledger entry once the transaction commits.
// Stock quantities are not touched.
func (s *SaleService) CreateSale(ctx context.Context, tenantID, actorID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrPaymentType, req.PaymentType,
		"lines", len(req.Items),
	)

	lines := make([]sales.LineRequest, len(req.Items))
	for i, item := range req.Items {
		lines[i] = sales.LineRequest{
			ItemRef:   item.ItemRef,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	sale, err := sales.NewSale(tenantID, actorID, sales.NewSaleParams{
		ClientID:       req.ClientID,
		VendorID:       req.VendorID,
		Total:          req.Total,
		Discount:       req.Discount,
		Notes:          req.Notes,
		PaymentType:    req.PaymentType,
		DeliveryDate:   req.DeliveryDate,
		DeliveryMethod: req.DeliveryMethod,
		Lines:          lines,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		return repos.SaleRepo().Create(ctx, sale)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrSaleID, sale.ID)

	if !sale.IsCredit() && s.recorder != nil {
		s.recorder.Record(ctx, ledger.Entry{
			TenantID:    tenantID,
			Direction:   finance.DirectionInflow,
			Amount:      sale.Total,
			Description: "Venda - Cliente: " + clientLabel(sale.ClientID),
			Category:    finance.CategorySales,
			PaymentForm: sale.PaymentType,
			Notes:       "Venda ID: " + sale.ID.String(),
			CreatedBy:   actorID,
		})
	}

	transaction.PublishEvents(ctx, s.eventPublisher, sale)

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.Int("stock_lines", len(sale.StockLines)),
		zap.Int("basket_lines", len(sale.BasketLines)),
		zap.Bool("credit", sale.IsCredit()),
	)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetSale returns a sale with stock and basket lines merged for display
func (s *SaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListSales returns a page of sales, newest first
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, f SaleListFilter) (shared.Paginated[SaleListItemResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page = f.Page
	filter.PageSize = f.PageSize
	filter = filter.Normalize()

	if f.Status != "" {
		status := sales.SaleStatus(f.Status)
		if !status.IsValid() {
			return shared.Paginated[SaleListItemResponse]{}, shared.NewValidationError("INVALID_STATUS", "invalid sale status")
		}
		filter.Filters["status"] = status
	}
	if f.PaymentType != "" {
		filter.Filters["payment_type"] = f.PaymentType
	}

	list, total, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[SaleListItemResponse]{}, err
	}
	items := make([]SaleListItemResponse, len(list))
	for i := range list {
		items[i] = ToSaleListItemResponse(&list[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListOutstandingCredit returns credit sales that still have a positive balance
func (s *SaleService) ListOutstandingCredit(ctx context.Context, tenantID uuid.UUID) ([]OutstandingCreditResponse, error) {
	credit, err := s.saleRepo.FindCredit(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(credit) == 0 {
		return []OutstandingCreditResponse{}, nil
	}

	ids := make([]uuid.UUID, len(credit))
	for i := range credit {
		ids[i] = credit[i].ID
	}
	paidBySale, err := s.paymentRepo.FindPaidBySales(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	result := make([]OutstandingCreditResponse, 0, len(credit))
	for i := range credit {
		sale := &credit[i]
		payments := paidBySale[sale.ID]
		paid := finance.SumPaid(payments)
		pending := sale.PendingBalance(paid)
		if !pending.IsPositive() {
			continue
		}
		result = append(result, OutstandingCreditResponse{
			SaleID:          sale.ID,
			ClientID:        sale.ClientID,
			PaymentType:     sale.PaymentType,
			Status:          string(sale.Status),
			Total:           sale.Total,
			TotalPaid:       paid,
			PendingBalance:  pending,
			NextPaymentDate: finance.LatestNextPaymentDate(payments),
			CreatedAt:       sale.CreatedAt,
		})
	}
	return result, nil
}

// DeleteSale removes a sale and its lines. Sales with any payment are kept.
func (s *SaleService) DeleteSale(ctx context.Context, tenantID, saleID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		if _, err := repos.SaleRepo().FindByIDForUpdate(ctx, tenantID, saleID); err != nil {
			return err
		}
		count, err := repos.PaymentRepo().CountBySale(ctx, tenantID, saleID)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}
		if count > 0 {
			return shared.ErrHasPayments
		}
		return repos.SaleRepo().DeleteForTenant(ctx, tenantID, saleID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sale deleted",
		zap.String("sale_id", saleID.String()),
		zap.String("tenant_id", tenantID.String()),
	)
	return nil
}

func clientLabel(clientID *uuid.UUID) string {
	if clientID == nil {
		return finance.UnknownClientLabel
	}
	return clientID.String()
}
