package telemetry

import (
	"context"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics turns committed domain events into counters. It subscribes
// to the event bus, so nothing in the services calls it directly.
type BusinessMetrics struct {
	logger *zap.Logger

	salesCreated   *Counter
	salesAmount    *FloatCounter
	salesCompleted *Counter
	payments       *Counter
	paymentsAmount *FloatCounter
	stockMovements *Counter
	lowStock       *Counter
}

// BusinessMetricsConfig holds configuration for business metrics
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics registers the business instruments on cfg.Meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	if bm.salesCreated, err = NewCounter(cfg.Meter, "bizcore_sales_created_total", "Sales recorded", "{sales}"); err != nil {
		return nil, err
	}
	if bm.salesAmount, err = NewFloatCounter(cfg.Meter, "bizcore_sales_amount_total", "Sum of recorded sale totals", "{currency}"); err != nil {
		return nil, err
	}
	if bm.salesCompleted, err = NewCounter(cfg.Meter, "bizcore_sales_completed_total", "Credit sales settled in full", "{sales}"); err != nil {
		return nil, err
	}
	if bm.payments, err = NewCounter(cfg.Meter, "bizcore_payments_received_total", "Payments applied to sales", "{payments}"); err != nil {
		return nil, err
	}
	if bm.paymentsAmount, err = NewFloatCounter(cfg.Meter, "bizcore_payments_amount_total", "Sum of payments applied to sales", "{currency}"); err != nil {
		return nil, err
	}
	if bm.stockMovements, err = NewCounter(cfg.Meter, "bizcore_stock_movements_total", "Stock movements applied", "{movements}"); err != nil {
		return nil, err
	}
	if bm.lowStock, err = NewCounter(cfg.Meter, "bizcore_stock_below_minimum_total", "Movements that left an item below its minimum", "{movements}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// EventTypes implements shared.EventHandler
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		sales.EventTypeSaleCreated,
		sales.EventTypeSaleCompleted,
		finance.EventTypePaymentReceived,
		inventory.EventTypeStockMoved,
	}
}

// Handle implements shared.EventHandler. Unknown events are ignored.
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	tenant := AttrTenantID.String(event.TenantID().String())

	switch e := event.(type) {
	case *sales.SaleCreatedEvent:
		credit := sales.IsCreditPaymentType(e.PaymentType)
		bm.salesCreated.Inc(ctx, tenant, AttrPaymentType.String(e.PaymentType), AttrCredit.Bool(credit))
		amount, _ := e.Total.Float64()
		bm.salesAmount.Add(ctx, amount, tenant, AttrCredit.Bool(credit))
	case *sales.SaleCompletedEvent:
		bm.salesCompleted.Inc(ctx, tenant)
	case *finance.PaymentReceivedEvent:
		method := AttrPaymentMethod.String(string(e.Method))
		bm.payments.Inc(ctx, tenant, method)
		amount, _ := e.Amount.Float64()
		bm.paymentsAmount.Add(ctx, amount, tenant, method)
	case *inventory.StockMovedEvent:
		bm.stockMovements.Inc(ctx, tenant, AttrDirection.String(string(e.Direction)))
		if e.BelowMinimum {
			bm.lowStock.Inc(ctx, tenant)
		}
	default:
		bm.logger.Debug("Ignoring event without metrics", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)

// ErrMeterNil is returned when meter is nil
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
