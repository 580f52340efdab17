package finance

import (
	"context"
	"fmt"

	"github.com/bizcore/backend/internal/application/ledger"
	"github.com/bizcore/backend/internal/application/transaction"
	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/sales"
	"github.com/bizcore/backend/internal/domain/shared"
	"github.com/bizcore/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditSettlementService applies payments against the open balance of a sale
type CreditSettlementService struct {
	scope          transaction.Scope
	recorder       ledger.Recorder
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCreditSettlementService creates a new CreditSettlementService
func NewCreditSettlementService(scope transaction.Scope, recorder ledger.Recorder, logger *zap.Logger) *CreditSettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditSettlementService{
		scope:    scope,
		recorder: recorder,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher for payment and sale events
func (s *CreditSettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RegisterCreditPayment records a PAID payment against a sale. The sale row
// is locked for the duration of the transaction so that concurrent payments
// are applied one after the other against the same balance. The sale becomes
// COMPLETED when the sum of PAID payments reaches its total.
func (s *CreditSettlementService) RegisterCreditPayment(ctx context.Context, in RegisterPaymentInput) (*SettlementResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "register_credit_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, in.TenantID,
		telemetry.SpanAttrSaleID, in.SaleID,
		telemetry.SpanAttrAmount, in.Amount,
	)

	if !in.Amount.IsPositive() {
		err := shared.NewValidationError("INVALID_AMOUNT", "amount must be greater than zero")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := shared.CheckMoneyScale("amount", in.Amount); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	method := finance.MapPaymentMethodLabel(in.MethodLabel)

	var (
		sale      *sales.Sale
		payment   *finance.Payment
		remaining decimal.Decimal
		fullyPaid bool
	)
	err := s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForUpdate(ctx, in.TenantID, in.SaleID)
		if err != nil {
			return err
		}
		if sale.Status == sales.SaleStatusCancelled || sale.Status == sales.SaleStatusReturned {
			return shared.ErrInvalidState.WithMessage("cannot receive payment for sale in status " + string(sale.Status))
		}

		paid, err := repos.PaymentRepo().FindPaidBySale(ctx, in.TenantID, in.SaleID)
		if err != nil {
			return fmt.Errorf("load payments: %w", err)
		}
		received := finance.SumPaid(paid)
		pending := sale.PendingBalance(received)
		if !pending.IsPositive() {
			return shared.ErrAlreadyFullyPaid
		}
		if in.Amount.GreaterThan(pending) {
			return shared.NewValidationError("AMOUNT_EXCEEDS_BALANCE", "amount exceeds balance")
		}

		payment, err = finance.NewReceivedPayment(in.TenantID, in.ActorID, finance.ReceivedPaymentParams{
			SaleID:            sale.ID,
			ClientID:          sale.ClientID,
			VendorResponsible: in.VendorResponsible,
			Amount:            in.Amount,
			Method:            method,
			NextPaymentDate:   in.NextPaymentDate,
			Notes:             in.Notes,
		})
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}

		remaining = pending.Sub(in.Amount)
		fullyPaid = !received.Add(in.Amount).LessThan(sale.Total)
		if fullyPaid && sale.Status != sales.SaleStatusCompleted {
			if err := sale.MarkCompleted(); err != nil {
				return err
			}
			if err := repos.SaleRepo().SaveWithLock(ctx, sale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.recorder != nil {
		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("Pagamento via %s - Venda ID: %s", method, sale.ID)
		}
		s.recorder.Record(ctx, ledger.Entry{
			TenantID:    in.TenantID,
			Direction:   finance.DirectionInflow,
			Amount:      in.Amount,
			Description: "Recebimento fiado - Cliente: " + clientLabel(sale),
			Category:    finance.CategoryCreditReceipt,
			PaymentForm: method.String(),
			Notes:       notes,
			CreatedBy:   in.ActorID,
		})
	}

	transaction.PublishEvents(ctx, s.eventPublisher, payment, sale)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, payment.ID,
		telemetry.SpanAttrMethod, method,
		"fully_paid", fullyPaid,
	)
	if fullyPaid {
		telemetry.AddEvent(span, "sale_completed", telemetry.SpanAttrSaleID, sale.ID)
	}
	s.logger.Info("credit payment registered",
		zap.String("tenant_id", in.TenantID.String()),
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", in.Amount.String()),
		zap.String("remaining", remaining.String()),
		zap.Bool("fully_paid", fullyPaid),
	)

	return &SettlementResult{
		Payment:          ToPaymentResponse(payment),
		RemainingBalance: remaining,
		IsFullyPaid:      fullyPaid,
		SaleStatus:       string(sale.Status),
	}, nil
}

func clientLabel(sale *sales.Sale) string {
	if sale.ClientID == nil {
		return finance.UnknownClientLabel
	}
	return sale.ClientID.String()
}
