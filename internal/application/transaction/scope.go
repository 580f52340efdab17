package transaction

import (
	"context"

	"github.com/bizcore/backend/internal/domain/finance"
	"github.com/bizcore/backend/internal/domain/inventory"
	"github.com/bizcore/backend/internal/domain/sales"
)

// Scope runs a unit of work atomically. When fn returns an error every write
// made through the repositories it received is rolled back. Implementations
// may run fn more than once when the store reports a transient conflict, so
// fn must not have side effects outside the repositories.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories exposes the repositories bound to one transaction
type Repositories interface {
	SaleRepo() sales.SaleRepository
	PaymentRepo() finance.PaymentRepository
	InventoryRepo() inventory.InventoryItemRepository
	MovementRepo() finance.FinancialMovementRepository
}

// NoOpScope hands fixed repositories to fn without a transaction. Useful in
// tests that mock the repositories.
type NoOpScope struct {
	Sales     sales.SaleRepository
	Payments  finance.PaymentRepository
	Inventory inventory.InventoryItemRepository
	Movements finance.FinancialMovementRepository
}

// Execute runs fn once with the scope's repositories
func (s *NoOpScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

func (s *NoOpScope) SaleRepo() sales.SaleRepository                    { return s.Sales }
func (s *NoOpScope) PaymentRepo() finance.PaymentRepository            { return s.Payments }
func (s *NoOpScope) InventoryRepo() inventory.InventoryItemRepository  { return s.Inventory }
func (s *NoOpScope) MovementRepo() finance.FinancialMovementRepository { return s.Movements }

var (
	_ Scope        = (*NoOpScope)(nil)
	_ Repositories = (*NoOpScope)(nil)
)
