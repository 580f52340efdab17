package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinancialMovement(t *testing.T) {
	tenantID := uuid.New()

	m, err := NewFinancialMovement(tenantID, uuid.New(), MovementParams{
		Direction:   DirectionOutflow,
		Amount:      decimal.NewFromInt(30),
		Description: "Compra de 3 un de Arroz",
		Category:    CategoryStockPurchase,
	})
	require.NoError(t, err)
	assert.Equal(t, DirectionOutflow, m.Direction)
	assert.Equal(t, m.CreatedAt, m.MovementDate)
	assert.Equal(t, tenantID, m.TenantID)

	_, err = NewFinancialMovement(tenantID, uuid.New(), MovementParams{Direction: "SIDEWAYS", Amount: decimal.NewFromInt(1), Description: "x"})
	assert.Error(t, err)
	_, err = NewFinancialMovement(tenantID, uuid.New(), MovementParams{Direction: DirectionInflow, Amount: decimal.Zero, Description: "x"})
	assert.Error(t, err)
	_, err = NewFinancialMovement(tenantID, uuid.New(), MovementParams{Direction: DirectionInflow, Amount: decimal.RequireFromString("1.005"), Description: "x"})
	assert.Error(t, err)
	_, err = NewFinancialMovement(tenantID, uuid.New(), MovementParams{Direction: DirectionInflow, Amount: decimal.NewFromInt(1)})
	assert.Error(t, err)
	_, err = NewFinancialMovement(uuid.Nil, uuid.New(), MovementParams{Direction: DirectionInflow, Amount: decimal.NewFromInt(1), Description: "x"})
	assert.Error(t, err)
}
