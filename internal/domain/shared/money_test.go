package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHasMoneyScale(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"100", true},
		{"99.99", true},
		{"10.500", true},
		{"0.1", true},
		{"99.996", false},
		{"0.333", false},
		{"-1.001", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMoneyScale(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestCheckMoneyScale(t *testing.T) {
	assert.NoError(t, CheckMoneyScale("amount", decimal.RequireFromString("12.30")))

	err := CheckMoneyScale("amount", decimal.RequireFromString("12.345"))
	assert.True(t, IsKind(err, KindValidation))
	assert.Contains(t, err.Error(), "amount")
}
