package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaospizza/internal/errors"
)

func TestNewOrderItem_HasSlugAndFields(t *testing.T) {
	item, err := NewOrderItem(1, "Bernd", "Pizza Salami", decimal.RequireFromString("5.60"), 1)
	require.NoError(t, err)

	assert.Equal(t, "bernd-pizza-salami", item.Slug)
	assert.Equal(t, uint(1), item.OrderID)
	assert.Equal(t, "Bernd", item.Participant)
	assert.Equal(t, "Pizza Salami", item.Description)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("5.60")))
	assert.Equal(t, 1, item.Amount)
}

func TestNewOrderItem_RejectsInvalidFields(t *testing.T) {
	cases := []struct {
		name        string
		participant string
		description string
		price       decimal.Decimal
		amount      int
		field       string
	}{
		{"missing participant", "", "Test", decimal.RequireFromString("7.20"), 1, "participant"},
		{"missing description", "Kevin", "", decimal.RequireFromString("7.20"), 1, "description"},
		{"negative price", "Kevin", "Test", decimal.RequireFromString("-0.01"), 1, "price"},
		{"zero amount", "Kevin", "Test", decimal.RequireFromString("7.20"), 0, "amount"},
		{"negative amount", "Kevin", "Test", decimal.RequireFromString("7.20"), -2, "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrderItem(1, tc.participant, tc.description, tc.price, tc.amount)

			ve, ok := errors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Details[0].Field)
		})
	}
}

func TestOrderItem_TotalPrice_ExactDecimal(t *testing.T) {
	item := OrderItem{Price: decimal.RequireFromString("7.20"), Amount: 3}

	assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("21.60")),
		"got %s", item.TotalPrice())
}

func TestOrderItem_TotalPrice_SingleAmount(t *testing.T) {
	item := OrderItem{Price: decimal.RequireFromString("7.21"), Amount: 1}

	assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("7.21")))
}
