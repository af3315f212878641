package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"chaospizza/internal/errors"
)

// OrderItem is a line item owned by exactly one order. Items are writable
// only while the owning order is preparing; the gate itself is enforced by
// the storage services, not here.
type OrderItem struct {
	ID          uint
	OrderID     uint
	Participant string
	Description string
	Price       decimal.Decimal
	Amount      int
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem validates the inputs and returns an item with its slug
// derived from participant and description. The slug is assigned once and
// kept even if the description changes later.
func NewOrderItem(orderID uint, participant, description string, price decimal.Decimal, amount int) (*OrderItem, error) {
	if err := ValidateItemFields(participant, description, price, amount); err != nil {
		return nil, err
	}

	return &OrderItem{
		OrderID:     orderID,
		Participant: participant,
		Description: description,
		Price:       price,
		Amount:      amount,
		Slug:        slug.Make(participant + " " + description),
	}, nil
}

// ValidateItemFields checks the field-level invariants shared by item
// creation and update: participant and description required, price
// non-negative, amount positive.
func ValidateItemFields(participant, description string, price decimal.Decimal, amount int) error {
	var details []errors.ValidationDetail

	if strings.TrimSpace(participant) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "participant",
			Message: "participant is required",
		})
	}

	if strings.TrimSpace(description) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "description",
			Message: "description is required",
		})
	}

	if price.IsNegative() {
		details = append(details, errors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	if amount < 1 {
		details = append(details, errors.ValidationDetail{
			Field:   "amount",
			Message: "amount must be a positive integer",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}

	return nil
}

// TotalPrice is price times amount, computed with exact decimal arithmetic.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Amount)))
}
