package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemFields carries the writable fields of an order item between the
// presentation layer and the item service.
type ItemFields struct {
	Participant string
	Description string
	Price       decimal.Decimal
	Amount      int
}

type CreateOrderRequest struct {
	Coordinator    string `json:"coordinator"`
	RestaurantName string `json:"restaurantName"`
	RestaurantURL  string `json:"restaurantUrl,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderItemRequest struct {
	Participant string          `json:"participant"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Amount      int             `json:"amount"`
}

type OrderResponse struct {
	Slug           string              `json:"slug"`
	Coordinator    string              `json:"coordinator"`
	RestaurantName string              `json:"restaurantName"`
	RestaurantURL  *string             `json:"restaurantUrl,omitempty"`
	State          string              `json:"state"`
	CancelReason   *string             `json:"cancelReason,omitempty"`
	TotalPrice     decimal.Decimal     `json:"totalPrice"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`

	// RememberedParticipant echoes the participant name stored in the
	// caller's session cookie so clients can prefill their add-item form.
	RememberedParticipant string `json:"rememberedParticipant,omitempty"`
}

type OrderSummaryResponse struct {
	Slug           string    `json:"slug"`
	Coordinator    string    `json:"coordinator"`
	RestaurantName string    `json:"restaurantName"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"createdAt"`
}

type OrderItemResponse struct {
	Slug        string          `json:"slug"`
	Participant string          `json:"participant"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Amount      int             `json:"amount"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type TransitionResponse struct {
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	Timestamp time.Time `json:"timestamp"`
}
