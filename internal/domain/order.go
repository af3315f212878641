package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"chaospizza/internal/errors"
)

// State is the lifecycle state of an order. Transitions are one-directional:
//
//	preparing -> ordering -> ordered -> delivered
//
// and preparing, ordering and ordered may move to canceled. Delivered and
// canceled are terminal.
type State string

const (
	StatePreparing State = "preparing"
	StateOrdering  State = "ordering"
	StateOrdered   State = "ordered"
	StateDelivered State = "delivered"
	StateCanceled  State = "canceled"
)

var stateTransitions = map[State][]State{
	StatePreparing: {StateOrdering, StateCanceled},
	StateOrdering:  {StateOrdered, StateCanceled},
	StateOrdered:   {StateDelivered, StateCanceled},
	StateDelivered: nil,
	StateCanceled:  nil,
}

func (s State) Valid() bool {
	_, ok := stateTransitions[s]
	return ok
}

func (s State) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError unless moving from s
// to next is legal.
func (s State) ValidateTransition(next State) error {
	if !s.CanTransitionTo(next) {
		return errors.NewInvalidTransitionError(string(s), string(next))
	}
	return nil
}

// Order is the aggregate root of a group food order. A coordinator opens it
// against a restaurant, participants attach items while it is preparing, and
// it then walks the one-way lifecycle above.
type Order struct {
	ID             uint
	Coordinator    string
	RestaurantName string
	RestaurantURL  *string
	Slug           string
	State          State
	CancelReason   *string
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrder validates the inputs and returns an order in the preparing state
// with its slug derived from coordinator and restaurant name. The slug is
// assigned exactly once here and never changes. An empty restaurantURL means
// no URL.
func NewOrder(coordinator, restaurantName, restaurantURL string) (*Order, error) {
	var details []errors.ValidationDetail

	if strings.TrimSpace(coordinator) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "coordinator",
			Message: "coordinator is required",
		})
	}

	if strings.TrimSpace(restaurantName) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "restaurantName",
			Message: "restaurantName is required",
		})
	}

	if restaurantURL != "" {
		if err := validateAbsoluteURL(restaurantURL); err != nil {
			details = append(details, errors.ValidationDetail{
				Field:   "restaurantUrl",
				Message: err.Error(),
			})
		}
	}

	if len(details) > 0 {
		return nil, errors.NewValidationError("validation failed", details...)
	}

	order := &Order{
		Coordinator:    coordinator,
		RestaurantName: restaurantName,
		Slug:           slug.Make(coordinator + " " + restaurantName),
		State:          StatePreparing,
	}
	if restaurantURL != "" {
		order.RestaurantURL = &restaurantURL
	}

	return order, nil
}

func (o *Order) IsPreparing() bool { return o.State == StatePreparing }
func (o *Order) IsOrdering() bool  { return o.State == StateOrdering }
func (o *Order) IsOrdered() bool   { return o.State == StateOrdered }
func (o *Order) IsDelivered() bool { return o.State == StateDelivered }
func (o *Order) IsCanceled() bool  { return o.State == StateCanceled }

// TotalPrice sums the total prices of all loaded items. Zero when the order
// has no items.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// ValidateCancelReason checks the mandatory cancellation reason. Whether the
// cancel edge itself is legal is checked against the authoritative state at
// transition time.
func ValidateCancelReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.NewValidationError("cancellation requires a reason", errors.ValidationDetail{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("restaurantUrl is not a valid URL")
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("restaurantUrl must be an absolute URL")
	}
	return nil
}
