package domain

import "time"

// Transition is one append-only audit record of an order lifecycle change.
// Records are created as a side effect of a successful transition and are
// never updated or deleted.
type Transition struct {
	ID        uint
	OrderID   uint
	FromState State
	ToState   State
	CreatedAt time.Time
}
