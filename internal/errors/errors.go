package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// UniquenessError reports a violated uniqueness invariant, e.g. two orders
// by the same coordinator for the same restaurant, or two items with the
// same description on one order.
type UniquenessError struct {
	Message string
}

func (e *UniquenessError) Error() string {
	return e.Message
}

func NewUniquenessError(message string) *UniquenessError {
	return &UniquenessError{Message: message}
}

func IsUniquenessError(err error) (*UniquenessError, bool) {
	if ue, ok := err.(*UniquenessError); ok {
		return ue, true
	}
	return nil, false
}

// InvalidTransitionError reports a lifecycle transition that is not legal
// from the order's current state.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	if ite, ok := err.(*InvalidTransitionError); ok {
		return ite, true
	}
	return nil, false
}

// StateError reports an item write attempted while the owning order is no
// longer preparing. Create, update and delete all fail with this type so
// callers can detect "order not writable" uniformly.
type StateError struct {
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("order is not writable in state %s", e.State)
}

func NewStateError(state string) *StateError {
	return &StateError{State: state}
}

func IsStateError(err error) (*StateError, bool) {
	if se, ok := err.(*StateError); ok {
		return se, true
	}
	return nil, false
}

type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	if de, ok := err.(*DeadlockError); ok {
		return de, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
