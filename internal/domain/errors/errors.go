package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownDriver      = errors.New("unknown driver")
	ErrDriverUnavailable  = errors.New("driver unavailable")
)

// ValidationError reports the first missing or malformed input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing field %q", e.Field)
}

// InvalidOrdersError lists requested order ids that were not in the
// status the operation requires.
type InvalidOrdersError struct {
	IDs []string
}

func (e *InvalidOrdersError) Error() string {
	return fmt.Sprintf("orders not in required status: %s", strings.Join(e.IDs, ", "))
}

// InvalidTransitionError reports an order status change rejected by
// the lifecycle transition table.
type InvalidTransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s: illegal status transition %s -> %s", e.OrderID, e.From, e.To)
}

// DownstreamError marks a per-order cascade update that failed after
// the primary record was already written. The order id is surfaced so
// an operator can reconcile manually.
type DownstreamError struct {
	OrderID string
	Err     error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("order %s: downstream update failed: %v", e.OrderID, e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}
