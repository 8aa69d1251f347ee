package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors are pure — no infrastructure dependency. Conflict-shaped
// errors carry enough detail (which rooms, by how much) for the caller to
// correct and retry.

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")

	ErrNoRoomsRequested     = errors.New("at least one room is required")
	ErrReservationCancelled = errors.New("reservation is cancelled and no longer accepts payments")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrNotRefundable        = errors.New("only successful transactions can be refunded")

	// ErrConflictRetry marks transient store conflicts (serialization
	// failures, unique-constraint races). The whole operation can be safely
	// retried, since a retried creation re-validates against current state.
	ErrConflictRetry = errors.New("concurrent update conflict, retry the operation")
)

// RoomUnavailableError reports the specific rooms whose existing
// reservations overlap the requested window.
type RoomUnavailableError struct {
	RoomNumbers []string
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("rooms not available for the requested dates: %s", strings.Join(e.RoomNumbers, ", "))
}

// DuplicateRoomError reports a room id listed more than once in a request.
type DuplicateRoomError struct {
	RoomID int32
}

func (e *DuplicateRoomError) Error() string {
	return fmt.Sprintf("room %d is requested more than once", e.RoomID)
}

// RoomBlockedError reports rooms that cannot be booked because the catalog
// has them in maintenance or out of order.
type RoomBlockedError struct {
	RoomNumbers []string
	Reason      string
}

func (e *RoomBlockedError) Error() string {
	return fmt.Sprintf("rooms %s are %s", strings.Join(e.RoomNumbers, ", "), e.Reason)
}

// InvalidDateRangeError aggregates every stay-window rule the request broke.
type InvalidDateRangeError struct {
	Reasons []string
}

func (e *InvalidDateRangeError) Error() string {
	return "invalid date range: " + strings.Join(e.Reasons, "; ")
}

// OccupancyExceededError reports a guest count above the summed max
// occupancy of the requested rooms' categories.
type OccupancyExceededError struct {
	Max       int32
	Requested int32
}

func (e *OccupancyExceededError) Error() string {
	return fmt.Sprintf("guest count %d exceeds maximum occupancy %d for the selected rooms", e.Requested, e.Max)
}

// InvalidTransitionError reports a lifecycle edge outside the state machine.
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move reservation from %s to %s", e.From, e.To)
}

// OverpaymentError reports a payment above the outstanding balance.
type OverpaymentError struct {
	Pending   int64
	Requested int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %d exceeds pending amount %d", e.Requested, e.Pending)
}
