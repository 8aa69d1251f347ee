package domain

import (
	"math"
	"time"
)

// StandardCheckOutHour is the cut-off used to flag late checkouts: leaving
// after 12:00 on the expected checkout date counts as late.
const StandardCheckOutHour = 12

// CanTransition reports whether the lifecycle edge from -> to exists.
// confirmed -> checked_in -> checked_out is the main path; cancellation and
// no-show branch off confirmed only. Nothing leaves a terminal status.
func CanTransition(from, to ReservationStatus) bool {
	switch to {
	case ReservationStatusCheckedIn:
		return from == ReservationStatusConfirmed
	case ReservationStatusCheckedOut:
		return from == ReservationStatusCheckedIn
	case ReservationStatusCancelled, ReservationStatusNoShow:
		return from == ReservationStatusConfirmed
	}
	return false
}

// Transition validates and applies a status change. The caller persists the
// reservation and the room-status side effects in one transaction.
func (r *Reservation) Transition(to ReservationStatus) error {
	if !CanTransition(r.Status, to) {
		return &InvalidTransitionError{From: r.Status, To: to}
	}
	r.Status = to
	return nil
}

// ActualNightsStayed computes the billable nights between the recorded
// check-in and check-out instants, never less than one.
func ActualNightsStayed(in, out time.Time) int32 {
	nights := int32(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}
