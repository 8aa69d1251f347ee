package repository

import (
	"context"

	"hotelops-backend/internal/domain"
)

// RoomRepository is the narrow view of the room catalog the reservation
// engine consumes: price/status reads plus the lifecycle status writes.
type RoomRepository interface {
	GetByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.Room, error)
	GetCategoriesByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.RoomCategory, error)
	UpdateStatus(ctx context.Context, hotelID int32, roomIDs []int32, status domain.RoomStatus) error
}

type ReservationRepository interface {
	// CreateWithRooms persists a reservation and its room breakdown in one
	// serializable transaction: the per-room overlap check is re-run inside
	// the transaction, the per-hotel-per-day booking sequence is atomically
	// incremented, and any conflict aborts the whole insert. On success the
	// reservation's ID and BookingReference are filled in.
	CreateWithRooms(ctx context.Context, res *domain.Reservation) error

	GetByID(ctx context.Context, hotelID, id int32) (*domain.Reservation, error)
	GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error)
	List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListArrivalsOn(ctx context.Context, day string) ([]domain.Reservation, error)

	// FindOverlapping returns the room numbers among roomIDs that are held
	// by a blocking (confirmed or checked-in) reservation whose half-open
	// stay window intersects [checkIn, checkOut). excludeReservationID lets
	// an update re-check a reservation's own rooms against everyone else;
	// pass 0 to exclude nothing.
	FindOverlapping(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error)

	// TransitionWithRooms commits a lifecycle transition atomically: the
	// reservation row is updated only if it is still in `from` status, and
	// every held room is moved to roomStatus in the same transaction. Before
	// writing, the money columns on res are reloaded under a row lock and
	// the optional settle func is applied to them, so a payment committed
	// after the caller's read is never overwritten by the stale snapshot. A
	// lost status race surfaces as domain.ErrConflictRetry.
	TransitionWithRooms(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus, roomStatus domain.RoomStatus, settle func(*domain.Reservation) error) error

	// UpdateStayAndContact rewrites dates, contact fields, pricing and the
	// room breakdown of a non-terminal reservation in one transaction. The
	// derived settlement fields are recomputed in the transaction from the
	// locked row's paid amount, not from the caller's snapshot.
	UpdateStayAndContact(ctx context.Context, res *domain.Reservation) error
}

type PaymentRepository interface {
	// RecordPayment inserts a successful settlement transaction and applies
	// it to the reservation's money fields, with the reservation row locked
	// for the duration. Cancelled reservations and overpayments are rejected
	// inside the same transaction. Returns the updated reservation.
	RecordPayment(ctx context.Context, p *domain.PaymentTransaction) (*domain.Reservation, error)

	// RefundTransaction flips a successful transaction to refunded and
	// reverses its contribution to paid_amount in one transaction.
	RefundTransaction(ctx context.Context, hotelID, transactionID int32) (*domain.PaymentTransaction, *domain.Reservation, error)

	// AddExtraCharges adds post-booking charges and recomputes the derived
	// settlement fields with the reservation row locked.
	AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error)

	GetByID(ctx context.Context, hotelID, id int32) (*domain.PaymentTransaction, error)
	ListByReservation(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, hotelID, staffID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, staffID int32) error
}
