package service

import (
	"context"

	"hotelops-backend/internal/domain"
)

// CreateReservationInput carries a reservation creation request into the
// builder. GuestsPerRoom is optional; when absent, guests are spread evenly
// across the room set.
type CreateReservationInput struct {
	RoomIDs        []int32
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	CheckInDate    string
	CheckOutDate   string
	GuestsCount    int32
	GuestsPerRoom  map[int32]int32
	DiscountAmount int64
	BookingSource  string
}

// UpdateReservationInput carries a stay/contact amendment. Empty strings
// leave the stored value unchanged; date fields must be set together.
type UpdateReservationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	GuestsCount   int32
	CheckInDate   string
	CheckOutDate  string
}

// RoomAvailability is the per-room line of a pre-flight availability quote.
type RoomAvailability struct {
	RoomID     int32             `json:"room_id"`
	RoomNumber string            `json:"room_number"`
	Status     domain.RoomStatus `json:"status"`
	Available  bool              `json:"available"`
	Subtotal   int64             `json:"subtotal"`
}

// AvailabilityQuote is the read-only pre-flight answer for a prospective
// booking: no state changes, no holds.
type AvailabilityQuote struct {
	Available      bool               `json:"available"`
	Nights         int32              `json:"nights"`
	EstimatedTotal int64              `json:"estimated_total"`
	Rooms          []RoomAvailability `json:"rooms"`
}

type AvailabilityService interface {
	// CheckRooms returns the room numbers among roomIDs already held by a
	// blocking reservation overlapping [checkIn, checkOut).
	CheckRooms(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error)
	Quote(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string) (*AvailabilityQuote, error)
}

type ReservationService interface {
	Create(ctx context.Context, hotelID int32, in CreateReservationInput) (*domain.Reservation, error)
	Update(ctx context.Context, hotelID, reservationID int32, in UpdateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, hotelID, reservationID int32) (*domain.Reservation, error)
	GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error)
	List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
}

type LifecycleService interface {
	CheckIn(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error)
	CheckOut(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, hotelID, reservationID, actorID int32, reason string) (*domain.Reservation, error)
	MarkNoShow(ctx context.Context, hotelID, reservationID, actorID int32) (*domain.Reservation, error)
}

type SettlementService interface {
	AddPayment(ctx context.Context, hotelID, reservationID int32, amount int64, method domain.PaymentMethod, referenceID string, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error)
	Refund(ctx context.Context, hotelID, transactionID, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error)
	AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error)
	ListTransactions(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, hotelID, staffID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, staffID, notificationID int32) error
}

// EmailService is the best-effort guest notification hook. Send failures are
// logged by callers and never roll back the transaction they follow.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, reference, checkIn, checkOut string, total int64) error
	SendCancellationNotice(ctx context.Context, email, name, reference, reason string) error
	SendCheckOutReceipt(ctx context.Context, email, name, reference string, total, paid, pending int64) error
	SendArrivalReminder(ctx context.Context, email, name, reference, checkIn string) error
	SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amount, pending int64) error
}
