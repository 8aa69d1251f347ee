package domain

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusNoShow     ReservationStatus = "no_show"
)

// Terminal reports whether no further lifecycle transition may leave s.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case ReservationStatusCheckedOut, ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status holds its rooms
// against overlapping date windows.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationStatusConfirmed || s == ReservationStatusCheckedIn
}

// RoomBreakdown is the denormalized per-room pricing entry attached to a
// reservation. Subtotals are captured at creation time; later price edits on
// the room catalog never rewrite an existing breakdown.
type RoomBreakdown struct {
	RoomID        int32  `json:"room_id"`
	RoomNumber    string `json:"room_number"`
	CategoryName  string `json:"category_name"`
	GuestsInRoom  int32  `json:"guests_in_room"`
	PricePerNight int64  `json:"price_per_night"`
	Nights        int32  `json:"nights"`
	Subtotal      int64  `json:"subtotal"`
}

// Reservation is the central aggregate. It is created only through the
// reservation builder, mutated only through lifecycle transitions and the
// settlement ledger, and never physically deleted.
type Reservation struct {
	ID               int32             `json:"id"`
	HotelID          int32             `json:"hotel_id"`
	BookingReference string            `json:"booking_reference"`
	CustomerName     string            `json:"customer_name"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerPhone    string            `json:"customer_phone"`
	GuestsCount      int32             `json:"guests_count"`
	CheckInDate      string            `json:"check_in_date"`  // yyyy-mm-dd, inclusive
	CheckOutDate     string            `json:"check_out_date"` // yyyy-mm-dd, exclusive
	Nights           int32             `json:"nights"`
	Status           ReservationStatus `json:"status"`
	Rooms            []RoomBreakdown   `json:"rooms"`
	TotalRooms       int32             `json:"total_rooms"`
	BookingSource    string            `json:"booking_source"`

	TotalAmount    int64         `json:"total_amount"`
	DiscountAmount int64         `json:"discount_amount"`
	ExtraCharges   int64         `json:"extra_charges"`
	PaidAmount     int64         `json:"paid_amount"`
	PendingAmount  int64         `json:"pending_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status"`

	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`
	EarlyCheckIn   bool       `json:"early_check_in"`
	LateCheckOut   bool       `json:"late_check_out"`
	CheckedInBy    *int32     `json:"checked_in_by,omitempty"`
	CheckedOutBy   *int32     `json:"checked_out_by,omitempty"`

	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// RoomIDs returns the room set in breakdown order.
func (r *Reservation) RoomIDs() []int32 {
	ids := make([]int32, 0, len(r.Rooms))
	for _, br := range r.Rooms {
		ids = append(ids, br.RoomID)
	}
	return ids
}

// RoomNumbers returns the room numbers in breakdown order.
func (r *Reservation) RoomNumbers() []string {
	nums := make([]string, 0, len(r.Rooms))
	for _, br := range r.Rooms {
		nums = append(nums, br.RoomNumber)
	}
	return nums
}

// HotelCode is the 4-character hotel prefix used in booking references and
// receipt numbers: the last four digits of the hotel id, zero padded. The
// persisted format is a compatibility surface and must stay stable.
func HotelCode(hotelID int32) string {
	return fmt.Sprintf("%04d", hotelID%10000)
}

// BookingReference formats the externally facing reservation reference:
// {4-char-hotel-code}-{YYYYMMDD}-{4-digit-seq}.
func BookingReference(hotelID int32, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", HotelCode(hotelID), day.Format("20060102"), seq)
}
