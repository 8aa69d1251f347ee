package domain

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type TransactionStatus string

const (
	TransactionStatusSuccess  TransactionStatus = "success"
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusFailed   TransactionStatus = "failed"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodOnline PaymentMethod = "online"
)

// PaymentTransaction is one discrete settlement event against a reservation.
// Rows are immutable once written, except for the success -> refunded status
// flip; a transaction is never deleted while its amount is still reflected
// in the reservation's paid_amount.
type PaymentTransaction struct {
	ID            int32             `json:"id"`
	HotelID       int32             `json:"hotel_id"`
	ReservationID int32             `json:"reservation_id"`
	Amount        int64             `json:"amount"`
	Method        PaymentMethod     `json:"method"`
	Status        TransactionStatus `json:"status"`
	ReceiptNumber string            `json:"receipt_number"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	RecordedBy    *int32            `json:"recorded_by,omitempty"`
	CreatedOn     string            `json:"created_on"`
}
