package service

import (
	"context"
	"fmt"
	"strings"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/logger"
	"hotelops-backend/internal/repository"

	"github.com/google/uuid"
)

type settlementService struct {
	paymentRepo repository.PaymentRepository
	emailSvc    EmailService
}

func NewSettlementService(paymentRepo repository.PaymentRepository, emailSvc EmailService) SettlementService {
	return &settlementService{
		paymentRepo: paymentRepo,
		emailSvc:    emailSvc,
	}
}

// newReceiptNumber allocates a receipt id unique per hotel and day; the
// random suffix keeps concurrent front desks from colliding.
func newReceiptNumber(hotelID int32) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("RCP-%s-%s-%s", domain.HotelCode(hotelID), timeNow().UTC().Format("20060102"), suffix)
}

func (s *settlementService) AddPayment(ctx context.Context, hotelID, reservationID int32, amount int64, method domain.PaymentMethod, referenceID string, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	if method == "" {
		method = domain.PaymentMethodCash
	}

	p := &domain.PaymentTransaction{
		HotelID:       hotelID,
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		ReceiptNumber: newReceiptNumber(hotelID),
		ReferenceID:   referenceID,
		RecordedBy:    &actorID,
	}

	// Cancelled-status and overpayment guards run inside the repository
	// transaction with the reservation row locked.
	res, err := s.paymentRepo.RecordPayment(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Payment recorded",
		"receipt_number", p.ReceiptNumber,
		"booking_reference", res.BookingReference,
		"amount", amount,
		"paid_amount", res.PaidAmount,
		"pending_amount", res.PendingAmount,
		"payment_status", res.PaymentStatus)

	if err := s.emailSvc.SendPaymentReceipt(ctx, res.CustomerEmail, res.CustomerName, p.ReceiptNumber, amount, res.PendingAmount); err != nil {
		logger.Warn("Payment receipt email failed", "receipt_number", p.ReceiptNumber, "error", err)
	}
	return p, res, nil
}

func (s *settlementService) Refund(ctx context.Context, hotelID, transactionID, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	p, res, err := s.paymentRepo.RefundTransaction(ctx, hotelID, transactionID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Payment refunded",
		"receipt_number", p.ReceiptNumber,
		"booking_reference", res.BookingReference,
		"amount", p.Amount,
		"actor", actorID,
		"paid_amount", res.PaidAmount,
		"payment_status", res.PaymentStatus)
	return p, res, nil
}

func (s *settlementService) AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	res, err := s.paymentRepo.AddExtraCharges(ctx, hotelID, reservationID, amount)
	if err != nil {
		return nil, err
	}
	logger.Info("Extra charges added",
		"booking_reference", res.BookingReference,
		"amount", amount,
		"pending_amount", res.PendingAmount)
	return res, nil
}

func (s *settlementService) ListTransactions(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.paymentRepo.ListByReservation(ctx, hotelID, reservationID, page, pageSize)
}
