package service

import (
	"context"
	"fmt"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/logger"
	"hotelops-backend/internal/repository"
	"hotelops-backend/internal/utils"
)

type lifecycleService struct {
	reservationRepo repository.ReservationRepository
	emailSvc        EmailService
	noteRepo        repository.NotificationRepository
}

func NewLifecycleService(
	reservationRepo repository.ReservationRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) LifecycleService {
	return &lifecycleService{
		reservationRepo: reservationRepo,
		emailSvc:        emailSvc,
		noteRepo:        noteRepo,
	}
}

// chargeSettle folds extra charges into the reservation's money fields once
// the repository has reloaded them under lock.
func chargeSettle(extraCharges int64) func(*domain.Reservation) error {
	if extraCharges <= 0 {
		return nil
	}
	return func(r *domain.Reservation) error {
		return domain.ApplyExtraCharges(r, extraCharges)
	}
}

func (s *lifecycleService) CheckIn(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}

	from := res.Status
	if err := res.Transition(domain.ReservationStatusCheckedIn); err != nil {
		return nil, err
	}

	now := timeNow()
	res.ActualCheckIn = &now
	res.CheckedInBy = &actorID

	expected, err := utils.ParseDay(res.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("stored check-in date is corrupt: %w", err)
	}
	res.EarlyCheckIn = utils.Day(now).Before(expected)

	// Extra charges apply inside the repository transaction, on ledger
	// state reloaded under lock, not on the snapshot read above.
	if err := s.reservationRepo.TransitionWithRooms(ctx, res, from, domain.RoomStatusOccupied, chargeSettle(extraCharges)); err != nil {
		return nil, err
	}

	logger.Info("Guest checked in",
		"booking_reference", res.BookingReference,
		"actor", actorID,
		"early_check_in", res.EarlyCheckIn,
		"rooms", res.RoomNumbers())

	s.notify(ctx, res, "Guest Checked In",
		fmt.Sprintf("%s checked in to room(s) %v", res.CustomerName, res.RoomNumbers()),
		"CHECK_IN")
	return res, nil
}

func (s *lifecycleService) CheckOut(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}

	from := res.Status
	if err := res.Transition(domain.ReservationStatusCheckedOut); err != nil {
		return nil, err
	}

	now := timeNow()
	res.ActualCheckOut = &now
	res.CheckedOutBy = &actorID

	expected, err := utils.ParseDay(res.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("stored check-out date is corrupt: %w", err)
	}
	cutoff := expected.Add(domain.StandardCheckOutHour * time.Hour)
	res.LateCheckOut = now.After(cutoff)

	if err := s.reservationRepo.TransitionWithRooms(ctx, res, from, domain.RoomStatusAvailable, chargeSettle(extraCharges)); err != nil {
		return nil, err
	}

	actualNights := res.Nights
	if res.ActualCheckIn != nil {
		actualNights = domain.ActualNightsStayed(*res.ActualCheckIn, now)
	}
	logger.Info("Guest checked out",
		"booking_reference", res.BookingReference,
		"actor", actorID,
		"late_check_out", res.LateCheckOut,
		"actual_nights", actualNights,
		"pending_amount", res.PendingAmount)

	if err := s.emailSvc.SendCheckOutReceipt(ctx, res.CustomerEmail, res.CustomerName, res.BookingReference, res.TotalAmount+res.ExtraCharges, res.PaidAmount, res.PendingAmount); err != nil {
		logger.Warn("Check-out receipt email failed", "booking_reference", res.BookingReference, "error", err)
	}
	s.notify(ctx, res, "Guest Checked Out",
		fmt.Sprintf("%s checked out, room(s) %v released", res.CustomerName, res.RoomNumbers()),
		"CHECK_OUT")
	return res, nil
}

func (s *lifecycleService) Cancel(ctx context.Context, hotelID, reservationID, actorID int32, reason string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}

	// A guest already in-house must be checked out, not cancelled; the
	// state machine only admits cancellation from confirmed.
	from := res.Status
	if err := res.Transition(domain.ReservationStatusCancelled); err != nil {
		return nil, err
	}

	// The refunded flip is decided on the locked ledger state: a payment
	// settled after our read still turns into a refund.
	settle := func(r *domain.Reservation) error {
		if r.PaidAmount > 0 && r.PaymentStatus == domain.PaymentStatusPaid {
			r.PaymentStatus = domain.PaymentStatusRefunded
		}
		return nil
	}
	if err := s.reservationRepo.TransitionWithRooms(ctx, res, from, domain.RoomStatusAvailable, settle); err != nil {
		return nil, err
	}

	logger.Info("Reservation cancelled",
		"booking_reference", res.BookingReference,
		"actor", actorID,
		"reason", reason,
		"payment_status", res.PaymentStatus)

	if err := s.emailSvc.SendCancellationNotice(ctx, res.CustomerEmail, res.CustomerName, res.BookingReference, reason); err != nil {
		logger.Warn("Cancellation email failed", "booking_reference", res.BookingReference, "error", err)
	}
	s.notify(ctx, res, "Reservation Cancelled",
		fmt.Sprintf("Reservation %s was cancelled", res.BookingReference),
		"CANCELLED")
	return res, nil
}

func (s *lifecycleService) MarkNoShow(ctx context.Context, hotelID, reservationID, actorID int32) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}

	from := res.Status
	if err := res.Transition(domain.ReservationStatusNoShow); err != nil {
		return nil, err
	}

	// The entire room set is released, exactly as on cancellation. Any
	// retention of prepaid amounts is a ledger policy, handled separately.
	if err := s.reservationRepo.TransitionWithRooms(ctx, res, from, domain.RoomStatusAvailable, nil); err != nil {
		return nil, err
	}

	logger.Info("Reservation marked as no-show",
		"booking_reference", res.BookingReference,
		"actor", actorID,
		"rooms", res.RoomNumbers())

	s.notify(ctx, res, "No Show",
		fmt.Sprintf("Guest did not arrive for reservation %s", res.BookingReference),
		"NO_SHOW")
	return res, nil
}

func (s *lifecycleService) notify(ctx context.Context, res *domain.Reservation, title, message, kind string) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		HotelID: res.HotelID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":              kind,
			"booking_reference": res.BookingReference,
		},
	})
}
