package unit

import (
	"context"

	"hotelops-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.Room, error) {
	args := m.Called(ctx, hotelID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) GetCategoriesByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.RoomCategory, error) {
	args := m.Called(ctx, hotelID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomCategory), args.Error(1)
}
func (m *MockRoomRepo) UpdateStatus(ctx context.Context, hotelID int32, roomIDs []int32, status domain.RoomStatus) error {
	args := m.Called(ctx, hotelID, roomIDs, status)
	return args.Error(0)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateWithRooms(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, hotelID, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, hotelID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListArrivalsOn(ctx context.Context, day string) ([]domain.Reservation, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) FindOverlapping(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error) {
	args := m.Called(ctx, hotelID, roomIDs, checkIn, checkOut, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockReservationRepo) TransitionWithRooms(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus, roomStatus domain.RoomStatus, settle func(*domain.Reservation) error) error {
	args := m.Called(ctx, res, from, roomStatus)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	// The real repository reloads the money fields under lock and applies
	// settle to them; here it runs against the given reservation.
	if settle != nil {
		return settle(res)
	}
	return nil
}
func (m *MockReservationRepo) UpdateStayAndContact(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) RecordPayment(ctx context.Context, p *domain.PaymentTransaction) (*domain.Reservation, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockPaymentRepo) RefundTransaction(ctx context.Context, hotelID, transactionID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	args := m.Called(ctx, hotelID, transactionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Get(1).(*domain.Reservation), args.Error(2)
}
func (m *MockPaymentRepo) AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, hotelID, id int32) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, hotelID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}
func (m *MockPaymentRepo) ListByReservation(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error) {
	args := m.Called(ctx, hotelID, reservationID, page, pageSize)
	return args.Get(0).([]domain.PaymentTransaction), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, hotelID, staffID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, hotelID, staffID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, staffID int32) error {
	args := m.Called(ctx, id, staffID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name, reference, checkIn, checkOut string, total int64) error {
	args := m.Called(ctx, email, name, reference, checkIn, checkOut, total)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotice(ctx context.Context, email, name, reference, reason string) error {
	args := m.Called(ctx, email, name, reference, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckOutReceipt(ctx context.Context, email, name, reference string, total, paid, pending int64) error {
	args := m.Called(ctx, email, name, reference, total, paid, pending)
	return args.Error(0)
}
func (m *MockEmailService) SendArrivalReminder(ctx context.Context, email, name, reference, checkIn string) error {
	args := m.Called(ctx, email, name, reference, checkIn)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amount, pending int64) error {
	args := m.Called(ctx, email, name, receiptNumber, amount, pending)
	return args.Error(0)
}

// MockLifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) CheckIn(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, actorID, extraCharges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockLifecycleService) CheckOut(ctx context.Context, hotelID, reservationID, actorID int32, extraCharges int64) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, actorID, extraCharges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockLifecycleService) Cancel(ctx context.Context, hotelID, reservationID, actorID int32, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockLifecycleService) MarkNoShow(ctx context.Context, hotelID, reservationID, actorID int32) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
