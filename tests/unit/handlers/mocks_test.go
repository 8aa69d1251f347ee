package handlers

import (
	"context"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, hotelID int32, in service.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Update(ctx context.Context, hotelID, reservationID int32, in service.UpdateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Get(ctx context.Context, hotelID, reservationID int32) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, hotelID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) CheckRooms(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error) {
	args := m.Called(ctx, hotelID, roomIDs, checkIn, checkOut, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockAvailabilityService) Quote(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string) (*service.AvailabilityQuote, error) {
	args := m.Called(ctx, hotelID, roomIDs, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AvailabilityQuote), args.Error(1)
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

// MockSettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) AddPayment(ctx context.Context, hotelID, reservationID int32, amount int64, method domain.PaymentMethod, referenceID string, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, amount, method, referenceID, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Get(1).(*domain.Reservation), args.Error(2)
}
func (m *MockSettlementService) Refund(ctx context.Context, hotelID, transactionID, actorID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	args := m.Called(ctx, hotelID, transactionID, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Get(1).(*domain.Reservation), args.Error(2)
}
func (m *MockSettlementService) AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error) {
	args := m.Called(ctx, hotelID, reservationID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockSettlementService) ListTransactions(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error) {
	args := m.Called(ctx, hotelID, reservationID, page, pageSize)
	return args.Get(0).([]domain.PaymentTransaction), args.Get(1).(int32), args.Error(2)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, hotelID, staffID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, hotelID, staffID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, staffID, notificationID int32) error {
	args := m.Called(ctx, staffID, notificationID)
	return args.Error(0)
}
