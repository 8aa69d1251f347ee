package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "hotelops-backend/internal/api/http"
	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(resSvc *MockReservationService, availSvc *MockAvailabilityService, lifeSvc *MockLifecycleService, setSvc *MockSettlementService, noteSvc *MockNotificationService) http.Handler {
	return httpapi.NewRouter(
		httpapi.NewReservationHandler(resSvc, availSvc),
		httpapi.NewLifecycleHandler(lifeSvc),
		httpapi.NewPaymentHandler(setSvc),
		httpapi.NewNotificationHandler(noteSvc),
	)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, hotelHeader string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if hotelHeader != "" {
		req.Header.Set("X-Hotel-ID", hotelHeader)
	}
	req.Header.Set("X-Staff-ID", "9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:               42,
		HotelID:          7,
		BookingReference: "0007-20260901-0001",
		CustomerName:     "Asha Verma",
		CustomerEmail:    "asha@test.com",
		GuestsCount:      2,
		CheckInDate:      "2026-09-10",
		CheckOutDate:     "2026-09-12",
		Nights:           2,
		Status:           domain.ReservationStatusConfirmed,
		Rooms: []domain.RoomBreakdown{
			{RoomID: 1, RoomNumber: "101", CategoryName: "Standard", GuestsInRoom: 2, PricePerNight: 10000, Nights: 2, Subtotal: 20000},
		},
		TotalRooms:    1,
		TotalAmount:   20000,
		PendingAmount: 20000,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func TestReservationHandler_Create(t *testing.T) {
	body := map[string]interface{}{
		"room_ids":       []int32{1},
		"customer_name":  "Asha Verma",
		"customer_email": "asha@test.com",
		"check_in_date":  "2026-09-10",
		"check_out_date": "2026-09-12",
		"guests_count":   2,
	}

	t.Run("Success", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Create", mock.Anything, int32(7), mock.AnythingOfType("service.CreateReservationInput")).Return(sampleReservation(), nil)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/reservations", body, "7")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Reservation domain.Reservation `json:"reservation"`
			Summary     struct {
				Total int64 `json:"total"`
			} `json:"booking_summary"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "0007-20260901-0001", resp.Reservation.BookingReference)
		assert.Equal(t, int64(20000), resp.Summary.Total)
	})

	t.Run("Missing Hotel Scope", func(t *testing.T) {
		router := newTestRouter(new(MockReservationService), new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/reservations", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Room Conflict Maps To 409", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Create", mock.Anything, int32(7), mock.Anything).Return(nil, &domain.RoomUnavailableError{RoomNumbers: []string{"101"}})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/reservations", body, "7")
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp struct {
			RoomNumbers []string `json:"room_numbers"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"101"}, resp.RoomNumbers)
	})

	t.Run("Bad Date Range Maps To 400", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Create", mock.Anything, int32(7), mock.Anything).Return(nil, &domain.InvalidDateRangeError{Reasons: []string{"check-out date must be after check-in date"}})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/reservations", body, "7")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Retryable Conflict Flagged", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Create", mock.Anything, int32(7), mock.Anything).Return(nil, domain.ErrConflictRetry)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/reservations", body, "7")
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp struct {
			Retryable bool `json:"retryable"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Retryable)
	})
}

func TestReservationHandler_Quote(t *testing.T) {
	availSvc := new(MockAvailabilityService)
	router := newTestRouter(new(MockReservationService), availSvc, new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

	availSvc.On("Quote", mock.Anything, int32(7), []int32{1}, "2026-09-10", "2026-09-12").Return(&service.AvailabilityQuote{
		Available:      true,
		Nights:         2,
		EstimatedTotal: 20000,
		Rooms: []service.RoomAvailability{
			{RoomID: 1, RoomNumber: "101", Status: domain.RoomStatusAvailable, Available: true, Subtotal: 20000},
		},
	}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/availability/quote", map[string]interface{}{
		"room_ids":       []int32{1},
		"check_in_date":  "2026-09-10",
		"check_out_date": "2026-09-12",
	}, "7")
	assert.Equal(t, http.StatusOK, rec.Code)

	var quote service.AvailabilityQuote
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.True(t, quote.Available)
	assert.Equal(t, int64(20000), quote.EstimatedTotal)
}

func TestReservationHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Get", mock.Anything, int32(7), int32(42)).Return(sampleReservation(), nil)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/reservations/42", nil, "7")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("Get", mock.Anything, int32(7), int32(99)).Return(nil, domain.ErrReservationNotFound)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/reservations/99", nil, "7")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("By Reference", func(t *testing.T) {
		resSvc := new(MockReservationService)
		router := newTestRouter(resSvc, new(MockAvailabilityService), new(MockLifecycleService), new(MockSettlementService), new(MockNotificationService))

		resSvc.On("GetByReference", mock.Anything, int32(7), "0007-20260901-0001").Return(sampleReservation(), nil)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/reservations/reference/0007-20260901-0001", nil, "7")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
