package http

import (
	"net/http"
	"strconv"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReservationHandler struct {
	reservationSvc  service.ReservationService
	availabilitySvc service.AvailabilityService
}

func NewReservationHandler(reservationSvc service.ReservationService, availabilitySvc service.AvailabilityService) *ReservationHandler {
	return &ReservationHandler{
		reservationSvc:  reservationSvc,
		availabilitySvc: availabilitySvc,
	}
}

type createReservationRequest struct {
	RoomIDs        []int32         `json:"room_ids"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	GuestsCount    int32           `json:"guests_count"`
	RoomBreakdown  []breakdownLine `json:"room_breakdown,omitempty"`
	DiscountAmount int64           `json:"discount_amount,omitempty"`
	BookingSource  string          `json:"booking_source,omitempty"`
}

type breakdownLine struct {
	RoomID       int32 `json:"room_id"`
	GuestsInRoom int32 `json:"guests_in_room"`
}

type bookingSummary struct {
	TotalRooms int32 `json:"total_rooms"`
	Nights     int32 `json:"nights"`
	Subtotal   int64 `json:"subtotal"`
	Discount   int64 `json:"discount"`
	Total      int64 `json:"total"`
}

type createReservationResponse struct {
	Reservation *domain.Reservation    `json:"reservation"`
	RoomDetails []domain.RoomBreakdown `json:"room_details"`
	Summary     bookingSummary         `json:"booking_summary"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := service.CreateReservationInput{
		RoomIDs:        req.RoomIDs,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		CheckInDate:    req.CheckInDate,
		CheckOutDate:   req.CheckOutDate,
		GuestsCount:    req.GuestsCount,
		DiscountAmount: req.DiscountAmount,
		BookingSource:  req.BookingSource,
	}
	if len(req.RoomBreakdown) > 0 {
		in.GuestsPerRoom = make(map[int32]int32, len(req.RoomBreakdown))
		for _, line := range req.RoomBreakdown {
			in.GuestsPerRoom[line.RoomID] = line.GuestsInRoom
		}
	}

	res, err := h.reservationSvc.Create(r.Context(), hotelID(r), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createReservationResponse{
		Reservation: res,
		RoomDetails: res.Rooms,
		Summary: bookingSummary{
			TotalRooms: res.TotalRooms,
			Nights:     res.Nights,
			Subtotal:   res.TotalAmount + res.DiscountAmount,
			Discount:   res.DiscountAmount,
			Total:      res.TotalAmount,
		},
	})
}

type availabilityRequest struct {
	RoomIDs      []int32 `json:"room_ids"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
}

func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quote, err := h.availabilitySvc.Quote(r.Context(), hotelID(r), req.RoomIDs, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.reservationSvc.Get(r.Context(), hotelID(r), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	res, err := h.reservationSvc.GetByReference(r.Context(), hotelID(r), reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type listResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	Total        int32                `json:"total"`
	Page         int32                `json:"page"`
	PageSize     int32                `json:"page_size"`
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	reservations, total, err := h.reservationSvc.List(r.Context(), hotelID(r), q.Get("status"), page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Reservations: reservations,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	})
}

type updateReservationRequest struct {
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	GuestsCount   int32  `json:"guests_count,omitempty"`
	CheckInDate   string `json:"check_in_date,omitempty"`
	CheckOutDate  string `json:"check_out_date,omitempty"`
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.reservationSvc.Update(r.Context(), hotelID(r), id, service.UpdateReservationInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		GuestsCount:   req.GuestsCount,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}

func queryInt32(raw string, fallback int32) int32 {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
