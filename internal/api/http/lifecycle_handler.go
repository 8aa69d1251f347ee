package http

import (
	"net/http"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/service"
)

type LifecycleHandler struct {
	lifecycleSvc service.LifecycleService
}

func NewLifecycleHandler(lifecycleSvc service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{lifecycleSvc: lifecycleSvc}
}

type lifecycleRequest struct {
	ExtraCharges int64  `json:"extra_charges,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type lifecycleResponse struct {
	Reservation *domain.Reservation `json:"reservation"`
	Rooms       []string            `json:"rooms"`
}

func (h *LifecycleHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req lifecycleRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	res, err := h.lifecycleSvc.CheckIn(r.Context(), hotelID(r), id, staffID(r), req.ExtraCharges)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lifecycleResponse{Reservation: res, Rooms: res.RoomNumbers()})
}

func (h *LifecycleHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req lifecycleRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	res, err := h.lifecycleSvc.CheckOut(r.Context(), hotelID(r), id, staffID(r), req.ExtraCharges)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lifecycleResponse{Reservation: res, Rooms: res.RoomNumbers()})
}

func (h *LifecycleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req lifecycleRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	res, err := h.lifecycleSvc.Cancel(r.Context(), hotelID(r), id, staffID(r), req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lifecycleResponse{Reservation: res, Rooms: res.RoomNumbers()})
}

func (h *LifecycleHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.lifecycleSvc.MarkNoShow(r.Context(), hotelID(r), id, staffID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lifecycleResponse{Reservation: res, Rooms: res.RoomNumbers()})
}
