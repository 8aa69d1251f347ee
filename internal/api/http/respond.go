package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error       string      `json:"error"`
	RoomNumbers []string    `json:"room_numbers,omitempty"`
	Details     interface{} `json:"details,omitempty"`
	Retryable   bool        `json:"retryable,omitempty"`
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses:
// validation input errors to 400, missing entities to 404, booking/payment
// conflicts to 409, state-machine rejections to 422. Transient store
// conflicts come back as retryable 409s so the client can re-submit.
func writeDomainError(w http.ResponseWriter, err error) {
	var unavailable *domain.RoomUnavailableError
	var blocked *domain.RoomBlockedError
	var badRange *domain.InvalidDateRangeError
	var occupancy *domain.OccupancyExceededError
	var transition *domain.InvalidTransitionError
	var overpaid *domain.OverpaymentError
	var duplicate *domain.DuplicateRoomError

	switch {
	case errors.As(err, &badRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Details: badRange.Reasons})
	case errors.As(err, &duplicate):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Details: map[string]int32{"room_id": duplicate.RoomID}})
	case errors.Is(err, domain.ErrNoRoomsRequested), errors.Is(err, domain.ErrInvalidAmount):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), RoomNumbers: unavailable.RoomNumbers})
	case errors.As(err, &occupancy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Details: map[string]int32{"max": occupancy.Max, "requested": occupancy.Requested}})
	case errors.As(err, &overpaid):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Details: map[string]int64{"pending": overpaid.Pending, "requested": overpaid.Requested}})
	case errors.Is(err, domain.ErrConflictRetry):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Retryable: true})
	case errors.As(err, &blocked):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), RoomNumbers: blocked.RoomNumbers})
	case errors.As(err, &transition),
		errors.Is(err, domain.ErrReservationCancelled),
		errors.Is(err, domain.ErrNotRefundable):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
