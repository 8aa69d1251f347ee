package http

import (
	"context"
	"net/http"
	"strconv"

	"hotelops-backend/internal/logger"
)

type contextKey string

const (
	hotelIDKey contextKey = "hotel_id"
	staffIDKey contextKey = "staff_id"
)

// ScopeMiddleware extracts the hotel scope and acting staff member from the
// request. Authentication happens upstream (gateway / auth service); this
// layer only consumes the identity it is handed and scopes every query by
// it.
func ScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hotelID, err := strconv.ParseInt(r.Header.Get("X-Hotel-ID"), 10, 32)
		if err != nil || hotelID <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing or invalid X-Hotel-ID header"})
			return
		}

		ctx := context.WithValue(r.Context(), hotelIDKey, int32(hotelID))
		if staffID, err := strconv.ParseInt(r.Header.Get("X-Staff-ID"), 10, 32); err == nil && staffID > 0 {
			ctx = context.WithValue(ctx, staffIDKey, int32(staffID))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func hotelID(r *http.Request) int32 {
	id, _ := r.Context().Value(hotelIDKey).(int32)
	return id
}

func staffID(r *http.Request) int32 {
	id, _ := r.Context().Value(staffIDKey).(int32)
	return id
}
