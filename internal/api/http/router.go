package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API surface under /api/v1. Every route runs behind the
// hotel scope middleware; authentication is handled upstream of this service.
func NewRouter(
	reservations *ReservationHandler,
	lifecycle *LifecycleHandler,
	payments *PaymentHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(LoggingMiddleware, ScopeMiddleware)

	api.HandleFunc("/availability/quote", reservations.Quote).Methods(http.MethodPost)

	api.HandleFunc("/reservations", reservations.Create).Methods(http.MethodPost)
	api.HandleFunc("/reservations", reservations.List).Methods(http.MethodGet)
	api.HandleFunc("/reservations/reference/{reference}", reservations.GetByReference).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", reservations.Get).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", reservations.Update).Methods(http.MethodPatch)

	api.HandleFunc("/reservations/{id:[0-9]+}/check-in", lifecycle.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id:[0-9]+}/check-out", lifecycle.CheckOut).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id:[0-9]+}/cancel", lifecycle.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id:[0-9]+}/no-show", lifecycle.MarkNoShow).Methods(http.MethodPost)

	api.HandleFunc("/reservations/{id:[0-9]+}/payments", payments.AddPayment).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id:[0-9]+}/payments", payments.ListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}/charges", payments.AddExtraCharges).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id:[0-9]+}/refund", payments.Refund).Methods(http.MethodPost)

	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
