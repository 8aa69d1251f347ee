package http

import (
	"net/http"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/service"
)

type PaymentHandler struct {
	settlementSvc service.SettlementService
}

func NewPaymentHandler(settlementSvc service.SettlementService) *PaymentHandler {
	return &PaymentHandler{settlementSvc: settlementSvc}
}

type addPaymentRequest struct {
	Amount      int64  `json:"amount"`
	Method      string `json:"payment_method"`
	ReferenceID string `json:"payment_reference_id,omitempty"`
}

type addChargesRequest struct {
	Amount int64 `json:"amount"`
}

type paymentResponse struct {
	Transaction *domain.PaymentTransaction `json:"transaction"`
	Reservation *domain.Reservation        `json:"reservation"`
}

func (h *PaymentHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, res, err := h.settlementSvc.AddPayment(r.Context(), hotelID(r), id, req.Amount, domain.PaymentMethod(req.Method), req.ReferenceID, staffID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentResponse{Transaction: tx, Reservation: res})
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tx, res, err := h.settlementSvc.Refund(r.Context(), hotelID(r), id, staffID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{Transaction: tx, Reservation: res})
}

func (h *PaymentHandler) AddExtraCharges(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addChargesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.settlementSvc.AddExtraCharges(r.Context(), hotelID(r), id, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": res})
}

func (h *PaymentHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	txs, total, err := h.settlementSvc.ListTransactions(r.Context(), hotelID(r), id, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total_count":  total,
		"page":         page,
		"page_size":    pageSize,
	})
}
