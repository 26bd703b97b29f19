package handlers

import (
	"net/http"

	"github.com/Dosada05/matchday-system/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiateSplit switches the match reservation to split payment and creates
// one pending share per confirmed player. POST /matches/{matchID}/split
func (h *PaymentHandler) InitiateSplit(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payments, err := h.paymentService.InitiateSplit(r.Context(), session, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PayOwn settles the caller's own pending share. POST /payments/{paymentID}/pay
func (h *PaymentHandler) PayOwn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	paymentID, err := urlParam(r, "paymentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.paymentService.PayOwn(r.Context(), session, paymentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOwnShare returns the caller's split payment for a reservation.
// GET /reservations/{reservationID}/payments/mine
func (h *PaymentHandler) GetOwnShare(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	reservationID, err := urlParam(r, "reservationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.GetOwnShare(r.Context(), session, reservationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payment": payment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) ListByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := urlParam(r, "reservationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payments, err := h.paymentService.ListByReservation(r.Context(), reservationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
