package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tmcampos/biblioteca/internal/catalog"
	"github.com/tmcampos/biblioteca/internal/model"
)

// ReservationsHandler handles reservation endpoints. All operations act on
// the session user's reservations.
type ReservationsHandler struct {
	DB *sql.DB
}

type createReservationRequest struct {
	BookID string `json:"book_id"`
}

// Create handles POST /api/reservations.
func (h *ReservationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BookID == "" {
		jsonError(w, http.StatusBadRequest, "book_id required")
		return
	}

	reservation, err := catalog.Reserve(r.Context(), h.DB, claims.UserID, req.BookID)
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		jsonError(w, http.StatusNotFound, "book not found")
		return
	case errors.Is(err, catalog.ErrBookUnavailable):
		jsonError(w, http.StatusConflict, "book unavailable")
		return
	case errors.Is(err, catalog.ErrAlreadyReserved):
		jsonError(w, http.StatusConflict, "book already reserved")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to create reservation")
		return
	}

	slog.Info("reservation created", "user", claims.Username, "book", req.BookID)
	jsonResponse(w, http.StatusCreated, reservation)
}

// List handles GET /api/reservations.
func (h *ReservationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	reservations, err := catalog.ListReservations(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	jsonResponse(w, http.StatusOK, reservations)
}

// Cancel handles DELETE /api/reservations/{id}. Cancelling an id that does
// not exist (or was already cancelled) succeeds as a no-op.
func (h *ReservationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := catalog.CancelReservation(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to cancel reservation")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "reservation cancelled"})
}
