package api

import (
	"database/sql"
	"net/http"

	"github.com/tmcampos/biblioteca/internal/catalog"
	"github.com/tmcampos/biblioteca/internal/model"
)

// DashboardHandler serves the landing-page summary: the user's active
// reservations and their most recent borrow history.
type DashboardHandler struct {
	DB *sql.DB
}

// recentHistoryLimit caps the history entries shown on the dashboard.
const recentHistoryLimit = 3

type dashboardResponse struct {
	ActiveReservations []model.Reservation `json:"active_reservations"`
	RecentHistory      []model.Loan        `json:"recent_history"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	active := []model.Reservation{}
	for _, res := range reservations {
		if res.Active() {
			active = append(active, res)
		}
	}

	loans, err := catalog.ListLoans(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	recent := loans
	if len(recent) > recentHistoryLimit {
		recent = recent[:recentHistoryLimit]
	}
	if recent == nil {
		recent = []model.Loan{}
	}

	jsonResponse(w, http.StatusOK, dashboardResponse{
		ActiveReservations: active,
		RecentHistory:      recent,
	})
}
