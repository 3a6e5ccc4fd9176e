package api

import (
	"database/sql"
	"net/http"

	"github.com/tmcampos/biblioteca/internal/catalog"
	"github.com/tmcampos/biblioteca/internal/model"
)

// LoansHandler serves the session user's borrow history.
type LoansHandler struct {
	DB *sql.DB
}

// List handles GET /api/history.
func (h *LoansHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	loans, err := catalog.ListLoans(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if loans == nil {
		loans = []model.Loan{}
	}
	jsonResponse(w, http.StatusOK, loans)
}
