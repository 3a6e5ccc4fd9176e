package api

import (
	"database/sql"
	"net/http"

	"github.com/tmcampos/biblioteca/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	booksHandler := &BooksHandler{DB: db}
	reservationsHandler := &ReservationsHandler{DB: db}
	loansHandler := &LoansHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireLibrarian := RequireRole(model.RoleLibrarian)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Catalog: read for all authenticated users, cover upload librarian-only.
	mux.Handle("GET /api/books", authMW(http.HandlerFunc(booksHandler.List)))
	mux.Handle("GET /api/books/{id}", authMW(http.HandlerFunc(booksHandler.Get)))
	mux.Handle("GET /api/books/{id}/cover", authMW(http.HandlerFunc(booksHandler.GetCover)))
	mux.Handle("PUT /api/books/{id}/cover", authMW(requireLibrarian(http.HandlerFunc(booksHandler.UploadCover))))

	// Reservations, always scoped to the session user.
	mux.Handle("POST /api/reservations", authMW(http.HandlerFunc(reservationsHandler.Create)))
	mux.Handle("GET /api/reservations", authMW(http.HandlerFunc(reservationsHandler.List)))
	mux.Handle("DELETE /api/reservations/{id}", authMW(http.HandlerFunc(reservationsHandler.Cancel)))

	// Borrow history (read-only).
	mux.Handle("GET /api/history", authMW(http.HandlerFunc(loansHandler.List)))

	// Dashboard summary.
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Get)))

	return mux
}
