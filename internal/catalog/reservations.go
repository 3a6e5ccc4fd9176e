package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmcampos/biblioteca/internal/model"
)

// Reserve outcomes. Callers distinguish them with errors.Is instead of
// re-querying store state.
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrBookUnavailable = errors.New("book unavailable")
	ErrAlreadyReserved = errors.New("book already reserved")
)

// Reserve creates a pending reservation for the user on the given book. The
// reservation embeds a snapshot of the book as it is right now. Copy counts
// are deliberately not decremented: a reservation is a claim, not a checkout.
func Reserve(ctx context.Context, db *sql.DB, userID, bookID string) (*model.Reservation, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	b := model.Book{}
	err = tx.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, bookID,
	).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Description, &b.CoverURL,
		&b.Available, &b.TotalCopies, &b.AvailableCopies)
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting book: %w", err)
	}

	if !b.Available {
		return nil, ErrBookUnavailable
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM reservations
		     WHERE user_id = ? AND book_id = ? AND status != ?
		 )`,
		userID, bookID, model.ReservationCancelled,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking existing reservation: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReserved
	}

	r := &model.Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		BookID:          bookID,
		Book:            b,
		ReservationDate: model.Today(),
		Status:          model.ReservationPending,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (id, user_id, book_id, reservation_date, status,
		     book_title, book_author, book_isbn, book_category, book_description, book_cover_url,
		     book_available, book_total_copies, book_available_copies)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.BookID, r.ReservationDate, r.Status,
		b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL,
		b.Available, b.TotalCopies, b.AvailableCopies,
	)
	if err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing reservation: %w", err)
	}
	return r, nil
}

// CancelReservation removes the user's reservation outright (not a status
// change). Cancelling an unknown or already-cancelled id is a no-op.
func CancelReservation(ctx context.Context, db *sql.DB, userID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("cancelling reservation: %w", err)
	}
	return nil
}

// ListReservations returns all of the user's reservations in insertion order.
// Callers filter active vs. finished themselves.
func ListReservations(ctx context.Context, db *sql.DB, userID string) ([]model.Reservation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, book_id, reservation_date, status, due_date,
		        book_title, book_author, book_isbn, book_category, book_description, book_cover_url,
		        book_available, book_total_copies, book_available_copies
		 FROM reservations WHERE user_id = ? ORDER BY rowid`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var r model.Reservation
		var dueDate sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.ReservationDate, &r.Status, &dueDate,
			&r.Book.Title, &r.Book.Author, &r.Book.ISBN, &r.Book.Category, &r.Book.Description, &r.Book.CoverURL,
			&r.Book.Available, &r.Book.TotalCopies, &r.Book.AvailableCopies); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		r.Book.ID = r.BookID
		r.DueDate = dueDate.String
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}
