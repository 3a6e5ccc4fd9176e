package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmcampos/biblioteca/internal/model"
)

// ListLoans returns the user's borrow history in insertion order. Loan
// records are seeded at startup and read-only; no operation creates,
// transitions, or deletes them.
func ListLoans(ctx context.Context, db *sql.DB, userID string) ([]model.Loan, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, book_id, borrow_date, return_date, due_date, status,
		        book_title, book_author, book_isbn, book_category, book_description, book_cover_url,
		        book_available, book_total_copies, book_available_copies
		 FROM loans WHERE user_id = ? ORDER BY rowid`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		var l model.Loan
		var returnDate sql.NullString
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &returnDate, &l.DueDate, &l.Status,
			&l.Book.Title, &l.Book.Author, &l.Book.ISBN, &l.Book.Category, &l.Book.Description, &l.Book.CoverURL,
			&l.Book.Available, &l.Book.TotalCopies, &l.Book.AvailableCopies); err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}
		l.Book.ID = l.BookID
		l.ReturnDate = returnDate.String
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
