package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tmcampos/biblioteca/internal/model"
)

const bookColumns = `id, title, author, isbn, category, description, cover_url, available, total_copies, available_copies`

// ListBooks returns the full catalog in catalog (insertion) order.
func ListBooks(ctx context.Context, db *sql.DB) ([]model.Book, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// SearchBooks returns books whose title, author, or category contains the
// query as a case-insensitive substring, preserving catalog order. A blank
// query returns the whole catalog. Matching runs in Go because SQLite's
// lower() only folds ASCII and the catalog carries accented text.
func SearchBooks(ctx context.Context, db *sql.DB, query string) ([]model.Book, error) {
	books, err := ListBooks(ctx, db)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return books, nil
	}

	q := strings.ToLower(query)
	var matched []model.Book
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Category), q) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetBook returns a book by ID, or nil if no such book exists.
func GetBook(ctx context.Context, db *sql.DB, id string) (*model.Book, error) {
	b := &model.Book{}
	err := db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Description, &b.CoverURL,
		&b.Available, &b.TotalCopies, &b.AvailableCopies)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting book: %w", err)
	}
	return b, nil
}

// SetBookCover stores cover image data for a book.
func SetBookCover(ctx context.Context, db *sql.DB, id string, data []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE books SET cover = ?, cover_mime = ? WHERE id = ?`,
		data, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting book cover: %w", err)
	}
	return nil
}

// GetBookCover returns stored cover image data and its MIME type, or nil data
// when no cover has been uploaded.
func GetBookCover(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT cover, cover_mime FROM books WHERE id = ?`, id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting book cover: %w", err)
	}
	return data, mime.String, nil
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Description, &b.CoverURL,
			&b.Available, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
