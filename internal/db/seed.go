package db

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tmcampos/biblioteca/internal/model"
)

// Seed users. Every seeded account gets the password passed to Seed.
var seedUsers = []model.User{
	{ID: "1", Username: "joao.silva", Name: "João Silva", Email: "joao.silva@email.com", Role: model.RoleMember},
	{ID: "2", Username: "ana.ferreira", Name: "Ana Ferreira", Email: "ana.ferreira@biblioteca.pt", Role: model.RoleLibrarian},
}

// seedBooks is the fixed catalog. Books are never created or deleted at
// runtime; insertion order here is the catalog order.
var seedBooks = []model.Book{
	{
		ID:          "1",
		Title:       "O Alquimista",
		Author:      "Paulo Coelho",
		ISBN:        "978-85-325-1158-9",
		Category:    "Ficção",
		Description: "A história de Santiago, um jovem pastor andaluz que viaja desde a sua terra natal, em Espanha, até ao deserto egípcio, em busca de um tesouro.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=300",
		Available:   true, TotalCopies: 3, AvailableCopies: 2,
	},
	{
		ID:          "2",
		Title:       "Dom Casmurro",
		Author:      "Machado de Assis",
		ISBN:        "978-85-359-0277-5",
		Category:    "Literatura Clássica",
		Description: "Romance narrado em primeira pessoa por Bento Santiago, que relembra sua juventude e seu amor por Capitu.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=300",
		Available:   true, TotalCopies: 2, AvailableCopies: 1,
	},
	{
		ID:          "3",
		Title:       "O Cortiço",
		Author:      "Aluísio Azevedo",
		ISBN:        "978-85-359-0123-5",
		Category:    "Literatura Clássica",
		Description: "Romance naturalista que retrata a vida em um cortiço no Rio de Janeiro do século XIX.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=300",
		Available:   false, TotalCopies: 1, AvailableCopies: 0,
	},
	{
		ID:          "4",
		Title:       "Capitães da Areia",
		Author:      "Jorge Amado",
		ISBN:        "978-85-359-0456-4",
		Category:    "Literatura Brasileira",
		Description: "Romance que conta a história de um grupo de meninos de rua em Salvador.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=300",
		Available:   true, TotalCopies: 2, AvailableCopies: 2,
	},
	{
		ID:          "5",
		Title:       "A Moreninha",
		Author:      "Joaquim Manuel de Macedo",
		ISBN:        "978-85-359-0789-3",
		Category:    "Romance",
		Description: "Primeiro romance urbano brasileiro, conta a história de amor entre Augusto e Carolina.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=300",
		Available:   true, TotalCopies: 1, AvailableCopies: 1,
	},
}

// seedReservations references seedBooks by catalog id; the book snapshot is
// taken from the seed catalog at insert time.
var seedReservations = []model.Reservation{
	{ID: "1", UserID: "1", BookID: "1", ReservationDate: "2025-01-05", Status: model.ReservationConfirmed, DueDate: "2025-01-19"},
	{ID: "2", UserID: "1", BookID: "4", ReservationDate: "2025-01-07", Status: model.ReservationPending},
}

var seedLoans = []model.Loan{
	{ID: "1", UserID: "1", BookID: "2", BorrowDate: "2024-12-15", ReturnDate: "2024-12-29", DueDate: "2024-12-29", Status: model.LoanReturned},
	{ID: "2", UserID: "1", BookID: "5", BorrowDate: "2024-11-20", ReturnDate: "2024-12-05", DueDate: "2024-12-04", Status: model.LoanReturned},
	{ID: "3", UserID: "1", BookID: "1", BorrowDate: "2025-01-01", DueDate: "2025-01-15", Status: model.LoanBorrowed},
}

// Seed loads the fixture users, catalog, reservations, and loan history into
// an empty database. All seeded accounts share the given password.
func Seed(ctx context.Context, db *sql.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	for _, u := range seedUsers {
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, username, name, email, password_hash, role) VALUES (?, ?, ?, ?, ?, ?)`,
			u.ID, u.Username, u.Name, u.Email, string(hash), u.Role,
		)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Username, err)
		}
	}

	booksByID := make(map[string]model.Book, len(seedBooks))
	for _, b := range seedBooks {
		booksByID[b.ID] = b
		_, err := db.ExecContext(ctx,
			`INSERT INTO books (id, title, author, isbn, category, description, cover_url, available, total_copies, available_copies)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL, b.Available, b.TotalCopies, b.AvailableCopies,
		)
		if err != nil {
			return fmt.Errorf("seeding book %s: %w", b.ID, err)
		}
	}

	for _, r := range seedReservations {
		b, ok := booksByID[r.BookID]
		if !ok {
			return fmt.Errorf("seed reservation %s references unknown book %s", r.ID, r.BookID)
		}
		var dueDate sql.NullString
		if r.DueDate != "" {
			dueDate = sql.NullString{String: r.DueDate, Valid: true}
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO reservations (id, user_id, book_id, reservation_date, status, due_date,
			     book_title, book_author, book_isbn, book_category, book_description, book_cover_url,
			     book_available, book_total_copies, book_available_copies)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.BookID, r.ReservationDate, r.Status, dueDate,
			b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL,
			b.Available, b.TotalCopies, b.AvailableCopies,
		)
		if err != nil {
			return fmt.Errorf("seeding reservation %s: %w", r.ID, err)
		}
	}

	for _, l := range seedLoans {
		b, ok := booksByID[l.BookID]
		if !ok {
			return fmt.Errorf("seed loan %s references unknown book %s", l.ID, l.BookID)
		}
		var returnDate sql.NullString
		if l.ReturnDate != "" {
			returnDate = sql.NullString{String: l.ReturnDate, Valid: true}
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO loans (id, user_id, book_id, borrow_date, return_date, due_date, status,
			     book_title, book_author, book_isbn, book_category, book_description, book_cover_url,
			     book_available, book_total_copies, book_available_copies)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.UserID, l.BookID, l.BorrowDate, returnDate, l.DueDate, l.Status,
			b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL,
			b.Available, b.TotalCopies, b.AvailableCopies,
		)
		if err != nil {
			return fmt.Errorf("seeding loan %s: %w", l.ID, err)
		}
	}

	return nil
}
