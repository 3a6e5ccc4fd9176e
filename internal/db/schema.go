package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Reservations and loans carry a
// denormalized book_* snapshot frozen at creation time; those columns never
// track later catalog changes.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('librarian', 'member')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS books (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    author           TEXT NOT NULL,
    isbn             TEXT NOT NULL,
    category         TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    cover_url        TEXT NOT NULL DEFAULT '',
    cover            BLOB,
    cover_mime       TEXT,
    available        INTEGER NOT NULL CHECK (available = (available_copies > 0)),
    total_copies     INTEGER NOT NULL CHECK (total_copies >= 0),
    available_copies INTEGER NOT NULL CHECK (available_copies >= 0 AND available_copies <= total_copies)
);

CREATE TABLE IF NOT EXISTS reservations (
    id                    TEXT PRIMARY KEY,
    user_id               TEXT NOT NULL REFERENCES users(id),
    book_id               TEXT NOT NULL REFERENCES books(id),
    reservation_date      TEXT NOT NULL,
    status                TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
    due_date              TEXT,
    book_title            TEXT NOT NULL,
    book_author           TEXT NOT NULL,
    book_isbn             TEXT NOT NULL,
    book_category         TEXT NOT NULL,
    book_description      TEXT NOT NULL DEFAULT '',
    book_cover_url        TEXT NOT NULL DEFAULT '',
    book_available        INTEGER NOT NULL,
    book_total_copies     INTEGER NOT NULL,
    book_available_copies INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id                    TEXT PRIMARY KEY,
    user_id               TEXT NOT NULL REFERENCES users(id),
    book_id               TEXT NOT NULL REFERENCES books(id),
    borrow_date           TEXT NOT NULL,
    return_date           TEXT,
    due_date              TEXT NOT NULL,
    status                TEXT NOT NULL CHECK (status IN ('borrowed', 'returned', 'overdue')),
    book_title            TEXT NOT NULL,
    book_author           TEXT NOT NULL,
    book_isbn             TEXT NOT NULL,
    book_category         TEXT NOT NULL,
    book_description      TEXT NOT NULL DEFAULT '',
    book_cover_url        TEXT NOT NULL DEFAULT '',
    book_available        INTEGER NOT NULL,
    book_total_copies     INTEGER NOT NULL,
    book_available_copies INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
