package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/tmcampos/biblioteca/internal/db"
	"github.com/tmcampos/biblioteca/internal/model"
)

func TestReserveAvailableBook(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// User 2 has no reservations yet; book 4 is available.
	r, err := Reserve(ctx, database, "2", "4")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if r.Status != model.ReservationPending {
		t.Errorf("expected status 'pending', got %q", r.Status)
	}
	if r.BookID != "4" {
		t.Errorf("expected book_id '4', got %q", r.BookID)
	}
	if r.UserID != "2" {
		t.Errorf("expected user_id '2', got %q", r.UserID)
	}
	if r.ID == "" {
		t.Error("expected generated reservation id")
	}
	if r.ReservationDate != model.Today() {
		t.Errorf("expected reservation date %q, got %q", model.Today(), r.ReservationDate)
	}
	if r.Book.Title != "Capitães da Areia" {
		t.Errorf("expected embedded book snapshot, got %+v", r.Book)
	}

	reservations, err := ListReservations(ctx, database, "2")
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(reservations))
	}
}

func TestReserveDoesNotTouchCopyCounts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	before, _ := GetBook(ctx, database, "4")
	if _, err := Reserve(ctx, database, "2", "4"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	after, _ := GetBook(ctx, database, "4")

	if after.AvailableCopies != before.AvailableCopies {
		t.Errorf("available copies changed: %d -> %d", before.AvailableCopies, after.AvailableCopies)
	}
	if !after.Available {
		t.Error("availability flag flipped by reservation")
	}
}

func TestReserveUnavailableBook(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	before, _ := ListReservations(ctx, database, "1")

	_, err := Reserve(ctx, database, "1", "3")
	if !errors.Is(err, ErrBookUnavailable) {
		t.Fatalf("expected ErrBookUnavailable, got %v", err)
	}

	after, _ := ListReservations(ctx, database, "1")
	if len(after) != len(before) {
		t.Errorf("reservation count changed: %d -> %d", len(before), len(after))
	}
}

func TestReserveUnknownBook(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := Reserve(ctx, database, "1", "999")
	if !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestReserveAlreadyReserved(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Seed data gives user 1 a pending reservation on book 4.
	_, err := Reserve(ctx, database, "1", "4")
	if !errors.Is(err, ErrAlreadyReserved) {
		t.Fatalf("expected ErrAlreadyReserved, got %v", err)
	}

	// A different user may still reserve the same book.
	if _, err := Reserve(ctx, database, "2", "4"); err != nil {
		t.Errorf("Reserve by other user: %v", err)
	}
}

func TestCancelReservation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Seed: user 1 holds reservations "1" and "2".
	if err := CancelReservation(ctx, database, "1", "2"); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}

	reservations, err := ListReservations(ctx, database, "1")
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(reservations) != 1 {
		t.Fatalf("expected 1 reservation after cancel, got %d", len(reservations))
	}
	if reservations[0].ID != "1" {
		t.Errorf("expected remaining reservation '1', got %q", reservations[0].ID)
	}
}

func TestCancelReservationIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := CancelReservation(ctx, database, "1", "2"); err != nil {
		t.Fatalf("first CancelReservation: %v", err)
	}
	// Second cancel of the same id is a no-op, not an error.
	if err := CancelReservation(ctx, database, "1", "2"); err != nil {
		t.Fatalf("second CancelReservation: %v", err)
	}

	// Cancelling an id that never existed is also a no-op.
	if err := CancelReservation(ctx, database, "1", "does-not-exist"); err != nil {
		t.Fatalf("CancelReservation unknown id: %v", err)
	}

	reservations, _ := ListReservations(ctx, database, "1")
	if len(reservations) != 1 {
		t.Errorf("expected 1 reservation, got %d", len(reservations))
	}
}

func TestCancelReservationScopedToUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// User 2 cannot remove user 1's reservation.
	if err := CancelReservation(ctx, database, "2", "1"); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}

	reservations, _ := ListReservations(ctx, database, "1")
	if len(reservations) != 2 {
		t.Errorf("expected 2 reservations untouched, got %d", len(reservations))
	}
}

func TestListReservationsSeededOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	reservations, err := ListReservations(ctx, database, "1")
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(reservations) != 2 {
		t.Fatalf("expected 2 seeded reservations, got %d", len(reservations))
	}

	first := reservations[0]
	if first.Status != model.ReservationConfirmed {
		t.Errorf("expected first reservation confirmed, got %q", first.Status)
	}
	if first.DueDate != "2025-01-19" {
		t.Errorf("expected due date '2025-01-19', got %q", first.DueDate)
	}
	if first.Book.ID != "1" || first.Book.Title != "O Alquimista" {
		t.Errorf("unexpected snapshot on first reservation: %+v", first.Book)
	}

	second := reservations[1]
	if second.Status != model.ReservationPending {
		t.Errorf("expected second reservation pending, got %q", second.Status)
	}
	if second.DueDate != "" {
		t.Errorf("pending reservation should have no due date, got %q", second.DueDate)
	}
}
