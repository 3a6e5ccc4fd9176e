package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmcampos/biblioteca/internal/db"
	"github.com/tmcampos/biblioteca/internal/model"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func login(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	return loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginEndpoint(t *testing.T) {
	server := setupTestServer(t)

	// Valid credentials return a token plus the user profile.
	body, _ := json.Marshal(map[string]string{"username": "joao.silva", "password": db.TestPassword})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&loginResp)
	resp.Body.Close()
	if loginResp.User.Name != "João Silva" {
		t.Errorf("expected user profile in login response, got %+v", loginResp.User)
	}

	// Invalid credentials.
	body, _ = json.Marshal(map[string]string{"username": "joao.silva", "password": "wrong"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/books")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSearchBooksEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	// Full catalog without a query.
	req, _ := authRequest("GET", server.URL+"/api/books", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	var books []model.Book
	json.NewDecoder(resp.Body).Decode(&books)
	resp.Body.Close()
	if len(books) != 5 {
		t.Errorf("expected 5 books, got %d", len(books))
	}

	// Substring search.
	req, _ = authRequest("GET", server.URL+"/api/books?q=dom", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	books = nil
	json.NewDecoder(resp.Body).Decode(&books)
	resp.Body.Close()
	if len(books) != 1 || books[0].Title != "Dom Casmurro" {
		t.Errorf("expected only 'Dom Casmurro' for q=dom, got %v", books)
	}

	// No matches come back as an empty list, not null.
	req, _ = authRequest("GET", server.URL+"/api/books?q=zzz", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	books = nil
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		t.Fatalf("decoding empty result: %v", err)
	}
	resp.Body.Close()
	if len(books) != 0 {
		t.Errorf("expected no matches, got %d", len(books))
	}
}

func TestGetBookEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	req, _ := authRequest("GET", server.URL+"/api/books/2", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var book model.Book
	json.NewDecoder(resp.Body).Decode(&book)
	resp.Body.Close()
	if book.Title != "Dom Casmurro" {
		t.Errorf("expected 'Dom Casmurro', got %q", book.Title)
	}

	req, _ = authRequest("GET", server.URL+"/api/books/999", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown book, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestReservationFlow(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	// Reserve an available book.
	req, _ := authRequest("POST", server.URL+"/api/reservations", token, map[string]string{"book_id": "5"})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.Reservation
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created.Status != model.ReservationPending || created.BookID != "5" {
		t.Errorf("unexpected reservation: %+v", created)
	}

	// Unavailable book.
	req, _ = authRequest("POST", server.URL+"/api/reservations", token, map[string]string{"book_id": "3"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for unavailable book, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Already reserved (seeded pending reservation on book 4).
	req, _ = authRequest("POST", server.URL+"/api/reservations", token, map[string]string{"book_id": "4"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for already-reserved book, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown book.
	req, _ = authRequest("POST", server.URL+"/api/reservations", token, map[string]string{"book_id": "999"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown book, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Seeded reservations plus the new one.
	req, _ = authRequest("GET", server.URL+"/api/reservations", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var reservations []model.Reservation
	json.NewDecoder(resp.Body).Decode(&reservations)
	resp.Body.Close()
	if len(reservations) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(reservations))
	}

	// Cancel the new one; a repeat cancel is still a 200 no-op.
	req, _ = authRequest("DELETE", server.URL+"/api/reservations/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for cancel, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("DELETE", server.URL+"/api/reservations/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for repeated cancel, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/reservations", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	reservations = nil
	json.NewDecoder(resp.Body).Decode(&reservations)
	resp.Body.Close()
	if len(reservations) != 2 {
		t.Errorf("expected 2 reservations after cancel, got %d", len(reservations))
	}
}

func TestHistoryEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	req, _ := authRequest("GET", server.URL+"/api/history", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var loans []model.Loan
	json.NewDecoder(resp.Body).Decode(&loans)
	resp.Body.Close()
	if len(loans) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(loans))
	}
}

func TestDashboardEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	req, _ := authRequest("GET", server.URL+"/api/dashboard", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var dash struct {
		ActiveReservations []model.Reservation `json:"active_reservations"`
		RecentHistory      []model.Loan        `json:"recent_history"`
	}
	json.NewDecoder(resp.Body).Decode(&dash)
	resp.Body.Close()

	if len(dash.ActiveReservations) != 2 {
		t.Errorf("expected 2 active reservations, got %d", len(dash.ActiveReservations))
	}
	if len(dash.RecentHistory) != 3 {
		t.Errorf("expected 3 recent history entries, got %d", len(dash.RecentHistory))
	}
}

func TestCoverUploadRequiresLibrarian(t *testing.T) {
	server := setupTestServer(t)
	memberToken := login(t, server, "joao.silva", db.TestPassword)

	req, _ := authRequest("PUT", server.URL+"/api/books/1/cover", memberToken, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for member uploading cover, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCoverRedirectsToExternalURL(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	// No uploaded cover: the endpoint redirects to the seeded cover URL.
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	req, _ := authRequest("GET", server.URL+"/api/books/1/cover", token, nil)
	resp, _ := client.Do(req)
	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected 302 redirect, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/reservations", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChangePasswordFlow(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "joao.silva", db.TestPassword)

	// Wrong current password.
	req, _ := authRequest("PUT", server.URL+"/api/auth/password", token, map[string]string{
		"current_password": "wrong",
		"new_password":     "another-password",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong current password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Correct current password.
	req, _ = authRequest("PUT", server.URL+"/api/auth/password", token, map[string]string{
		"current_password": db.TestPassword,
		"new_password":     "another-password",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for password change, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The new password works for login.
	login(t, server, "joao.silva", "another-password")
}
