// Package client is a small HTTP client for the biblioteca JSON API, used by
// the bibcat command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tmcampos/biblioteca/internal/model"
)

// Client talks to a biblioteca server. Token is required for everything
// except Login.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// do sends a JSON request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses become errors carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return &apiError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// LoginResult carries the session token and user profile returned by Login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.Token = result.Token
	return &result, nil
}

// Logout revokes the current session token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me returns the profile of the session user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the session user's password.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password", map[string]string{
		"current_password": current,
		"new_password":     newPassword,
	}, nil)
}

// SearchBooks returns books matching query. A blank query returns the whole
// catalog.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	path := "/api/books"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var books []model.Book
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook returns a single book by id.
func (c *Client) GetBook(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	if err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Reserve creates a reservation for the given book.
func (c *Client) Reserve(ctx context.Context, bookID string) (*model.Reservation, error) {
	var reservation model.Reservation
	err := c.do(ctx, http.MethodPost, "/api/reservations", map[string]string{
		"book_id": bookID,
	}, &reservation)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListReservations returns the session user's reservations.
func (c *Client) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CancelReservation cancels one of the session user's reservations.
func (c *Client) CancelReservation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reservations/"+url.PathEscape(id), nil, nil)
}

// History returns the session user's borrow history.
func (c *Client) History(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Dashboard summarizes the session user's active reservations and recent
// borrow history.
type Dashboard struct {
	ActiveReservations []model.Reservation `json:"active_reservations"`
	RecentHistory      []model.Loan        `json:"recent_history"`
}

// GetDashboard returns the session user's dashboard.
func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
