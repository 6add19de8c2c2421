// Package api implements the typed client for the practice's REST backend.
// Every screen of the CLI is a thin consumer of this client; responses are
// decoded into explicit schemas at this boundary rather than passed around
// as untyped maps.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:8000.
	BaseURL string
	// Token is the bearer token attached to every request.
	Token string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
}

// Client issues authenticated requests against the backend REST API.
type Client struct {
	baseURL  string
	token    string
	httpc    *http.Client
	logger   *zap.Logger
	validate *validator.Validate
}

// NewClient creates a backend client. logger may be nil.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		logger:   logger.Named("api"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// checkToken rejects calls early when no token is configured or the token
// is visibly expired, so the caller gets the auth branch of the taxonomy
// instead of a generic 401.
func (c *Client) checkToken() error {
	if c.token == "" {
		return ErrNoToken
	}
	if TokenExpired(c.token, time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

// do issues a request and decodes the JSON response into out (out may be
// nil to discard the body).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.checkToken(); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(buf))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}

// validateRequest runs client-side payload validation. Failures are
// blocking: the request is never sent.
func (c *Client) validateRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Cases

// ListCases fetches all cases, including nested sessions.
func (c *Client) ListCases(ctx context.Context) ([]Case, error) {
	var cases []Case
	if err := c.do(ctx, http.MethodGet, "/api/cases/", nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase fetches a single case by id.
func (c *Client) GetCase(ctx context.Context, id string) (*Case, error) {
	var cs Case
	if err := c.do(ctx, http.MethodGet, "/api/cases/"+id+"/", nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// CreateCase creates a new case.
func (c *Client) CreateCase(ctx context.Context, req *CreateCaseRequest) (*Case, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var cs Case
	if err := c.do(ctx, http.MethodPost, "/api/cases/", req, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// UpdateCaseStatus overwrites the status field of a case. There is no
// transition validation; any status may move to any other.
func (c *Client) UpdateCaseStatus(ctx context.Context, id string, status CaseStatus) error {
	body := map[string]CaseStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/cases/"+id+"/", body, nil)
}

// PatchCase applies a partial update to a case. fields maps JSON field
// names to their new values.
func (c *Client) PatchCase(ctx context.Context, id string, fields map[string]any) (*Case, error) {
	var cs Case
	if err := c.do(ctx, http.MethodPatch, "/api/cases/"+id+"/", fields, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// UpdatePayment overwrites a case's payment fields. The backend accepts
// any amounts, so the paid-cannot-exceed-owed rule is held here: a paid
// amount above owed fails validation and is never sent.
func (c *Client) UpdatePayment(ctx context.Context, id string, owed, paid decimal.Decimal, notes string) (*Case, error) {
	if owed.IsNegative() || paid.IsNegative() {
		return nil, fmt.Errorf("%w: payment amounts cannot be negative", ErrValidation)
	}
	if paid.GreaterThan(owed) {
		return nil, fmt.Errorf("%w: amount paid %s exceeds amount owed %s",
			ErrValidation, paid.StringFixed(2), owed.StringFixed(2))
	}
	return c.PatchCase(ctx, id, map[string]any{
		"amount_owed":   owed,
		"amount_paid":   paid,
		"payment_notes": notes,
	})
}

// DeleteCase removes a case and its owned sessions.
func (c *Client) DeleteCase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cases/"+id+"/", nil, nil)
}

// Sessions

// ListSessions fetches all sessions across cases.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.do(ctx, http.MethodGet, "/api/sessions/", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession books a session, possibly with minimal data; the MIAM
// summary is attached later via PatchSession.
func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	if req.CaseID == "" {
		req.CaseID = req.Case
	}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/sessions/", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// PatchSession mutates a session in place. Replacing the notes field is
// how an embedded MIAM summary is attached or overwritten.
func (c *Client) PatchSession(ctx context.Context, id string, req *PatchSessionRequest) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPatch, "/api/sessions/"+id+"/", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Appointments

// ListAppointments fetches all appointments.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/", nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// CreateAppointment creates a calendar appointment.
func (c *Client) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var a Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments/", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Todos

// ListTodos fetches all to-dos.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos/", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a to-do attached to a case.
func (c *Client) CreateTodo(ctx context.Context, req *CreateTodoRequest) (*Todo, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	var t Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos/", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// PatchTodo applies a partial update to a to-do, editing its title,
// details, or due date in place.
func (c *Client) PatchTodo(ctx context.Context, id string, req *PatchTodoRequest) (*Todo, error) {
	var t Todo
	if err := c.do(ctx, http.MethodPatch, "/api/todos/"+id+"/", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ToggleTodoComplete flips the completion flag server-side.
func (c *Client) ToggleTodoComplete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/todos/"+id+"/toggle_complete/", nil, nil)
}

// DeleteTodo removes a to-do.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id+"/", nil, nil)
}
