package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Token: "test-token"}, nil)
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	require.Error(t, err)
}

func TestListCases(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/api/cases/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","reference":"REF-001","status":"OPEN",
			 "enquiry_date":"2024-03-05","amount_owed":"150.00","amount_paid":"50.00",
			 "sessions":[{"id":"s1","session_type":"MIAM","start":"2024-06-10T14:00:00Z"}]}
		]`))
	})

	cases, err := client.ListCases(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	require.Len(t, cases, 1)
	c := cases[0]
	assert.Equal(t, "REF-001", c.Reference)
	assert.Equal(t, StatusOpen, c.Status)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), c.EnquiryDate.Time)
	assert.Equal(t, "100", c.Outstanding().String())
	require.Len(t, c.Sessions, 1)
	assert.Equal(t, SessionMIAM, c.Sessions[0].SessionType)
}

func TestDo_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server without a token")
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.ListCases(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDo_ExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server with an expired token")
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Token: expiredJWT(t)}, nil)
	require.NoError(t, err)

	_, err = client.ListCases(context.Background())
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDo_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden maps to unauthorized", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := client.GetCase(context.Background(), "1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, "nope", statusErr.Body)
		})
	}
}

func TestDo_ServerErrorIsNotSentinel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ListCases(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDo_DecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.ListCases(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "/api/cases/", decodeErr.Endpoint)
}

func TestCreateCase_ValidationBlocksRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid payload must never be sent")
	})

	_, err := client.CreateCase(context.Background(), &CreateCaseRequest{Title: "no reference"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = client.CreateCase(context.Background(), &CreateCaseRequest{
		Reference:   "REF-001",
		Title:       "t",
		Party1Email: "not-an-email",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = client.CreateCase(context.Background(), &CreateCaseRequest{
		Reference: "REF-001",
		Title:     "t",
		Status:    "ARCHIVED",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateSession(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sessions/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	})

	start := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	s, err := client.CreateSession(context.Background(), &CreateSessionRequest{
		Case:        "case-1",
		SessionType: SessionMIAM,
		Start:       start,
		End:         start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	// The case id goes out under both keys.
	assert.Equal(t, "case-1", gotBody["case"])
	assert.Equal(t, "case-1", gotBody["case_id"])
}

func TestCreateSession_EndMustFollowStart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid payload must never be sent")
	})

	start := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	_, err := client.CreateSession(context.Background(), &CreateSessionRequest{
		Case:        "case-1",
		SessionType: SessionJoint,
		Start:       start,
		End:         start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateCaseStatus(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/cases/case-1/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateCaseStatus(context.Background(), "case-1", StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "PAUSED"}, gotBody)
}

func TestPatchTodo(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/todos/todo-3/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":"todo-3","title":"chase financial disclosure"}`))
	})

	title := "chase financial disclosure"
	due := "2024-07-01"
	todo, err := client.PatchTodo(context.Background(), "todo-3", &PatchTodoRequest{
		Title:   &title,
		DueDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "chase financial disclosure", todo.Title)

	// Unset fields stay out of the body so the backend leaves them alone.
	assert.Equal(t, map[string]any{
		"title":    "chase financial disclosure",
		"due_date": "2024-07-01",
	}, gotBody)
}

func TestUpdatePayment(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/cases/case-1/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":"case-1","reference":"REF-001","amount_owed":"300.00","amount_paid":"100.00"}`))
	})

	c, err := client.UpdatePayment(context.Background(), "case-1",
		decimal.RequireFromString("300.00"), decimal.RequireFromString("100.00"), "deposit received")
	require.NoError(t, err)
	assert.Equal(t, "200", c.Outstanding().String())

	assert.Equal(t, "300", gotBody["amount_owed"])
	assert.Equal(t, "100", gotBody["amount_paid"])
	assert.Equal(t, "deposit received", gotBody["payment_notes"])
}

func TestUpdatePayment_PaidCannotExceedOwed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid payment must never be sent")
	})

	_, err := client.UpdatePayment(context.Background(), "case-1",
		decimal.RequireFromString("100.00"), decimal.RequireFromString("150.00"), "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = client.UpdatePayment(context.Background(), "case-1",
		decimal.RequireFromString("-10.00"), decimal.RequireFromString("0"), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePayment_PaidInFullAllowed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"case-1","amount_owed":"100.00","amount_paid":"100.00"}`))
	})

	c, err := client.UpdatePayment(context.Background(), "case-1",
		decimal.RequireFromString("100.00"), decimal.RequireFromString("100.00"), "")
	require.NoError(t, err)
	assert.True(t, c.Outstanding().IsZero())
}

func TestToggleTodoComplete(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ToggleTodoComplete(context.Background(), "todo-9"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/todos/todo-9/toggle_complete/", gotPath)
}

func TestDo_ContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListCases(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
