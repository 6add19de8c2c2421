package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CaseStatus is the lifecycle stage of a mediation case. Transitions are
// user-driven; the backend enforces no state machine.
type CaseStatus string

const (
	StatusEnquiry CaseStatus = "ENQUIRY"
	StatusMIAM    CaseStatus = "MIAM"
	StatusOpen    CaseStatus = "OPEN"
	StatusPaused  CaseStatus = "PAUSED"
	StatusClosed  CaseStatus = "CLOSED"
)

// Statuses lists the known statuses in board order.
var Statuses = []CaseStatus{StatusEnquiry, StatusMIAM, StatusOpen, StatusPaused, StatusClosed}

// Known reports whether s is one of the five recognized statuses.
func (s CaseStatus) Known() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// SessionType distinguishes intake meetings from joint sessions.
type SessionType string

const (
	SessionMIAM  SessionType = "MIAM"
	SessionJoint SessionType = "JOINT"
)

// Date is a calendar date as serialized by the backend ("2006-01-02").
// Some list endpoints return full timestamps for date fields, so both
// forms are accepted. The zero Date means the field was null or empty.
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// UnmarshalJSON implements json.Unmarshaler. null and "" decode to the
// zero Date rather than an error.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return err
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Case is a mediation engagement between two parties.
type Case struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Title     string     `json:"title"`
	Status    CaseStatus `json:"status"`
	Notes     string     `json:"notes"`

	Party1Name  string `json:"party1_name"`
	Party1Email string `json:"party1_email"`
	Party1Phone string `json:"party1_phone"`
	Party2Name  string `json:"party2_name"`
	Party2Email string `json:"party2_email"`
	Party2Phone string `json:"party2_phone"`

	EnquiryDate   Date   `json:"enquiry_date"`
	VoucherUsed   bool   `json:"voucher_used"`
	InternalNotes string `json:"internal_notes"`

	AmountOwed   decimal.Decimal `json:"amount_owed"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	PaymentNotes string          `json:"payment_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sessions []Session `json:"sessions,omitempty"`
}

// Outstanding returns amount owed minus amount paid. May be negative when
// a case is overpaid; aggregate reporting floors contributions at zero.
func (c *Case) Outstanding() decimal.Decimal {
	return c.AmountOwed.Sub(c.AmountPaid)
}

// Session is a scheduled meeting belonging to a case. The notes field may
// carry an embedded MIAM summary payload (see internal/miam).
type Session struct {
	ID          string      `json:"id"`
	Case        string      `json:"case"`
	SessionType SessionType `json:"session_type"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Notes       string      `json:"notes"`
	IsCompleted bool        `json:"is_completed"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
}

// Appointment is a calendar entry independent of any session. It may
// reference a case but is not owned by one.
type Appointment struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Location      string    `json:"location"`
	Case          string    `json:"case,omitempty"`
	CaseReference string    `json:"case_reference,omitempty"`
	CaseTitle     string    `json:"case_title,omitempty"`
}

// Todo is an action item owned by a case.
type Todo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DueDate       *Date  `json:"due_date"`
	IsCompleted   bool   `json:"is_completed"`
	Case          string `json:"case"`
	CaseReference string `json:"case_reference,omitempty"`
	CaseTitle     string `json:"case_title,omitempty"`
}

// CreateCaseRequest is the payload for POST /api/cases/.
type CreateCaseRequest struct {
	Reference   string     `json:"reference" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Status      CaseStatus `json:"status,omitempty" validate:"omitempty,oneof=ENQUIRY MIAM OPEN PAUSED CLOSED"`
	Party1Name  string     `json:"party1_name,omitempty"`
	Party1Email string     `json:"party1_email,omitempty" validate:"omitempty,email"`
	Party1Phone string     `json:"party1_phone,omitempty"`
	Party2Name  string     `json:"party2_name,omitempty"`
	Party2Email string     `json:"party2_email,omitempty" validate:"omitempty,email"`
	Party2Phone string     `json:"party2_phone,omitempty"`
	EnquiryDate string     `json:"enquiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VoucherUsed bool       `json:"voucher_used,omitempty"`
}

// CreateSessionRequest is the payload for POST /api/sessions/. The case id
// is sent under both keys the backend's serializer variations accept.
type CreateSessionRequest struct {
	Case        string      `json:"case" validate:"required"`
	CaseID      string      `json:"case_id,omitempty"`
	SessionType SessionType `json:"session_type" validate:"required,oneof=MIAM JOINT"`
	Start       time.Time   `json:"start" validate:"required"`
	End         time.Time   `json:"end" validate:"required,gtfield=Start"`
	Notes       string      `json:"notes"`
}

// PatchSessionRequest carries a partial session update. Nil fields are
// omitted from the request body.
type PatchSessionRequest struct {
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
}

// CreateAppointmentRequest is the payload for POST /api/appointments/.
type CreateAppointmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	Location    string    `json:"location,omitempty"`
	Case        string    `json:"case,omitempty"`
}

// PatchTodoRequest carries a partial to-do update. Nil fields are omitted
// from the request body.
type PatchTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// CreateTodoRequest is the payload for POST /api/todos/.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Case        string `json:"case" validate:"required"`
}
