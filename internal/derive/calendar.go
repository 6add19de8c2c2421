package derive

import (
	"fmt"
	"sort"
	"time"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// MaxVisibleEvents caps how many events a calendar day displays before an
// overflow counter takes over. Display truncation only; the day's bucket
// keeps every event.
const MaxVisibleEvents = 3

// EventKind distinguishes the two calendar sources.
type EventKind string

const (
	EventSession     EventKind = "session"
	EventAppointment EventKind = "appointment"
)

// Event is a unified calendar entry built from a session or appointment.
type Event struct {
	ID            string
	Title         string
	Start         time.Time
	End           time.Time
	Kind          EventKind
	Location      string
	CaseReference string
}

// FromSessions converts sessions to calendar events.
func FromSessions(sessions []api.Session) []Event {
	events := make([]Event, 0, len(sessions))
	for _, s := range sessions {
		label := "Session"
		if s.SessionType == api.SessionMIAM {
			label = "MIAM"
		}
		events = append(events, Event{
			ID:    s.ID,
			Title: fmt.Sprintf("%s - Case %s", label, s.Case),
			Start: s.Start,
			End:   s.End,
			Kind:  EventSession,
		})
	}
	return events
}

// FromAppointments converts appointments to calendar events.
func FromAppointments(appts []api.Appointment) []Event {
	events := make([]Event, 0, len(appts))
	for _, a := range appts {
		events = append(events, Event{
			ID:            a.ID,
			Title:         a.Title,
			Start:         a.Start,
			End:           a.End,
			Kind:          EventAppointment,
			Location:      a.Location,
			CaseReference: a.CaseReference,
		})
	}
	return events
}

// Day is one calendar cell with its full event bucket.
type Day struct {
	Date   time.Time
	Events []Event
}

// Visible returns the events a day cell displays, capped at
// MaxVisibleEvents.
func (d Day) Visible() []Event {
	if len(d.Events) <= MaxVisibleEvents {
		return d.Events
	}
	return d.Events[:MaxVisibleEvents]
}

// Overflow is the count of events hidden by the display cap.
func (d Day) Overflow() int {
	if len(d.Events) <= MaxVisibleEvents {
		return 0
	}
	return len(d.Events) - MaxVisibleEvents
}

// Month is a displayed calendar month.
type Month struct {
	Year  int
	Month time.Month
	// LeadingBlanks is the number of empty cells before day 1, from the
	// weekday of the 1st (Sunday-first grid).
	LeadingBlanks int
	Days          []Day
}

// MonthGrid buckets events into the days of the displayed month. Each
// event lands on the local calendar date of its start; events outside the
// month are ignored. Within a day, events sort ascending by start time.
func MonthGrid(events []Event, year int, month time.Month, loc *time.Location) Month {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := Month{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, daysInMonth),
	}
	for i := range grid.Days {
		grid.Days[i].Date = first.AddDate(0, 0, i)
	}

	for _, e := range events {
		start := e.Start.In(loc)
		if start.Year() != year || start.Month() != month {
			continue
		}
		day := &grid.Days[start.Day()-1]
		day.Events = append(day.Events, e)
	}

	for i := range grid.Days {
		events := grid.Days[i].Events
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Start.Before(events[b].Start)
		})
	}

	return grid
}
