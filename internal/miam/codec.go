// Package miam encodes and decodes the MIAM intake summary that lives
// inside a session's free-text notes field.
//
// The backend exposes a single notes string per session, so the structured
// form is stored as a text convention: a literal header line, a
// pretty-printed JSON object, then any free-text notes. There is no
// versioning and no escaping of braces inside free text; decoding is
// best-effort and never fatal.
package miam

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Header is the literal line that marks a notes field as carrying a
// structured summary.
const Header = "MIAM Summary"

// Encode renders the summary as the full replacement value for a session's
// notes field: header line, indented JSON block, blank line, then the
// caller's free-text notes. Prior notes content is not merged.
func Encode(s *Summary, notes string) (string, error) {
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return Header + "\n" + string(body) + "\n\n" + notes, nil
}

// HasSummary reports whether notes carries structured data: the header
// substring plus at least one opening brace.
func HasSummary(notes string) bool {
	return strings.Contains(notes, Header) && strings.Contains(notes, "{")
}

// Decode extracts the summary embedded in notes. The JSON span runs from
// the first '{' to the last '}' in the text; anything outside it is
// ignored. Returns (nil, false) when no span exists or the span is not
// valid JSON. Callers fall back to showing the raw notes and must not
// treat that as an error.
func Decode(notes string) (*Summary, bool) {
	open := strings.Index(notes, "{")
	end := strings.LastIndex(notes, "}")
	if open < 0 || end < open {
		return nil, false
	}
	var s Summary
	if err := json.Unmarshal([]byte(notes[open:end+1]), &s); err != nil {
		return nil, false
	}
	return &s, true
}

// TrailingNotes returns the free text that follows the embedded JSON
// block, trimmed. When no block is present the whole notes text is
// returned unchanged.
func TrailingNotes(notes string) string {
	end := strings.LastIndex(notes, "}")
	if end < 0 || !HasSummary(notes) {
		return notes
	}
	return strings.TrimSpace(notes[end+1:])
}

// participantPattern matches the booking-stub line written when a MIAM is
// booked before the intake form is filled out.
var participantPattern = regexp.MustCompile(`Participant: (.+)`)

// Participant extracts the participant name from an unstructured booking
// note. Used as a fallback when Decode finds no JSON payload.
func Participant(notes string) (string, bool) {
	m := participantPattern.FindStringSubmatch(notes)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

const dateLayout = "2006-01-02"

// AgeOn computes a whole-year age from a date of birth at a reference
// date: the year difference, less one when the reference (month, day)
// precedes the birth (month, day). Returns false for empty or unparseable
// dates and for negative results.
func AgeOn(dob string, on time.Time) (int, bool) {
	if dob == "" || on.IsZero() {
		return 0, false
	}
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0, false
	}
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0, false
	}
	return years, true
}

// ParticipantAge computes the participant's age as of the session date.
func (s *Summary) ParticipantAge(sessionDate time.Time) (int, bool) {
	return AgeOn(s.ParticipantDOB, sessionDate)
}

// Age computes the child's age as of the session date.
func (c Child) Age(sessionDate time.Time) (int, bool) {
	return AgeOn(c.DOB, sessionDate)
}
