package export

import (
	"net/url"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

const googleCalendarBase = "https://calendar.google.com/calendar/render"

// basic-format UTC timestamp the calendar template expects
const gcalTimeLayout = "20060102T150405Z"

// GoogleCalendarLink builds the external calendar "add event" deep link
// for an appointment.
func GoogleCalendarLink(a *api.Appointment) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", a.Title)
	params.Set("dates", a.Start.UTC().Format(gcalTimeLayout)+"/"+a.End.UTC().Format(gcalTimeLayout))
	params.Set("details", a.Description)
	params.Set("location", a.Location)
	return googleCalendarBase + "?" + params.Encode()
}
