package derive

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

func date(y int, m time.Month, d int) api.Date {
	return api.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDashboard_ActiveCases(t *testing.T) {
	cases := []api.Case{
		{ID: "1", Status: api.StatusOpen},
		{ID: "2", Status: api.StatusMIAM},
		{ID: "3", Status: api.StatusEnquiry},
		{ID: "4", Status: api.StatusPaused},
		{ID: "5", Status: api.StatusClosed},
	}

	stats := Dashboard(cases, time.Now())
	assert.Equal(t, 2, stats.ActiveCases)
	assert.Equal(t, 5, stats.TotalCases)
}

func TestDashboard_UpcomingSessions(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []api.Case{
		{ID: "1", Sessions: []api.Session{
			{ID: "s1", Start: now.Add(time.Hour)},
			{ID: "s2", Start: now.Add(-time.Hour)},
			{ID: "s3", Start: now}, // exactly now is not upcoming
		}},
		{ID: "2", Sessions: []api.Session{
			{ID: "s4", Start: now.AddDate(0, 1, 0)},
		}},
	}

	stats := Dashboard(cases, now)
	assert.Equal(t, 2, stats.UpcomingSessions)
}

func TestDashboard_ThisMonthEnquiries(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []api.Case{
		{ID: "1", EnquiryDate: date(2024, 3, 1)},
		{ID: "2", EnquiryDate: date(2024, 3, 31)},
		{ID: "3", EnquiryDate: date(2024, 2, 28)},
		{ID: "4", EnquiryDate: date(2023, 3, 10)}, // same month, wrong year
		{ID: "5"},                                 // no enquiry date
	}

	stats := Dashboard(cases, now)
	assert.Equal(t, 2, stats.ThisMonthEnquiries)
}

func TestDashboard_Outstanding(t *testing.T) {
	cases := []api.Case{
		{ID: "1", AmountOwed: money("200.00"), AmountPaid: money("50.00")},  // +150.00
		{ID: "2", AmountOwed: money("80.00"), AmountPaid: money("100.00")},  // -20.00, ignored
		{ID: "3", AmountOwed: money("120.00"), AmountPaid: money("120.00")}, // settled
	}

	stats := Dashboard(cases, time.Now())
	assert.True(t, stats.OutstandingTotal.Equal(money("150.00")),
		"got %s", stats.OutstandingTotal)
	assert.Equal(t, 1, stats.UnpaidCount)
}

func TestDashboard_Empty(t *testing.T) {
	stats := Dashboard(nil, time.Now())
	assert.Equal(t, 0, stats.TotalCases)
	assert.True(t, stats.OutstandingTotal.IsZero())
}

func TestMonthlyEnquiries(t *testing.T) {
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	cases := []api.Case{
		{ID: "1", EnquiryDate: date(2024, 6, 1)},
		{ID: "2", EnquiryDate: date(2024, 6, 30)},
		{ID: "3", EnquiryDate: date(2024, 5, 15)},
		{ID: "4", EnquiryDate: date(2024, 1, 2)},
		{ID: "5", EnquiryDate: date(2023, 12, 31)}, // before the window
		{ID: "6", EnquiryDate: date(2024, 7, 1)},   // after the window
		{ID: "7"},
	}

	series := MonthlyEnquiries(cases, now, 6)
	require.Len(t, series, 6)
	// Window is Jan..Jun 2024, oldest first.
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 2}, series)
}

func TestMonthlyEnquiries_ZeroMonths(t *testing.T) {
	assert.Nil(t, MonthlyEnquiries(nil, time.Now(), 0))
}
