// Package derive computes display-ready views from raw backend lists.
// Every function is pure: same inputs, same outputs, no side effects.
package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// Stats are the dashboard headline numbers for a case list.
type Stats struct {
	// ActiveCases counts cases with status OPEN or MIAM.
	ActiveCases int
	// TotalCases is the full case count.
	TotalCases int
	// UpcomingSessions counts sessions across all cases starting strictly
	// after now.
	UpcomingSessions int
	// ThisMonthEnquiries counts cases whose enquiry date falls in the
	// calendar month and year of now.
	ThisMonthEnquiries int
	// OutstandingTotal sums owed minus paid over cases where that
	// difference is positive. Negative balances contribute nothing.
	OutstandingTotal decimal.Decimal
	// UnpaidCount is the number of cases with a positive outstanding
	// balance.
	UnpaidCount int
}

// Dashboard computes the headline statistics from the full case list,
// evaluated against wall-clock now.
func Dashboard(cases []api.Case, now time.Time) Stats {
	stats := Stats{
		TotalCases:       len(cases),
		OutstandingTotal: decimal.Zero,
	}

	for i := range cases {
		c := &cases[i]

		if c.Status == api.StatusOpen || c.Status == api.StatusMIAM {
			stats.ActiveCases++
		}

		for _, s := range c.Sessions {
			if s.Start.After(now) {
				stats.UpcomingSessions++
			}
		}

		if !c.EnquiryDate.IsZero() &&
			c.EnquiryDate.Month() == now.Month() &&
			c.EnquiryDate.Year() == now.Year() {
			stats.ThisMonthEnquiries++
		}

		if outstanding := c.Outstanding(); outstanding.IsPositive() {
			stats.OutstandingTotal = stats.OutstandingTotal.Add(outstanding)
			stats.UnpaidCount++
		}
	}

	return stats
}

// MonthlyEnquiries returns enquiry counts for the months months ending
// with the month of now, oldest first. Feeds the dashboard sparkline.
func MonthlyEnquiries(cases []api.Case, now time.Time, months int) []float64 {
	if months <= 0 {
		return nil
	}
	series := make([]float64, months)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range cases {
		c := &cases[i]
		if c.EnquiryDate.IsZero() {
			continue
		}
		enquiry := time.Date(c.EnquiryDate.Year(), c.EnquiryDate.Month(), 1, 0, 0, 0, 0, now.Location())
		offset := monthsBetween(enquiry, current)
		if offset >= 0 && offset < months {
			series[months-1-offset]++
		}
	}
	return series
}

// monthsBetween returns how many whole calendar months from should be
// rolled forward to reach until. Negative when from is later.
func monthsBetween(from, until time.Time) int {
	return (until.Year()-from.Year())*12 + int(until.Month()) - int(from.Month())
}
