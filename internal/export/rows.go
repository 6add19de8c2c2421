// Package export converts the case list into downloadable backup and
// spreadsheet representations, and builds the external calendar deep link.
package export

import (
	"strconv"
	"time"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// Columns is the fixed spreadsheet header shared by the CSV and XLSX
// exports.
var Columns = []string{
	"Reference",
	"Title",
	"Status",
	"Party 1 Name",
	"Party 1 Email",
	"Party 1 Phone",
	"Party 2 Name",
	"Party 2 Email",
	"Party 2 Phone",
	"Enquiry Date",
	"Voucher Used",
	"Internal Notes",
	"Created",
	"Updated",
	"Total Sessions",
}

const timestampLayout = "02/01/2006 15:04"

// Row renders one case as spreadsheet cells in column order. Missing
// values render as empty strings, voucher_used as Yes/No, and the session
// count as an integer (0 when no sessions are attached).
func Row(c *api.Case) []string {
	return []string{
		c.Reference,
		c.Title,
		string(c.Status),
		c.Party1Name,
		c.Party1Email,
		c.Party1Phone,
		c.Party2Name,
		c.Party2Email,
		c.Party2Phone,
		formatDate(c.EnquiryDate),
		yesNo(c.VoucherUsed),
		c.InternalNotes,
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
		strconv.Itoa(len(c.Sessions)),
	}
}

func formatDate(d api.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
