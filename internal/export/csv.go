package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// CSV renders the case list as a spreadsheet. The header row is plain;
// every data field is quoted independently, with literal double quotes
// escaped by doubling.
func CSV(cases []api.Case) []byte {
	lines := make([]string, 0, len(cases)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for i := range cases {
		lines = append(lines, csvLine(Row(&cases[i])))
	}
	return []byte(strings.Join(lines, "\n"))
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// CSVFilename returns the date-stamped spreadsheet file name.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("mediation-cases-%s.csv", now.Format("2006-01-02"))
}
