package export

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

// FormatVersion is the backup envelope version literal.
const FormatVersion = "1.0"

// Backup is the JSON backup envelope wrapping the full case list as
// returned by the backend, nested sessions included.
type Backup struct {
	ExportedAt time.Time  `json:"exported_at"`
	Version    string     `json:"version"`
	TotalCases int        `json:"total_cases"`
	Cases      []api.Case `json:"cases"`
}

// JSONBackup renders the backup document. Output is byte-for-byte
// reproducible for the same case list and timestamp.
func JSONBackup(cases []api.Case, exportedAt time.Time) ([]byte, error) {
	backup := Backup{
		ExportedAt: exportedAt,
		Version:    FormatVersion,
		TotalCases: len(cases),
		Cases:      cases,
	}
	buf, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return buf, nil
}

// BackupFilename returns the date-stamped backup file name.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("mediation-backup-%s.json", now.Format("2006-01-02"))
}
