package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fyrsmithlabs/casebook/internal/api"
)

const sheetName = "Cases"

// XLSX renders the case list as an Excel workbook with a single Cases
// sheet using the same columns as the CSV export.
func XLSX(cases []api.Case) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, Columns); err != nil {
		return nil, err
	}
	for i := range cases {
		if err := setRow(f, i+2, Row(&cases[i])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, cells []string) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell reference for row %d: %w", row, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, ref, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

// XLSXFilename returns the date-stamped workbook file name.
func XLSXFilename(now time.Time) string {
	return fmt.Sprintf("mediation-cases-%s.xlsx", now.Format("2006-01-02"))
}
