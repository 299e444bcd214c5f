package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one populated spreadsheet row, keyed by header label. Num is the
// original 1-based sheet row number (the header row is row 1), so issue
// entries stay traceable after blank rows are dropped.
type Row struct {
	Num   int
	Cells map[string]string
}

// Sheet holds the header row and the populated data rows of one worksheet.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// LoadWorkbook parses workbook bytes into per-sheet header/row structures.
// Row 1 of each sheet is taken as headers; rows whose cells are all blank
// after trimming are dropped. A workbook that cannot be opened is a fatal
// error for the whole run.
func LoadWorkbook(fileData []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("error reading sheet %q: %w", sheetName, err)
		}

		sheet := Sheet{Name: sheetName}
		if len(rows) == 0 {
			sheets = append(sheets, sheet)
			continue
		}

		for _, h := range rows[0] {
			sheet.Headers = append(sheet.Headers, strings.TrimSpace(h))
		}

		for i := 1; i < len(rows); i++ {
			cells := make(map[string]string, len(sheet.Headers))
			blank := true
			for j, header := range sheet.Headers {
				var val string
				if j < len(rows[i]) {
					val = strings.TrimSpace(rows[i][j])
				}
				cells[header] = val
				if val != "" {
					blank = false
				}
			}
			if blank {
				continue
			}
			sheet.Rows = append(sheet.Rows, Row{Num: i + 1, Cells: cells})
		}

		sheets = append(sheets, sheet)
	}

	return sheets, nil
}
