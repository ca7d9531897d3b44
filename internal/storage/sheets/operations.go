package sheets

import (
	"context"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// tab describes one worksheet of the spreadsheet. lastCol is the rightmost
// column letter covered by the headers.
type tab struct {
	name    string
	lastCol string
	headers []string
}

func (t tab) dataRange() string {
	return fmt.Sprintf("%s!A2:%s", t.name, t.lastCol)
}

func (t tab) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:%s%d", t.name, row, t.lastCol, row)
}

func (t tab) headerRange() string {
	return fmt.Sprintf("%s!A1:%s1", t.name, t.lastCol)
}

// firstDataRow is the 1-based sheet row where records start, below the header.
const firstDataRow = 2

// appendRow appends one record below the existing rows of the tab.
func (s *Storage) appendRow(ctx context.Context, t tab, values []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.service.Spreadsheets.Values.Append(
		s.spreadsheetID,
		t.dataRange(),
		&sheetsapi.ValueRange{Values: [][]interface{}{values}},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", t.name, err)
	}
	return nil
}

// allRows reads every data row of the tab. The slice index i maps to sheet
// row i+firstDataRow. Blanked rows come back as empty slices and must be
// skipped by the caller.
func (s *Storage) allRows(ctx context.Context, t tab) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, t.dataRange()).
		ValueRenderOption("UNFORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}
	return resp.Values, nil
}

// updateRow rewrites one record in place. row is the 1-based sheet row.
func (s *Storage) updateRow(ctx context.Context, t tab, row int, values []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		t.rowRange(row),
		&sheetsapi.ValueRange{Values: [][]interface{}{values}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s row %d: %w", t.name, row, err)
	}
	return nil
}

// blankRow clears one record while keeping its slot, so row numbers of the
// remaining records stay stable.
func (s *Storage) blankRow(ctx context.Context, t tab, row int) error {
	blank := make([]interface{}, len(t.headers))
	for i := range blank {
		blank[i] = ""
	}
	return s.updateRow(ctx, t, row, blank)
}

// findRow locates the record whose first column equals id. Returns the
// 1-based sheet row and the raw values, or found=false.
func (s *Storage) findRow(ctx context.Context, t tab, id string) (int, []interface{}, bool, error) {
	rows, err := s.allRows(ctx, t)
	if err != nil {
		return 0, nil, false, err
	}
	for i, row := range rows {
		if cellString(row, 0) == id {
			return i + firstDataRow, row, true, nil
		}
	}
	return 0, nil, false, nil
}

// ensureTab creates the worksheet and writes its header row when missing.
func (s *Storage) ensureTab(ctx context.Context, t tab) error {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	exists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == t.name {
			exists = true
			break
		}
	}

	if !exists {
		s.log.Info("creating worksheet", "tab", t.name)
		_, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
			Requests: []*sheetsapi.Request{{
				AddSheet: &sheetsapi.AddSheetRequest{
					Properties: &sheetsapi.SheetProperties{Title: t.name},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("create worksheet %s: %w", t.name, err)
		}
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, t.headerRange()).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read headers of %s: %w", t.name, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	headers := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		headers[i] = h
	}
	_, err = s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		t.headerRange(),
		&sheetsapi.ValueRange{Values: [][]interface{}{headers}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write headers of %s: %w", t.name, err)
	}
	return nil
}
