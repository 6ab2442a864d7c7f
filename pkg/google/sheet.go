package google

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// Worksheet is one named sheet inside a spreadsheet. Row numbers are 1-based
// and row 1 is the header. Row indices are never cached between calls: the
// sheet may be edited externally at any time, so every write-by-key resolves
// its row immediately beforehand.
type Worksheet struct {
	srv           *sheets.Service
	ctx           context.Context
	spreadsheetID string
	title         string
	sheetID       int64
}

func newWorksheet(ctx context.Context, srv *sheets.Service, spreadsheetID, title string, sheetID int64) *Worksheet {
	return &Worksheet{
		srv:           srv,
		ctx:           ctx,
		spreadsheetID: spreadsheetID,
		title:         title,
		sheetID:       sheetID,
	}
}

// Rows fetches every populated row, header included. Cells come back as
// strings regardless of the sheet's cell types.
func (w *Worksheet) Rows() ([][]string, error) {
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, quote(w.title)).Context(w.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch rows from %q: %w", w.title, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = fmt.Sprint(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Find returns the 1-based row number whose first column equals key, or 0
// when no such row exists.
func (w *Worksheet) Find(key string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", quote(w.title))
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, rng).Context(w.ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to search %q: %w", w.title, err)
	}
	for i, r := range resp.Values {
		if len(r) > 0 && fmt.Sprint(r[0]) == key {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Append adds a row after the last populated one.
func (w *Worksheet) Append(cells []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(cells)}}
	_, err := w.srv.Spreadsheets.Values.Append(w.spreadsheetID, quote(w.title), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(w.ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to append row to %q: %w", w.title, err)
	}
	return nil
}

// Update overwrites the full cell range of the given row.
func (w *Worksheet) Update(row int, cells []string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", quote(w.title), row, columnLetter(len(cells)), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(cells)}}
	_, err := w.srv.Spreadsheets.Values.Update(w.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(w.ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to update row %d in %q: %w", row, w.title, err)
	}
	return nil
}

// Delete removes the given row entirely, shifting the rows below it up.
func (w *Worksheet) Delete(row int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    w.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	_, err := w.srv.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(w.ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to delete row %d from %q: %w", row, w.title, err)
	}
	return nil
}

func toCells(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// quote wraps a worksheet title for use in an A1 range; titles may contain
// spaces or non-ASCII characters.
func quote(title string) string {
	return "'" + title + "'"
}

// columnLetter converts a 1-based column count to its A1 letter.
func columnLetter(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}
