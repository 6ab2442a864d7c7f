// Package google talks to the remote tabular store: named worksheets inside
// Google spreadsheets, addressed by row and column.
package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewService builds an authenticated Sheets service from a service account
// credentials file. Service accounts need no interactive consent, so this is
// the whole auth flow.
func NewService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsFile, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file to config: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return srv, nil
}

// Open binds to the worksheet with the given title inside a spreadsheet,
// creating it (with the supplied header row) when it does not exist yet.
func Open(ctx context.Context, srv *sheets.Service, spreadsheetID, title string, header []string) (*Worksheet, error) {
	sp, err := srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sh := range sp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return newWorksheet(ctx, srv, spreadsheetID, title, sh.Properties.SheetId), nil
		}
	}

	// Worksheet missing: add it, then write the canonical header.
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 20,
					},
				},
			},
		}},
	}
	resp, err := srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to add worksheet %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return nil, fmt.Errorf("add worksheet %q: malformed reply", title)
	}

	ws := newWorksheet(ctx, srv, spreadsheetID, title, resp.Replies[0].AddSheet.Properties.SheetId)
	if len(header) > 0 {
		if err := ws.Append(header); err != nil {
			return nil, fmt.Errorf("unable to write header to worksheet %q: %w", title, err)
		}
	}
	return ws, nil
}
