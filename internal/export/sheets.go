package export

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/stockbridge/reval/internal/inventory"
	"github.com/stockbridge/reval/internal/reval"
)

const monitoringSheet = "MONITORING"

var monitoringHeader = []any{"Date", "Total", "Status", "Voided", "Sources"}

// SheetsWriter appends one monitoring row per run to a Google Sheet, so
// operators can see run history without any local state.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Export implements reval.Hook.
func (w *SheetsWriter) Export(ctx context.Context, result reval.Result) error {
	if err := w.ensureSheet(ctx); err != nil {
		return err
	}

	status := "posted"
	if result.Skipped {
		status = "skipped"
	}
	sources := lo.Map(result.Locations, func(t inventory.LocationTotal, _ int) string {
		return fmt.Sprintf("%s=%s via %s", t.Location.Label(), t.Value, t.Source)
	})

	row := []any{
		result.Date.UTC().Format("2006-01-02"),
		toFloat(result.Total),
		status,
		len(result.Voided),
		fmt.Sprintf("%v", sources),
	}

	_, err := w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		monitoringSheet+"!A:E",
		&sheets.ValueRange{Values: [][]any{row}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending monitoring row: %w", err)
	}
	return nil
}

// ensureSheet creates the monitoring sheet with a header row if it does not
// already exist.
func (w *SheetsWriter) ensureSheet(ctx context.Context) error {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties.Title == monitoringSheet {
			return nil
		}
	}

	_, err = w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: monitoringSheet},
			},
		}}},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating monitoring sheet: %w", err)
	}

	_, err = w.svc.Spreadsheets.Values.Update(
		w.spreadsheetID,
		monitoringSheet+"!A1",
		&sheets.ValueRange{Values: [][]any{monitoringHeader}},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing monitoring header: %w", err)
	}
	return nil
}
