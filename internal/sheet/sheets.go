package sheet

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"prep-checkin-go/internal/config"
	"prep-checkin-go/internal/models"
)

// SheetsStore implements RowStore against a Google Sheets spreadsheet.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsStore creates a Google Sheets row store using the same OAuth2
// credentials as the Gmail fetcher.
func NewSheetsStore(gmailCfg *config.GmailConfig, sheetsCfg *config.SheetsConfig) (*SheetsStore, error) {
	ctx := context.Background()

	oauth2Config := &oauth2.Config{
		ClientID:     gmailCfg.ClientID,
		ClientSecret: gmailCfg.ClientSecret,
		Scopes:       []string{sheets.SpreadsheetsScope},
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		RefreshToken: gmailCfg.RefreshToken,
	}

	tokenSource := oauth2Config.TokenSource(ctx, token)

	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &SheetsStore{
		service:       service,
		spreadsheetID: sheetsCfg.SpreadsheetID,
		sheetName:     sheetsCfg.SheetName,
	}, nil
}

// EnsureHeader writes the fixed header row when the sheet has none yet.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	headerRange := fmt.Sprintf("%s!A1:F1", s.sheetName)

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	header := make([]interface{}, len(HeaderColumns))
	for i, col := range HeaderColumns {
		header[i] = col
	}

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	return nil
}

// ReadRows returns all data rows from row 2 onward, columns A..F.
func (s *SheetsStore) ReadRows(ctx context.Context) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A2:F", s.sheetName)

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// rowValues lays out one record in column order. The order-number cells
// stay strings so RAW input keeps their leading zeros; quantity goes as a
// number.
func rowValues(record models.CheckinRecord) []interface{} {
	return []interface{}{
		record.Timestamp,
		record.OrderNumber,
		record.ItemName,
		record.ASIN,
		record.Quantity,
		record.CorrectOrderNumber,
	}
}

// AppendRow appends one record as a new row.
func (s *SheetsStore) AppendRow(ctx context.Context, record models.CheckinRecord) error {
	appendRange := fmt.Sprintf("%s!A:F", s.sheetName)

	values := &sheets.ValueRange{
		Values: [][]interface{}{rowValues(record)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append sheet row: %w", err)
	}

	return nil
}
