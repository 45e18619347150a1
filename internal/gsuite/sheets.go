package gsuite

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient mirrors booking requests into a spreadsheet the coach
// works from day to day.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetRange    string
}

func NewSheetsClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetRange:    "Bookings!A:I",
	}, nil
}

// BookingRow is the flat shape appended to the sheet.
type BookingRow struct {
	ID            string
	CustomerName  string
	Email         string
	Phone         string
	Package       string
	SkillLevel    string
	RequestedDate string
	RequestedSlot string
	Notes         string
}

// AppendBooking appends one row. Sheet write failures are surfaced to
// the caller, who decides whether they are fatal.
func (s *SheetsClient) AppendBooking(ctx context.Context, row BookingRow) error {
	values := &sheets.ValueRange{
		Values: [][]any{{
			row.ID, row.CustomerName, row.Email, row.Phone,
			row.Package, row.SkillLevel, row.RequestedDate, row.RequestedSlot, row.Notes,
		}},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking row: %w", err)
	}
	return nil
}
