package google

import (
	"context"
	"fmt"
	"os"

	"officespace/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultSheetRange = "Reservations!A:H"

// SheetsService appends reservation rows to a Google spreadsheet so the
// office manager has a live view of bookings.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	sheetRange    string
}

func NewSheetsService(credentialsFile, spreadsheetID, sheetRange string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	if sheetRange == "" {
		sheetRange = defaultSheetRange
	}

	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
	}, nil
}

// AppendReservation adds one reservation row to the spreadsheet.
func (s *SheetsService) AppendReservation(ctx context.Context, res *models.Reservation) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{ReservationRow(res)},
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append reservation row: %v", err)
	}
	return nil
}

// ReservationRow flattens a reservation into the sheet's column order.
func ReservationRow(res *models.Reservation) []interface{} {
	return []interface{}{
		res.ID,
		res.WorkspaceID,
		res.WorkspaceName,
		res.Start.Format("02.01.2006 15:04"),
		res.End.Format("02.01.2006 15:04"),
		res.Duration.Label(),
		res.Status,
		res.Notes,
	}
}
