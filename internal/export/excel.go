package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"officespace/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Бронирования"

// WriteReservationsReport создает Excel файл со списком бронирований за период
func WriteReservationsReport(
	exportPath string,
	start, end time.Time,
	reservations []*models.Reservation,
	logger *zerolog.Logger,
) (string, error) {
	if err := os.MkdirAll(exportPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Период: %s - %s",
		start.Format("02.01.2006"), end.Format("02.01.2006")))

	headers := []string{"Место", "Дата", "Начало", "Конец", "Продолжительность", "Статус", "Комментарий"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for row, res := range reservations {
		values := []any{
			res.WorkspaceName,
			res.Start.Format("02.01.2006"),
			res.Start.Format("15:04"),
			res.End.Format("15:04"),
			res.Duration.Label(),
			res.Status,
			res.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "G", 18)
	_ = f.MergeCell(sheetName, "A1", "G1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("reservations_%s_to_%s.xlsx",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
	filePath := filepath.Join(exportPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	if logger != nil {
		logger.Info().Str("file_path", filePath).Int("rows", len(reservations)).Msg("Excel file created")
	}
	return filePath, nil
}
