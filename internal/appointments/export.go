package appointments

import (
	"context"
	"fmt"
	"io"
	"time"

	"djazair-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheet       = "Appointments"
	ExportFilename    = "appointments.xlsx"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type exportColumn struct {
	header string
	width  float64
}

var exportColumns = []exportColumn{
	{"ID", 8},
	{"Created At", 20},
	{"First Name", 16},
	{"Last Name", 16},
	{"Birth Date", 16},
	{"Appointment Date", 20},
	{"First Time", 12},
	{"Phone", 18},
	{"Status", 12},
}

// Export writes every appointment, newest first, as an xlsx workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("export sheet: %w", err)
	}

	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ExportSheet, name, name, col.width); err != nil {
			return fmt.Errorf("export width: %w", err)
		}
		header[i] = col.header
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("export header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(ExportSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, a := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(a)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("export row %d: %w", a.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export write: %w", err)
	}
	return nil
}

func exportRow(a models.Appointment) []interface{} {
	firstTime := "non"
	if a.FirstTime {
		firstTime = "oui"
	}
	return []interface{}{
		a.ID,
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.FirstName,
		a.LastName,
		a.BirthDate.Format(dateLayout),
		a.AppointmentDate.Format(dateLayout),
		firstTime,
		a.Phone,
		a.Status,
	}
}
