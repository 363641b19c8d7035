package appointments

import (
	"bytes"
	"context"
	"testing"

	"djazair-backend/internal/models"
	"djazair-backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, schedule.NewPolicy(false, nil), nil)

	first, err := svc.Create(ctx, exampleRequest())
	require.NoError(t, err)
	req := exampleRequest()
	req.FirstName = "Yacine"
	req.FirstTime = false
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, first.ID, models.AppointmentStatusDone))

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheet}, f.GetSheetList())

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Created At", "First Name", "Last Name", "Birth Date", "Appointment Date", "First Time", "Phone", "Status"}, rows[0])

	assert.Equal(t, "Yacine", rows[1][2], "newest first")
	assert.Equal(t, "non", rows[1][6])
	assert.Equal(t, second.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), rows[1][1])

	assert.Equal(t, []string{"1", first.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), "A", "B", "2000-01-01", "2025-03-10", "oui", "+213500000000", "DONE"}, rows[2])

	width, err := f.GetColWidth(ExportSheet, "F")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
}

func TestExportEmpty(t *testing.T) {
	svc := newTestService(t, schedule.NewPolicy(false, nil), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
