package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

func TestExportEvaluationList(t *testing.T) {
	list := []dbmodels.Evaluation{
		{
			EmployeeName:   "Somchai",
			EmployeeID:     "E001",
			StatusSnapshot: models.EvaluationStatusCompleted,
			TotalScore:     71.43,
			MeanScore:      5,
			LastUpdated:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
			UpdatedBy:      "ceo",
		},
		{EmployeeName: "Anan", StatusSnapshot: models.EvaluationStatusDraft},
	}
	buf, err := NewInstance().ExportEvaluationList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, evaluationHeaders, rows[0])
	require.Equal(t, "Somchai", rows[1][0])
	require.Equal(t, "Passed", rows[1][6])
	require.Equal(t, "Completed", rows[1][7])
	require.Equal(t, "01.05.2024 10:30", rows[1][8])
	require.Equal(t, "Not passed", rows[2][6])
	require.Equal(t, "Draft", rows[2][7])
}
