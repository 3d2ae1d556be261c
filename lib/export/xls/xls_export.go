package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"probation-eval-backend/lib/evaluation/score"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	ExportEvaluationList(list []dbmodels.Evaluation) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

const sheetName = "Evaluations"

var evaluationHeaders = []string{"Employee", "Employee ID", "Position", "Department", "Total score", "Mean score", "Result", "Status", "Last updated", "Updated by"}

func (i impl) ExportEvaluationList(list []dbmodels.Evaluation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, evaluationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = writeEvaluationData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа")
	}
	return f.WriteToBuffer()
}

// writeEvaluationData - статус и баллы берутся из снимков записи, подписи в список не загружаются
func writeEvaluationData(f *excelize.File, sheet string, list []dbmodels.Evaluation, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(evaluationHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		result := "Not passed"
		if item.TotalScore >= score.PassMark {
			result = "Passed"
		}
		var lastUpdated interface{}
		if !item.LastUpdated.IsZero() {
			lastUpdated = item.LastUpdated.Format("02.01.2006 15:04")
		}
		values := []interface{}{
			item.EmployeeName,
			item.EmployeeID,
			item.Position,
			item.Department,
			item.TotalScore,
			item.MeanScore,
			result,
			item.StatusSnapshot.ToHuman(),
			lastUpdated,
			item.UpdatedBy,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}
	return nil
}
