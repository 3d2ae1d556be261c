package sheetimport

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"probation-eval-backend/lib/employee"
	"probation-eval-backend/lib/evaluation/workflow"
	filestorage "probation-eval-backend/lib/file-storage"
	filesdbstorage "probation-eval-backend/lib/file-storage/storage"
	employeeapimodels "probation-eval-backend/models/api/employee"
	sheetapimodels "probation-eval-backend/models/api/sheet"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Upload(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64, uploadedBy string) (sheetapimodels.UploadView, error)
	Preview(ctx context.Context, req sheetapimodels.PreviewRequest) (sheetapimodels.PreviewView, error)
	Import(ctx context.Context, req sheetapimodels.ImportRequest) (sheetapimodels.ImportView, error)
}

var Instance Provider

func NewHandler(files filestorage.Provider, uploads filesdbstorage.Provider, employees employee.Provider) {
	Instance = NewInstance(files, uploads, employees)
}

func NewInstance(files filestorage.Provider, uploads filesdbstorage.Provider, employees employee.Provider) Provider {
	return &impl{
		files:     files,
		uploads:   uploads,
		employees: employees,
	}
}

type impl struct {
	files     filestorage.Provider
	uploads   filesdbstorage.Provider
	employees employee.Provider
}

func (i impl) Upload(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64, uploadedBy string) (sheetapimodels.UploadView, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".xlsx") {
		return sheetapimodels.UploadView{}, workflow.ValidationError("only .xlsx workbooks are supported")
	}
	sheetID, err := i.files.UploadSheet(ctx, fileName, fileReader, fileSize)
	if err != nil {
		return sheetapimodels.UploadView{}, workflow.TransportError(err, "failed to store the workbook")
	}
	_, err = i.uploads.SaveUpload(dbmodels.SheetUpload{
		BaseModel:  dbmodels.BaseModel{ID: sheetID},
		FileName:   fileName,
		FileSize:   fileSize,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		return sheetapimodels.UploadView{}, workflow.TransportError(err, "failed to store the workbook")
	}
	return sheetapimodels.UploadView{SheetID: sheetID}, nil
}

func (i impl) Preview(ctx context.Context, req sheetapimodels.PreviewRequest) (sheetapimodels.PreviewView, error) {
	if err := req.Validate(); err != nil {
		return sheetapimodels.PreviewView{}, workflow.ValidationError("%v", err.Error())
	}
	upload, err := i.uploads.GetUpload(req.SheetID)
	if err != nil {
		return sheetapimodels.PreviewView{}, workflow.TransportError(err, "failed to load the workbook")
	}
	if upload == nil {
		return sheetapimodels.PreviewView{}, workflow.NotFoundError("workbook not found")
	}
	data, err := i.files.GetSheet(ctx, req.SheetID)
	if err != nil {
		return sheetapimodels.PreviewView{}, workflow.TransportError(err, "failed to load the workbook")
	}
	if data == nil {
		return sheetapimodels.PreviewView{}, workflow.NotFoundError("workbook not found")
	}
	return ReadSheet(data, req.SheetName)
}

func (i impl) Import(ctx context.Context, req sheetapimodels.ImportRequest) (sheetapimodels.ImportView, error) {
	if err := req.Validate(); err != nil {
		return sheetapimodels.ImportView{}, workflow.ValidationError("%v", err.Error())
	}
	preview, err := i.Preview(ctx, req.PreviewRequest)
	if err != nil {
		return sheetapimodels.ImportView{}, err
	}
	mapping := sheetapimodels.DefaultColumnMapping()
	if req.Mapping != nil {
		mapping = *req.Mapping
	}
	batch, skipped := Map(preview.Rows, mapping)
	if len(batch) == 0 {
		return sheetapimodels.ImportView{Skipped: skipped}, workflow.ValidationError("no rows with an employee id to import")
	}
	count, err := i.employees.SyncBatch(batch)
	if err != nil {
		return sheetapimodels.ImportView{}, workflow.TransportError(err, "failed to sync employees")
	}
	log.
		WithField("sheet_id", req.SheetID).
		WithField("imported", count).
		WithField("skipped", skipped).
		Info("импорт сотрудников завершен")
	return sheetapimodels.ImportView{Imported: count, Skipped: skipped}, nil
}

// ReadSheet - первая строка листа считается заголовком, пустое имя листа - первый лист книги
func ReadSheet(data []byte, sheetName string) (sheetapimodels.PreviewView, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return sheetapimodels.PreviewView{}, workflow.ValidationError("file is not a valid xlsx workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	result := sheetapimodels.PreviewView{SheetNames: f.GetSheetList()}
	if len(result.SheetNames) == 0 {
		return result, workflow.ValidationError("workbook has no sheets")
	}
	sheet := strings.TrimSpace(sheetName)
	if sheet == "" {
		sheet = result.SheetNames[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return result, workflow.ValidationError("sheet %q not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return result, errors.Wrapf(err, "ошибка чтения листа %v", sheet)
	}
	if len(rows) == 0 {
		result.Headers = []string{}
		result.Rows = [][]string{}
		return result, nil
	}
	result.Headers = rows[0]
	result.Rows = rows[1:]
	return result, nil
}

// Map - строки без табельного номера отбрасываются, из повторов остается первая строка
func Map(rows [][]string, mapping sheetapimodels.ColumnMapping) (batch employeeapimodels.EmployeeBatch, skipped int) {
	seen := map[string]bool{}
	for _, row := range rows {
		item := employeeapimodels.EmployeeData{
			ID:               cell(row, mapping.ID),
			Name:             cell(row, mapping.Name),
			Position:         cell(row, mapping.Position),
			Section:          cell(row, mapping.Section),
			Department:       cell(row, mapping.Department),
			StartDate:        cell(row, mapping.StartDate),
			DueProbationDate: cell(row, mapping.DueProbationDate),
		}
		if item.ID == "" || seen[item.ID] {
			skipped++
			continue
		}
		seen[item.ID] = true
		batch = append(batch, item)
	}
	return batch, skipped
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
