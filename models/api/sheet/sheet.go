package sheetapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type UploadView struct {
	SheetID string `json:"sheet_id"`
}

type PreviewRequest struct {
	SheetID   string `json:"sheet_id"`
	SheetName string `json:"sheet_name"` // пусто - первый лист
}

func (r PreviewRequest) Validate() error {
	if strings.TrimSpace(r.SheetID) == "" {
		return errors.New("sheet id is empty")
	}
	return nil
}

type PreviewView struct {
	SheetNames []string   `json:"sheet_names"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
}

// ColumnMapping - номера колонок (с нуля) для полей сотрудника
type ColumnMapping struct {
	ID               int `json:"id"`
	Name             int `json:"name"`
	Position         int `json:"position"`
	Section          int `json:"section"`
	Department       int `json:"department"`
	StartDate        int `json:"start_date"`
	DueProbationDate int `json:"due_probation_date"`
}

func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		ID:               0,
		Name:             4,
		Position:         11,
		Section:          10,
		Department:       9,
		StartDate:        56,
		DueProbationDate: 57,
	}
}

func (m ColumnMapping) Validate() error {
	for _, col := range []int{m.ID, m.Name, m.Position, m.Section, m.Department, m.StartDate, m.DueProbationDate} {
		if col < 0 {
			return errors.New("column index must not be negative")
		}
	}
	return nil
}

type ImportRequest struct {
	PreviewRequest
	Mapping *ColumnMapping `json:"mapping,omitempty"`
}

func (r ImportRequest) Validate() error {
	if err := r.PreviewRequest.Validate(); err != nil {
		return err
	}
	if r.Mapping != nil {
		return r.Mapping.Validate()
	}
	return nil
}

type ImportView struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"` // строки без табельного номера и дубли
}
