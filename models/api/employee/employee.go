package employeeapimodels

import (
	"strings"

	"github.com/pkg/errors"
	dbmodels "probation-eval-backend/models/db"
)

type EmployeeData struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Position         string `json:"position"`
	Section          string `json:"section"`
	Department       string `json:"department"`
	StartDate        string `json:"start_date"`
	DueProbationDate string `json:"due_probation_date"`
}

func (e EmployeeData) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("employee id is empty")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("employee name is empty")
	}
	return nil
}

func (e EmployeeData) ToDB() dbmodels.Employee {
	return dbmodels.Employee{
		ID:               strings.TrimSpace(e.ID),
		Name:             strings.TrimSpace(e.Name),
		Position:         e.Position,
		Section:          e.Section,
		Department:       e.Department,
		StartDate:        e.StartDate,
		DueProbationDate: e.DueProbationDate,
	}
}

type EmployeeView struct {
	EmployeeData
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		EmployeeData: EmployeeData{
			ID:               rec.ID,
			Name:             rec.Name,
			Position:         rec.Position,
			Section:          rec.Section,
			Department:       rec.Department,
			StartDate:        rec.StartDate,
			DueProbationDate: rec.DueProbationDate,
		},
	}
}

type EmployeeBatch []EmployeeData

func (b EmployeeBatch) Validate() error {
	for i, item := range b {
		if err := item.Validate(); err != nil {
			return errors.Wrapf(err, "row %d", i+1)
		}
	}
	return nil
}

type ListFilter struct {
	Search string `query:"search"`
}
