package actionapimodels

import (
	"strings"

	"github.com/pkg/errors"
	employeeapimodels "probation-eval-backend/models/api/employee"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	settingsapimodels "probation-eval-backend/models/api/settings"
)

type Action string

const (
	GetEvaluations    Action = "getEvaluations"
	GetEvaluationByID Action = "getEvaluationById"
	SaveEvaluation    Action = "saveEvaluation"
	DeleteEvaluation  Action = "deleteEvaluation"
	GetEmployees      Action = "getEmployees"
	SyncEmployees     Action = "syncEmployees"
	DeleteEmployee    Action = "deleteEmployee"
	GetSettings       Action = "getSettings"
	SaveSettings      Action = "saveSettings"
	PreviewSheet      Action = "previewSheet"
	SendEmail         Action = "sendEmail"
)

// Request - единая точка вызова действий, параметры зависят от action
type Request struct {
	Action    Action                              `json:"action"`
	ID        string                              `json:"id,omitempty"`
	Record    *evaluationapimodels.EvaluationData `json:"record,omitempty"`
	Employee  *employeeapimodels.EmployeeData     `json:"employee,omitempty"`
	Settings  *settingsapimodels.Settings         `json:"settings,omitempty"`
	SheetID   string                              `json:"sheet_id,omitempty"`
	SheetName string                              `json:"sheet_name,omitempty"`
	Email     *EmailRequest                       `json:"email,omitempty"`
}

func (r Request) Validate() error {
	switch r.Action {
	case GetEvaluations, GetEmployees, GetSettings:
		return nil
	case GetEvaluationByID, DeleteEvaluation, DeleteEmployee:
		if strings.TrimSpace(r.ID) == "" {
			return errors.New("id is empty")
		}
	case SaveEvaluation:
		if r.Record == nil {
			return errors.New("record is empty")
		}
		return r.Record.Validate()
	case SyncEmployees:
		if r.Employee == nil {
			return errors.New("employee is empty")
		}
		return r.Employee.Validate()
	case SaveSettings:
		if r.Settings == nil {
			return errors.New("settings are empty")
		}
		return r.Settings.Validate()
	case PreviewSheet:
		if strings.TrimSpace(r.SheetID) == "" {
			return errors.New("sheet id is empty")
		}
	case SendEmail:
		if r.Email == nil {
			return errors.New("email is empty")
		}
		return r.Email.Validate()
	default:
		return errors.Errorf("unknown action: %v", r.Action)
	}
	return nil
}

type EmailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Link    string   `json:"link,omitempty"` // кнопка в письме
}

func (r EmailRequest) Validate() error {
	if len(r.To) == 0 {
		return errors.New("recipients are empty")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is empty")
	}
	return nil
}
