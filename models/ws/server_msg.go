package wsmodels

import "probation-eval-backend/models"

type EventCode string

const (
	StatusChangedEvent     EventCode = "status_changed"
	EvaluationSavedEvent   EventCode = "evaluation_saved"
	EvaluationDeletedEvent EventCode = "evaluation_deleted"
)

type ServerMessage struct {
	Time         string                  `json:"time"`                    // время события
	Code         EventCode               `json:"code"`                    // код события
	EvaluationID string                  `json:"evaluation_id"`           // ид оценки
	Status       models.EvaluationStatus `json:"status,omitempty"`        // новый статус
	StatusHuman  string                  `json:"status_human,omitempty"`  // название статуса
	EmployeeName string                  `json:"employee_name,omitempty"` // сотрудник
	Msg          string                  `json:"msg,omitempty"`           // текст события
}
