package evaluationapimodels

import (
	"time"

	"probation-eval-backend/models"
)

type SaveResult struct {
	Evaluation    EvaluationView `json:"evaluation"`
	Warnings      []string       `json:"warnings,omitempty"`       // например, письмо не отправлено
	IgnoredFields []string       `json:"ignored_fields,omitempty"` // поля, которые роль не может менять
	SessionClosed bool           `json:"session_closed,omitempty"` // гостевая сессия завершена
}

type Stats struct {
	Total           int64 `json:"total"`
	Draft           int64 `json:"draft"`
	PendingHR       int64 `json:"pending_hr"`
	PendingApproval int64 `json:"pending_approval"`
	Completed       int64 `json:"completed"`
}

func (s *Stats) Add(status models.EvaluationStatus, count int64) {
	s.Total += count
	switch status {
	case models.EvaluationStatusDraft:
		s.Draft += count
	case models.EvaluationStatusPendingHR:
		s.PendingHR += count
	case models.EvaluationStatusPendingApproval:
		s.PendingApproval += count
	case models.EvaluationStatusCompleted:
		s.Completed += count
	}
}

type ResetRequestView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AccessLinkView struct {
	Token     string          `json:"token"`
	URL       string          `json:"url"`
	Role      models.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type SignCheckView struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}
