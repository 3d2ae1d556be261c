package evaluationapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"probation-eval-backend/lib/evaluation/score"
	"probation-eval-backend/models"
)

var errNegativeCounter = errors.New("attendance counters must not be negative")

// EvaluationData - частичное изменение оценки, nil поля не трогаются
type EvaluationData struct {
	DirectoryID      *string     `json:"directory_id,omitempty"` // табельный номер из справочника, данные сотрудника копируются из него
	EmployeeName     *string     `json:"employee_name,omitempty"`
	EmployeeID       *string     `json:"employee_id,omitempty"`
	Position         *string     `json:"position,omitempty"`
	Section          *string     `json:"section,omitempty"`
	Department       *string     `json:"department,omitempty"`
	StartDate        *string     `json:"start_date,omitempty"`
	DueProbationDate *string     `json:"due_probation_date,omitempty"`
	Attendance       *Attendance `json:"attendance,omitempty"`
	// 0 - снять оценку по теме
	Ratings         map[int]int `json:"ratings,omitempty"`
	Opinion         *Opinion    `json:"opinion,omitempty"`
	HrOpinion       *string     `json:"hr_opinion,omitempty"`
	ApproverOpinion *string     `json:"approver_opinion,omitempty"`
}

func (d EvaluationData) Validate() error {
	if d.Attendance != nil {
		if err := d.Attendance.validate(); err != nil {
			return err
		}
	}
	for topicID, rating := range d.Ratings {
		if rating == 0 {
			continue
		}
		if err := score.ValidateRating(topicID, rating); err != nil {
			return err
		}
	}
	return nil
}

type SignRequest struct {
	Signature string          `json:"signature"`      // data url изображения подписи
	Data      *EvaluationData `json:"data,omitempty"` // правки, сохраняемые вместе с подписью
}

func (r SignRequest) Validate() error {
	if strings.TrimSpace(r.Signature) == "" {
		return errors.New("signature is empty")
	}
	if r.Data != nil {
		return r.Data.Validate()
	}
	return nil
}

type ResetConfirmRequest struct {
	Token string `json:"token"` // токен, выданный при запросе сброса
}

func (r ResetConfirmRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("confirmation token is empty")
	}
	return nil
}

type ListFilter struct {
	Status models.EvaluationStatus `json:"status" query:"status"`
	Search string                  `json:"search" query:"search"` // поиск по имени и табельному номеру
}

func (f ListFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.Errorf("unknown status: %v", f.Status)
	}
	return nil
}
