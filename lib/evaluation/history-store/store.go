package evaluationhistorystore

import (
	"gorm.io/gorm"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EvaluationHistory) (id string, err error)
	List(evaluationID string) (list []dbmodels.EvaluationHistory, err error)
	DeleteByEvaluation(evaluationID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EvaluationHistory) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(evaluationID string) (list []dbmodels.EvaluationHistory, err error) {
	err = i.db.
		Where("evaluation_id = ?", evaluationID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByEvaluation(evaluationID string) error {
	return i.db.
		Where("evaluation_id = ?", evaluationID).
		Delete(&dbmodels.EvaluationHistory{}).
		Error
}
