package accesslinkstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AccessLink) error
	GetByID(id string) (*dbmodels.AccessLink, error)
	// Consume отмечает ссылку использованной, false - уже была использована или не найдена
	Consume(id string, at time.Time) (bool, error)
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

func (i impl) Create(rec dbmodels.AccessLink) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.AccessLink, error) {
	rec := dbmodels.AccessLink{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Consume(id string, at time.Time) (bool, error) {
	res := i.db.
		Model(&dbmodels.AccessLink{}).
		Where("id = ?", id).
		Where("consumed_at IS NULL").
		Update("consumed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) DeleteByEvaluation(evaluationID string) error {
	return i.db.
		Where("evaluation_id = ?", evaluationID).
		Delete(&dbmodels.AccessLink{}).
		Error
}
