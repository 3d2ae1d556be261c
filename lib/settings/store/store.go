package settingsstore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	List() (list []dbmodels.Setting, err error)
	Upsert(list []dbmodels.Setting) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List() (list []dbmodels.Setting, err error) {
	err = i.db.
		Order("code").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Upsert(list []dbmodels.Setting) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&list).
		Error
}
