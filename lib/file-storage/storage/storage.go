package filesdbstorage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	SaveUpload(rec dbmodels.SheetUpload) (id string, err error)
	GetUpload(id string) (*dbmodels.SheetUpload, error)
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetUpload(id string) (*dbmodels.SheetUpload, error) {
	rec := dbmodels.SheetUpload{}
	err := i.db.
		Model(&dbmodels.SheetUpload{}).
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

func (i impl) SaveUpload(rec dbmodels.SheetUpload) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}
