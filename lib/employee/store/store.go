package employeestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Upsert(list []dbmodels.Employee) error
	GetByID(id string) (*dbmodels.Employee, error)
	List(search string) (list []dbmodels.Employee, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Upsert(list []dbmodels.Employee) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "position", "section", "department", "start_date", "due_probation_date", "updated_at"}),
		}).
		CreateInBatches(&list, 200).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
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

func (i impl) List(search string) (list []dbmodels.Employee, err error) {
	tx := i.db.Model(&dbmodels.Employee{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(id) LIKE ?", like, like)
	}
	err = tx.
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Employee{}).
		Error
}
