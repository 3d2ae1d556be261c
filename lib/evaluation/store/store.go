package evaluationstore

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"probation-eval-backend/models"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	Save(rec *dbmodels.Evaluation) error
	GetByID(id string) (*dbmodels.Evaluation, error)
	List(filter evaluationapimodels.ListFilter) ([]dbmodels.Evaluation, error)
	ListStale(statuses []models.EvaluationStatus, before time.Time) ([]dbmodels.Evaluation, error)
	CountByStatus() (map[models.EvaluationStatus]int64, error)
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

// Save - вставка или полная перезапись, хуки модели срабатывают в обоих случаях
func (i impl) Save(rec *dbmodels.Evaluation) error {
	if rec.ID == "" {
		return errors.New("evaluation id is empty")
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&dbmodels.Evaluation{}).
			Where("id = ?", rec.ID).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(rec).Error
		}
		return tx.Save(rec).Error
	})
}

func (i impl) GetByID(id string) (*dbmodels.Evaluation, error) {
	rec := dbmodels.Evaluation{}
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

// List - подписи не выбираются, статус берется из снимка
func (i impl) List(filter evaluationapimodels.ListFilter) (list []dbmodels.Evaluation, err error) {
	tx := i.db.
		Model(&dbmodels.Evaluation{}).
		Omit("assessor_sign", "hr_sign", "approver_sign")
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(employee_name) LIKE ? OR LOWER(employee_id) LIKE ?", like, like)
	}
	err = tx.
		Order("last_updated desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListStale(statuses []models.EvaluationStatus, before time.Time) (list []dbmodels.Evaluation, err error) {
	err = i.db.
		Where("status IN ?", statuses).
		Where("last_updated < ?", before).
		Order("last_updated").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStatus() (map[models.EvaluationStatus]int64, error) {
	type row struct {
		Status models.EvaluationStatus
		Cnt    int64
	}
	var rows []row
	err := i.db.
		Model(&dbmodels.Evaluation{}).
		Select("status, count(*) as cnt").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.EvaluationStatus]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Cnt
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Evaluation{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}
