package employee

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	employeestore "probation-eval-backend/lib/employee/store"
	"probation-eval-backend/lib/evaluation/workflow"
	employeeapimodels "probation-eval-backend/models/api/employee"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	List(search string) ([]employeeapimodels.EmployeeView, error)
	Get(id string) (*dbmodels.Employee, error)
	Sync(data employeeapimodels.EmployeeData) error
	SyncBatch(list employeeapimodels.EmployeeBatch) (count int, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler(store employeestore.Provider) {
	Instance = NewInstance(store)
}

func NewInstance(store employeestore.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) List(search string) ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.List(search)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employees")
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) Get(id string) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load employee")
	}
	if rec == nil {
		return nil, workflow.NotFoundError("employee not found")
	}
	return rec, nil
}

func (i impl) Sync(data employeeapimodels.EmployeeData) error {
	_, err := i.SyncBatch(employeeapimodels.EmployeeBatch{data})
	return err
}

// SyncBatch - upsert по табельному номеру, при повторе номера в пакете остается первая запись
func (i impl) SyncBatch(list employeeapimodels.EmployeeBatch) (count int, err error) {
	seen := map[string]bool{}
	records := make([]dbmodels.Employee, 0, len(list))
	for _, item := range list {
		rec := item.ToDB()
		if rec.ID == "" || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		records = append(records, rec)
	}
	err = i.store.Upsert(records)
	if err != nil {
		log.WithError(err).Error("ошибка сохранения справочника сотрудников")
		return 0, errors.Wrap(err, "failed to sync employees")
	}
	log.WithField("count", len(records)).Info("справочник сотрудников обновлен")
	return len(records), nil
}

func (i impl) Delete(id string) error {
	err := i.store.Delete(id)
	if err != nil {
		return errors.Wrap(err, "failed to delete employee")
	}
	return nil
}
