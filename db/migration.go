package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "probation-eval-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Evaluation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Evaluation")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AccessLink{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AccessLink")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Setting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Setting")
	}
	if err := DB.AutoMigrate(&dbmodels.SheetUpload{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SheetUpload")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
