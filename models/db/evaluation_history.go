package dbmodels

import "probation-eval-backend/models"

type EvaluationHistory struct {
	BaseModel
	EvaluationID string                  `gorm:"type:varchar(36);index"`
	FromStatus   models.EvaluationStatus `gorm:"type:varchar(32)"`
	ToStatus     models.EvaluationStatus `gorm:"type:varchar(32)"`
	ActorRole    models.UserRole         `gorm:"type:varchar(32)"`
	ActorName    string
	Action       models.HistoryAction `gorm:"type:varchar(32)"`
	Changes      EntityChanges        `gorm:"type:jsonb"`
}
