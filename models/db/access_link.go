package dbmodels

import (
	"time"

	"probation-eval-backend/models"
)

// AccessLink - выданная ссылка для гостевой сессии, ID совпадает с jti токена
type AccessLink struct {
	ID           string          `gorm:"type:varchar(36);primaryKey"`
	EvaluationID string          `gorm:"type:varchar(36);index"`
	Role         models.UserRole `gorm:"type:varchar(32)"`
	ExpiresAt    time.Time
	ConsumedAt   *time.Time
	CreatedAt    time.Time
}

func (l AccessLink) IsActive(now time.Time) bool {
	return l.ConsumedAt == nil && now.Before(l.ExpiresAt)
}
