package form

import (
	"probation-eval-backend/models"
)

// Session - кто работает с формой. Гостевая сессия привязана к одной записи и одной роли.
type Session struct {
	Role         models.UserRole
	UserName     string
	IsGuest      bool
	EvaluationID string
	LinkID       string // jti ссылки доступа
}

func (s Session) Actor() string {
	if s.UserName != "" {
		return s.UserName
	}
	return s.Role.ToHuman()
}

// AllowsRecord - гость видит только запись из своей ссылки
func (s Session) AllowsRecord(id string) bool {
	return !s.IsGuest || s.EvaluationID == id
}
