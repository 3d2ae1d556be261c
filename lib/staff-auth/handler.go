package staffauth

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/config"
	"probation-eval-backend/lib/evaluation/workflow"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	"probation-eval-backend/models"
	authapimodels "probation-eval-backend/models/api/auth"
)

// Provider - вход по объявленной учетной записи из конфига, без пароля
type Provider interface {
	Users() []authapimodels.StaffUser
	Session(username string) (authapimodels.SessionView, error)
}

var Instance Provider

func NewHandler(staff []config.StaffUser) {
	Instance = NewInstance(staff)
}

func NewInstance(staff []config.StaffUser) Provider {
	i := &impl{users: map[string]authapimodels.StaffUser{}}
	for _, item := range staff {
		role := models.UserRole(item.Role)
		if !role.IsValid() {
			log.WithField("username", item.Username).WithField("role", item.Role).Warn("пропущен сотрудник с неизвестной ролью")
			continue
		}
		user := authapimodels.StaffUser{
			Username: strings.ToLower(strings.TrimSpace(item.Username)),
			Name:     item.Name,
			Role:     role,
		}
		if _, ok := i.users[user.Username]; ok {
			continue
		}
		i.users[user.Username] = user
		i.order = append(i.order, user.Username)
	}
	return i
}

type impl struct {
	users map[string]authapimodels.StaffUser
	order []string
}

func (i impl) Users() []authapimodels.StaffUser {
	result := make([]authapimodels.StaffUser, 0, len(i.order))
	for _, username := range i.order {
		result = append(result, i.users[username])
	}
	return result
}

func (i impl) Session(username string) (authapimodels.SessionView, error) {
	user, ok := i.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return authapimodels.SessionView{}, workflow.AuthorizationError("unknown staff user")
	}
	token, expiresAt, err := authutils.GetToken(user.Username, user.Name, user.Role)
	if err != nil {
		return authapimodels.SessionView{}, errors.Wrap(err, "ошибка формирования токена")
	}
	log.WithField("username", user.Username).WithField("role", user.Role).Info("сессия сотрудника открыта")
	return authapimodels.SessionView{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}
