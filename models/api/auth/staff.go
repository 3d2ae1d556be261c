package authapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"probation-eval-backend/models"
)

type SessionRequest struct {
	Username string `json:"username"`
}

func (r SessionRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is empty")
	}
	return nil
}

type StaffUser struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
}

type SessionView struct {
	Token     string    `json:"token"`
	User      StaffUser `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MeView struct {
	User        StaffUser                             `json:"user"`
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}
