package staffauth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"probation-eval-backend/config"
	"probation-eval-backend/lib/evaluation/workflow"
	authutils "probation-eval-backend/lib/utils/auth-utils"
	"probation-eval-backend/models"
)

func TestSession(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "staff-secret"
	config.Conf.Auth.SessionTTLInSec = 60
	t.Cleanup(func() { config.Conf = nil })

	handler := NewInstance([]config.StaffUser{
		{Username: "Admin", Name: "System Admin", Role: "admin"},
		{Username: "hr", Name: "HR Manager", Role: "hr"},
		{Username: "ghost", Name: "Unknown", Role: "janitor"},
		{Username: "admin", Name: "Duplicate", Role: "hr"},
	})

	users := handler.Users()
	require.Len(t, users, 2)
	require.Equal(t, "admin", users[0].Username)
	require.Equal(t, models.RoleAdmin, users[0].Role)

	view, err := handler.Session(" HR ")
	require.NoError(t, err)
	require.Equal(t, models.RoleHR, view.User.Role)
	claims, err := authutils.ParseClaims("staff-secret", view.Token, authutils.TokenTypeSession)
	require.NoError(t, err)
	require.Equal(t, "hr", claims["sub"])
	require.Equal(t, "hr", claims["role"])

	_, err = handler.Session("ghost")
	require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
}
