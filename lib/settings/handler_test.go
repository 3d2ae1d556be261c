package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
	settingsstore "probation-eval-backend/lib/settings/store"
	"probation-eval-backend/lib/utils/testdb"
	"probation-eval-backend/models"
	settingsapimodels "probation-eval-backend/models/api/settings"
	dbmodels "probation-eval-backend/models/db"
)

func TestSettings(t *testing.T) {
	db := testdb.Open(t, &dbmodels.Setting{})
	handler := NewInstance(settingsstore.NewInstance(db), settingsapimodels.Settings{
		RoleTitles:   map[models.UserRole]string{models.RoleApprover: "CEO", models.RoleHR: "HR Manager"},
		HRRecipients: []string{"hr@example.com"},
	})

	t.Run(`defaults`, func(t *testing.T) {
		s, err := handler.Get()
		require.NoError(t, err)
		require.Equal(t, []string{"hr@example.com"}, s.HRRecipients)
		require.Equal(t, "CEO", s.RoleTitles[models.RoleApprover])
	})
	t.Run(`save overrides defaults`, func(t *testing.T) {
		s, err := handler.Save(settingsapimodels.Settings{
			RoleTitles:         map[models.UserRole]string{models.RoleApprover: "Managing Director"},
			HRRecipients:       []string{"people@example.com", "hr2@example.com"},
			ApproverRecipients: []string{"md@example.com"},
			SenderName:         "CMT HR",
		})
		require.NoError(t, err)
		require.Equal(t, []string{"people@example.com", "hr2@example.com"}, s.HRRecipients)
		require.Equal(t, "Managing Director", s.RoleTitles[models.RoleApprover])
		require.Equal(t, "HR Manager", s.RoleTitles[models.RoleHR])

		s, err = handler.Save(settingsapimodels.Settings{
			RoleTitles:   map[models.UserRole]string{models.RoleApprover: "Director"},
			HRRecipients: []string{"people@example.com"},
		})
		require.NoError(t, err)
		require.Equal(t, "Director", s.RoleTitles[models.RoleApprover])
		require.Equal(t, []string{"people@example.com"}, s.HRRecipients)

		ns, err := handler.NotifySettings()
		require.NoError(t, err)
		require.Equal(t, "Director", ns.RoleTitle(models.RoleApprover))
		require.Equal(t, "Assessor", ns.RoleTitle(models.RoleAssessor))
	})
}
