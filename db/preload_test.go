package db

import (
	"testing"

	"github.com/stretchr/testify/require"
	settingsstore "probation-eval-backend/lib/settings/store"
	"probation-eval-backend/lib/utils/testdb"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

func TestInitPreload(t *testing.T) {
	DB = testdb.Open(t, &dbmodels.Setting{})
	t.Cleanup(func() {
		DB = nil
	})
	defaults := models.NotifySettings{
		RoleTitles:   map[models.UserRole]string{models.RoleApprover: "CEO"},
		HRRecipients: []string{"hr@example.com"},
		SenderName:   "HR",
	}
	store := settingsstore.NewInstance(DB)

	InitPreload(defaults)
	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 7)
	byCode := map[models.SettingCode]dbmodels.Setting{}
	for _, rec := range list {
		byCode[rec.Code] = rec
	}
	require.Equal(t, dbmodels.Recipients{"hr@example.com"}, byCode[models.HRRecipientsSetting].Values)
	require.Equal(t, "CEO", byCode[models.RoleTitleApproverSetting].Value)

	t.Run("existing settings are kept", func(t *testing.T) {
		require.NoError(t, store.Upsert([]dbmodels.Setting{{Code: models.SenderNameSetting, Value: "People team"}}))
		InitPreload(models.NotifySettings{SenderName: "Other"})
		list, err := store.List()
		require.NoError(t, err)
		for _, rec := range list {
			if rec.Code == models.SenderNameSetting {
				require.Equal(t, "People team", rec.Value)
			}
		}
	})
}
