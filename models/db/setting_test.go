package dbmodels

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
	"probation-eval-backend/lib/utils/testdb"
	"probation-eval-backend/models"
)

func TestSettingSchema(t *testing.T) {
	s, err := schema.Parse(&Setting{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	field := s.LookUpField("Values")
	require.NotNil(t, field)
	require.Equal(t, schema.DataType("text"), field.DataType)
}

func TestSettingRecipients(t *testing.T) {
	db := testdb.Open(t, &Setting{})
	t.Run(`список адресов сохраняется и читается`, func(t *testing.T) {
		rec := Setting{Code: models.HRRecipientsSetting, Values: Recipients{"hr@example.com", "people@example.com"}}
		require.NoError(t, db.Save(&rec).Error)

		var got Setting
		require.NoError(t, db.First(&got, "code = ?", models.HRRecipientsSetting).Error)
		require.Equal(t, Recipients{"hr@example.com", "people@example.com"}, got.Values)
	})
	t.Run(`пустой список`, func(t *testing.T) {
		rec := Setting{Code: models.ApproverRecipientsSetting, Value: "x"}
		require.NoError(t, db.Save(&rec).Error)

		var got Setting
		require.NoError(t, db.First(&got, "code = ?", models.ApproverRecipientsSetting).Error)
		require.Empty(t, got.Values)
	})
}
