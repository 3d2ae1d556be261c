package evaluationhistorystore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"probation-eval-backend/lib/utils/testdb"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

func TestHistoryStore(t *testing.T) {
	store := NewInstance(testdb.Open(t, &dbmodels.EvaluationHistory{}))

	id, err := store.Create(dbmodels.EvaluationHistory{
		EvaluationID: "e1",
		FromStatus:   models.EvaluationStatusDraft,
		ToStatus:     models.EvaluationStatusPendingHR,
		ActorRole:    models.RoleAssessor,
		Action:       models.HistoryActionSign,
		Changes: dbmodels.EntityChanges{
			Description: "signed",
			Data:        []dbmodels.FieldChanges{{Field: "status", OldValue: "draft", NewValue: "pending_hr"}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := store.List("e1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "signed", list[0].Changes.Description)
	require.Equal(t, "pending_hr", list[0].Changes.Data[0].NewValue)

	require.NoError(t, store.DeleteByEvaluation("e1"))
	list, err = store.List("e1")
	require.NoError(t, err)
	require.Empty(t, list)
}
