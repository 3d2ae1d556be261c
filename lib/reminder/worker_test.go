package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	evaluationstore "probation-eval-backend/lib/evaluation/store"
	"probation-eval-backend/lib/settings"
	"probation-eval-backend/lib/utils/testdb"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

type sent struct {
	id       string
	from, to models.EvaluationStatus
}

type fakeNotifier struct {
	calls  []sent
	failID string
}

func (f *fakeNotifier) NotifyTransition(ctx context.Context, settings models.NotifySettings, rec dbmodels.Evaluation, from, to models.EvaluationStatus) error {
	if rec.ID == f.failID {
		return errors.New("smtp down")
	}
	f.calls = append(f.calls, sent{id: rec.ID, from: from, to: to})
	return nil
}

func (f *fakeNotifier) SendEmail(ctx context.Context, to []string, subject, html, link string) error {
	return nil
}

// fakeSettings - в тестах нужен только NotifySettings
type fakeSettings struct {
	settings.Provider
}

func (fakeSettings) NotifySettings() (models.NotifySettings, error) {
	return models.NotifySettings{}, nil
}

func TestHandle(t *testing.T) {
	db := testdb.Open(t, &dbmodels.Evaluation{})
	store := evaluationstore.NewInstance(db)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	old := now.Add(-5 * 24 * time.Hour)
	records := []dbmodels.Evaluation{
		{BaseModel: dbmodels.BaseModel{ID: "draft"}, EmployeeName: "A", LastUpdated: old},
		{BaseModel: dbmodels.BaseModel{ID: "hr"}, EmployeeName: "B", AssessorSign: "s", LastUpdated: old},
		{BaseModel: dbmodels.BaseModel{ID: "ceo"}, EmployeeName: "C", AssessorSign: "s", HrSign: "s", LastUpdated: old},
		{BaseModel: dbmodels.BaseModel{ID: "fresh"}, EmployeeName: "D", AssessorSign: "s", LastUpdated: now.Add(-time.Hour)},
		{BaseModel: dbmodels.BaseModel{ID: "done"}, EmployeeName: "E", AssessorSign: "s", HrSign: "s", ApproverSign: "s", LastUpdated: old},
		{BaseModel: dbmodels.BaseModel{ID: "broken"}, EmployeeName: "F", AssessorSign: "s", LastUpdated: old.Add(time.Hour)},
	}
	for idx := range records {
		require.NoError(t, store.Save(&records[idx]))
	}

	notifier := &fakeNotifier{failID: "broken"}
	worker, err := newWorker(Config{Schedule: "0 9 * * 1-5", StaleAfter: 72 * time.Hour}, store, notifier, fakeSettings{})
	require.NoError(t, err)
	worker.now = func() time.Time { return now }
	worker.handle(context.Background())

	require.ElementsMatch(t, []sent{
		{id: "hr", from: models.EvaluationStatusDraft, to: models.EvaluationStatusPendingHR},
		{id: "ceo", from: models.EvaluationStatusPendingHR, to: models.EvaluationStatusPendingApproval},
	}, notifier.calls)

	t.Run(`bad schedule`, func(t *testing.T) {
		_, err := newWorker(Config{Schedule: "every day"}, store, notifier, fakeSettings{})
		require.Error(t, err)
	})
}
