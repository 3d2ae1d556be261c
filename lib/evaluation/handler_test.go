package evaluationhandler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	accesslink "probation-eval-backend/lib/access-link"
	accesslinkstore "probation-eval-backend/lib/access-link/store"
	"probation-eval-backend/lib/employee"
	employeestore "probation-eval-backend/lib/employee/store"
	"probation-eval-backend/lib/evaluation/form"
	evaluationhistorystore "probation-eval-backend/lib/evaluation/history-store"
	"probation-eval-backend/lib/evaluation/score"
	evaluationstore "probation-eval-backend/lib/evaluation/store"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/lib/settings"
	"probation-eval-backend/lib/utils/lock"
	"probation-eval-backend/lib/utils/testdb"
	connectionhub "probation-eval-backend/lib/ws/hub/connection-hub"
	"probation-eval-backend/models"
	employeeapimodels "probation-eval-backend/models/api/employee"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	dbmodels "probation-eval-backend/models/db"
)

type transition struct {
	from, to models.EvaluationStatus
}

type fakeNotifier struct {
	calls []transition
	err   error
}

func (f *fakeNotifier) NotifyTransition(ctx context.Context, settings models.NotifySettings, rec dbmodels.Evaluation, from, to models.EvaluationStatus) error {
	f.calls = append(f.calls, transition{from: from, to: to})
	return f.err
}

func (f *fakeNotifier) SendEmail(ctx context.Context, to []string, subject, html, link string) error {
	return nil
}

// fakeSettings - в тестах нужен только NotifySettings
type fakeSettings struct {
	settings.Provider
}

func (fakeSettings) NotifySettings() (models.NotifySettings, error) {
	return models.NotifySettings{HRRecipients: []string{"hr@example.com"}}, nil
}

// countingStore считает обращения на запись и может имитировать сбой
type countingStore struct {
	evaluationstore.Provider
	saves int
	err   error
}

func (c *countingStore) Save(rec *dbmodels.Evaluation) error {
	c.saves++
	if c.err != nil {
		return c.err
	}
	return c.Provider.Save(rec)
}

type env struct {
	handler   Provider
	store     *countingStore
	notifier  *fakeNotifier
	links     accesslink.Provider
	history   evaluationhistorystore.Provider
	employees employee.Provider
}

func newEnv(t *testing.T) *env {
	db := testdb.Open(t, &dbmodels.Evaluation{}, &dbmodels.EvaluationHistory{}, &dbmodels.AccessLink{}, &dbmodels.Employee{})
	e := &env{
		store:    &countingStore{Provider: evaluationstore.NewInstance(db)},
		notifier: &fakeNotifier{},
		links: accesslink.NewInstance(accesslinkstore.NewInstance(db), accesslink.Config{
			Secret: "secret",
			TTL:    time.Hour,
		}),
		history:   evaluationhistorystore.NewInstance(db),
		employees: employee.NewInstance(employeestore.NewInstance(db)),
	}
	e.handler = NewInstance(Deps{
		Store:        e.store,
		HistoryStore: e.history,
		Notifier:     e.notifier,
		Settings:     fakeSettings{},
		Links:        e.links,
		Employees:    e.employees,
		Hub:          connectionhub.NewInstance(),
		ResetSecret:  "reset-secret",
		ResetTTL:     time.Minute,
	})
	return e
}

func staff(role models.UserRole) form.Session {
	return form.Session{Role: role, UserName: string(role)}
}

func str(v string) *string {
	return &v
}

func allRatings(rating int) map[int]int {
	ratings := map[int]int{}
	for _, topic := range score.Topics {
		ratings[topic.ID] = rating
	}
	return ratings
}

func (e *env) guest(t *testing.T, id string, role models.UserRole) form.Session {
	view, err := e.links.Issue(id, role)
	require.NoError(t, err)
	claims, err := e.links.Resolve(view.Token)
	require.NoError(t, err)
	return form.Session{Role: claims.Role, IsGuest: true, EvaluationID: claims.EvaluationID, LinkID: claims.LinkID}
}

func TestWorkflowScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{
		EmployeeName: str("Somchai"),
		EmployeeID:   str("E001"),
		Ratings:      allRatings(5),
	})
	require.NoError(t, err)
	id := res.Evaluation.ID
	require.NotEmpty(t, id)
	require.Equal(t, models.EvaluationStatusDraft, res.Evaluation.Status)
	require.Equal(t, 71.43, res.Evaluation.TotalScore)
	require.Equal(t, 5.0, res.Evaluation.MeanScore)
	require.Empty(t, e.notifier.calls)

	res, err = e.handler.Sign(ctx, staff(models.RoleAssessor), id, models.RoleAssessor, evaluationapimodels.SignRequest{Signature: "data:image/png;base64,AAA"})
	require.NoError(t, err)
	require.Equal(t, id, res.Evaluation.ID)
	require.Equal(t, models.EvaluationStatusPendingHR, res.Evaluation.Status)
	require.Equal(t, []transition{{models.EvaluationStatusDraft, models.EvaluationStatusPendingHR}}, e.notifier.calls)

	_, err = e.handler.Sign(ctx, staff(models.RoleHR), id, models.RoleApprover, evaluationapimodels.SignRequest{Signature: "x"})
	require.True(t, workflow.IsKind(err, workflow.KindAuthorization))

	hrGuest := e.guest(t, id, models.RoleHR)
	res, err = e.handler.Sign(ctx, hrGuest, id, models.RoleHR, evaluationapimodels.SignRequest{
		Signature: "hr-sign",
		Data:      &evaluationapimodels.EvaluationData{HrOpinion: str("ok"), EmployeeName: str("Hacked")},
	})
	require.NoError(t, err)
	require.Equal(t, models.EvaluationStatusPendingApproval, res.Evaluation.Status)
	require.Equal(t, "ok", res.Evaluation.HrOpinion)
	require.Equal(t, "Somchai", res.Evaluation.EmployeeName)
	require.Equal(t, []string{"employee_name"}, res.IgnoredFields)
	require.True(t, res.SessionClosed)
	require.True(t, workflow.IsKind(e.links.Consume(hrGuest.LinkID), workflow.KindAuthorization))

	res, err = e.handler.Sign(ctx, staff(models.RoleApprover), id, models.RoleApprover, evaluationapimodels.SignRequest{Signature: "ceo"})
	require.NoError(t, err)
	require.Equal(t, models.EvaluationStatusCompleted, res.Evaluation.Status)
	require.Len(t, e.notifier.calls, 3)

	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleAssessor, models.RoleHR, models.RoleApprover} {
		_, err = e.handler.Edit(ctx, staff(role), id, evaluationapimodels.EvaluationData{
			EmployeeName:    str("x"),
			HrOpinion:       str("x"),
			ApproverOpinion: str("x"),
		})
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization), role)
	}

	history, err := e.handler.History(staff(models.RoleAdmin), id)
	require.NoError(t, err)
	require.Len(t, history, 4)
	require.Equal(t, models.HistoryActionSave, history[0].Action)
	require.Equal(t, models.HistoryActionSign, history[1].Action)

	stats, err := e.handler.Stats()
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Completed)
	require.Equal(t, int64(1), stats.Total)
}

func TestSaveErrors(t *testing.T) {
	ctx := context.Background()
	t.Run(`empty employee name`, func(t *testing.T) {
		e := newEnv(t)
		_, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{Position: str("Clerk")})
		require.True(t, workflow.IsKind(err, workflow.KindValidation))
		require.Equal(t, 0, e.store.saves)
	})
	t.Run(`store failure keeps form`, func(t *testing.T) {
		e := newEnv(t)
		f, err := e.handler.Load(staff(models.RoleAssessor), "")
		require.NoError(t, err)
		require.NoError(t, f.ApplyField(form.FieldEmployeeName, "Somchai"))
		e.store.err = errors.New("connection refused")
		_, err = e.handler.Save(ctx, f)
		require.True(t, workflow.IsKind(err, workflow.KindTransport))
		require.False(t, f.Busy())
		require.Equal(t, "Somchai", f.Record().EmployeeName)

		e.store.err = nil
		res, err := e.handler.Save(ctx, f)
		require.NoError(t, err)
		require.Equal(t, f.Record().ID, res.Evaluation.ID)
	})
	t.Run(`notification failure is a warning`, func(t *testing.T) {
		e := newEnv(t)
		e.notifier.err = errors.New("smtp down")
		res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
		require.NoError(t, err)
		res, err = e.handler.Sign(ctx, staff(models.RoleAssessor), res.Evaluation.ID, models.RoleAssessor, evaluationapimodels.SignRequest{Signature: "s"})
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		rec, err := e.handler.GetByID(staff(models.RoleAdmin), res.Evaluation.ID)
		require.NoError(t, err)
		require.Equal(t, models.EvaluationStatusPendingHR, rec.Status())
	})
	t.Run(`concurrent save is busy`, func(t *testing.T) {
		e := newEnv(t)
		res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
		require.NoError(t, err)
		id := res.Evaluation.ID
		require.True(t, lock.TryLock(lockKey(id)))
		_, err = e.handler.Edit(ctx, staff(models.RoleAssessor), id, evaluationapimodels.EvaluationData{Position: str("B")})
		lock.Unlock(lockKey(id))
		require.True(t, workflow.IsKind(err, workflow.KindBusy))
	})
	t.Run(`not found`, func(t *testing.T) {
		e := newEnv(t)
		_, err := e.handler.GetByID(staff(models.RoleAdmin), "missing")
		require.True(t, workflow.IsKind(err, workflow.KindNotFound))
	})
}

func TestGuest(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
	require.NoError(t, err)
	id := res.Evaluation.ID

	t.Run(`hr link on draft`, func(t *testing.T) {
		err := e.handler.CheckSign(e.guest(t, id, models.RoleHR), id, models.RoleHR)
		require.True(t, workflow.IsKind(err, workflow.KindPhaseGuard))
		require.Equal(t, "assessor must act first", workflow.HumanMessage(err))
	})
	t.Run(`other record`, func(t *testing.T) {
		_, err := e.handler.GetByID(e.guest(t, id, models.RoleHR), "other")
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
	})
	t.Run(`guest cannot create or delete`, func(t *testing.T) {
		session := e.guest(t, id, models.RoleAssessor)
		_, err := e.handler.Load(session, "")
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
		require.True(t, workflow.IsKind(e.handler.Delete(ctx, session, id), workflow.KindAuthorization))
	})
	t.Run(`guest save consumes link`, func(t *testing.T) {
		session := e.guest(t, id, models.RoleAssessor)
		res, err := e.handler.Edit(ctx, session, id, evaluationapimodels.EvaluationData{Position: str("Clerk")})
		require.NoError(t, err)
		require.True(t, res.SessionClosed)
		require.Empty(t, res.Warnings)
		err = e.links.Consume(session.LinkID)
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
	require.NoError(t, err)
	id := res.Evaluation.ID
	_, err = e.handler.RequestReset(staff(models.RoleAdmin), id)
	require.True(t, workflow.IsKind(err, workflow.KindPhaseGuard))

	_, err = e.handler.Sign(ctx, staff(models.RoleAssessor), id, models.RoleAssessor, evaluationapimodels.SignRequest{Signature: "s"})
	require.NoError(t, err)
	calls := len(e.notifier.calls)

	_, err = e.handler.RequestReset(staff(models.RoleHR), id)
	require.True(t, workflow.IsKind(err, workflow.KindAuthorization))

	view, err := e.handler.RequestReset(staff(models.RoleAdmin), id)
	require.NoError(t, err)
	require.NotEmpty(t, view.Token)

	_, err = e.handler.ConfirmReset(ctx, staff(models.RoleAdmin), id, "garbage")
	require.True(t, workflow.IsKind(err, workflow.KindValidation))
	_, err = e.handler.ConfirmReset(ctx, staff(models.RoleAssessor), id, view.Token)
	require.True(t, workflow.IsKind(err, workflow.KindAuthorization))

	res, err = e.handler.ConfirmReset(ctx, staff(models.RoleAdmin), id, view.Token)
	require.NoError(t, err)
	require.Equal(t, models.EvaluationStatusDraft, res.Evaluation.Status)
	require.Equal(t, evaluationapimodels.Signatures{}, res.Evaluation.Signatures)
	require.Len(t, e.notifier.calls, calls)

	history, err := e.history.List(id)
	require.NoError(t, err)
	require.Equal(t, models.HistoryActionReset, history[len(history)-1].Action)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
	require.NoError(t, err)
	require.NoError(t, e.handler.Delete(ctx, staff(models.RoleAdmin), res.Evaluation.ID))
	_, err = e.handler.GetByID(staff(models.RoleAdmin), res.Evaluation.ID)
	require.True(t, workflow.IsKind(err, workflow.KindNotFound))
	list, err := e.handler.List(evaluationapimodels.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSelectEmployee(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.employees.Sync(employeeapimodels.EmployeeData{
		ID:         "E042",
		Name:       "Malee",
		Position:   "Accountant",
		Department: "Finance",
		StartDate:  "2024-01-15",
	}))

	t.Run("fields are copied from the directory", func(t *testing.T) {
		res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{
			DirectoryID: str("E042"),
			Position:    str("Senior Accountant"),
		})
		require.NoError(t, err)
		require.Equal(t, "Malee", res.Evaluation.EmployeeName)
		require.Equal(t, "E042", res.Evaluation.EmployeeID)
		require.Equal(t, "Finance", res.Evaluation.Department)
		require.Equal(t, "Senior Accountant", res.Evaluation.Position)
	})
	t.Run("unknown employee", func(t *testing.T) {
		_, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{
			DirectoryID: str("missing"),
		})
		require.True(t, workflow.IsKind(err, workflow.KindNotFound))
	})
}

func TestIssueLink(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
	require.NoError(t, err)
	id := res.Evaluation.ID

	t.Run(`link for another role is rejected`, func(t *testing.T) {
		for _, tc := range []struct {
			issuer, role models.UserRole
		}{
			{models.RoleHR, models.RoleAssessor},
			{models.RoleHR, models.RoleApprover},
			{models.RoleApprover, models.RoleAssessor},
			{models.RoleAssessor, models.RoleHR},
		} {
			_, err := e.handler.IssueLink(staff(tc.issuer), id, tc.role)
			require.True(t, workflow.IsKind(err, workflow.KindAuthorization), "%v -> %v", tc.issuer, tc.role)
		}
		rec, err := e.handler.GetByID(staff(models.RoleAdmin), id)
		require.NoError(t, err)
		require.Equal(t, models.EvaluationStatusDraft, rec.Status())
	})
	t.Run(`own role`, func(t *testing.T) {
		view, err := e.handler.IssueLink(staff(models.RoleHR), id, models.RoleHR)
		require.NoError(t, err)
		claims, err := e.links.Resolve(view.Token)
		require.NoError(t, err)
		require.Equal(t, models.RoleHR, claims.Role)
		require.Equal(t, id, claims.EvaluationID)
	})
	t.Run(`admin issues any role`, func(t *testing.T) {
		for _, role := range []models.UserRole{models.RoleAssessor, models.RoleHR, models.RoleApprover} {
			_, err := e.handler.IssueLink(staff(models.RoleAdmin), id, role)
			require.NoError(t, err, role)
		}
	})
	t.Run(`guest cannot issue`, func(t *testing.T) {
		_, err := e.handler.IssueLink(e.guest(t, id, models.RoleHR), id, models.RoleHR)
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
	})
	t.Run(`unknown record`, func(t *testing.T) {
		_, err := e.handler.IssueLink(staff(models.RoleAdmin), "missing", models.RoleHR)
		require.True(t, workflow.IsKind(err, workflow.KindNotFound))
	})
}

// brokenConsume - ссылка не гасится, хотя сохранение прошло
type brokenConsume struct {
	accesslink.Provider
}

func (brokenConsume) Consume(linkID string) error {
	return errors.New("connection reset")
}

func TestGuestConsumeFailure(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.handler.Edit(ctx, staff(models.RoleAssessor), "", evaluationapimodels.EvaluationData{EmployeeName: str("A")})
	require.NoError(t, err)
	id := res.Evaluation.ID

	h := NewInstance(Deps{
		Store:        e.store,
		HistoryStore: e.history,
		Notifier:     e.notifier,
		Settings:     fakeSettings{},
		Links:        brokenConsume{Provider: e.links},
		Employees:    e.employees,
		Hub:          connectionhub.NewInstance(),
		ResetSecret:  "reset-secret",
		ResetTTL:     time.Minute,
	})
	session := e.guest(t, id, models.RoleAssessor)
	res, err = h.Edit(ctx, session, id, evaluationapimodels.EvaluationData{Position: str("Clerk")})
	require.NoError(t, err)
	require.True(t, res.SessionClosed)
	require.Equal(t, []string{"access link was not invalidated"}, res.Warnings)

	rec, err := e.handler.GetByID(staff(models.RoleAdmin), id)
	require.NoError(t, err)
	require.Equal(t, "Clerk", rec.Position)

	// ссылка осталась действующей, гасится только сейчас
	require.NoError(t, e.links.Consume(session.LinkID))
}
