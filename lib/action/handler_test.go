package action

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"probation-eval-backend/lib/evaluation/form"
	"probation-eval-backend/lib/evaluation/workflow"
	"probation-eval-backend/lib/notify"
	"probation-eval-backend/lib/rbac"
	"probation-eval-backend/lib/settings"
	"probation-eval-backend/models"
	actionapimodels "probation-eval-backend/models/api/action"
	settingsapimodels "probation-eval-backend/models/api/settings"
)

type fakeSettings struct {
	settings.Provider
	saved *settingsapimodels.Settings
}

func (f *fakeSettings) Get() (settingsapimodels.Settings, error) {
	return settingsapimodels.Settings{SenderName: "HR"}, nil
}

func (f *fakeSettings) Save(data settingsapimodels.Settings) (settingsapimodels.Settings, error) {
	f.saved = &data
	return data, nil
}

type fakeNotifier struct {
	notify.Provider
	sent []string
	err  error
}

func (f *fakeNotifier) SendEmail(_ context.Context, to []string, _, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to...)
	return nil
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	admin := form.Session{Role: models.RoleAdmin, UserName: "admin"}
	hr := form.Session{Role: models.RoleHR, UserName: "hr"}

	newHandler := func() (Provider, *fakeSettings, *fakeNotifier) {
		s := &fakeSettings{}
		n := &fakeNotifier{}
		return NewInstance(Deps{Rbac: rbac.NewInstance(), Settings: s, Notifier: n}), s, n
	}

	t.Run("unknown action", func(t *testing.T) {
		h, _, _ := newHandler()
		_, err := h.Exec(ctx, admin, actionapimodels.Request{Action: "dropTables"})
		require.True(t, workflow.IsKind(err, workflow.KindValidation))
	})
	t.Run("missing params", func(t *testing.T) {
		h, _, _ := newHandler()
		_, err := h.Exec(ctx, admin, actionapimodels.Request{Action: actionapimodels.DeleteEvaluation})
		require.True(t, workflow.IsKind(err, workflow.KindValidation))
	})
	t.Run("get settings", func(t *testing.T) {
		h, _, _ := newHandler()
		res, err := h.Exec(ctx, hr, actionapimodels.Request{Action: actionapimodels.GetSettings})
		require.NoError(t, err)
		require.Equal(t, "HR", res.(settingsapimodels.Settings).SenderName)
	})
	t.Run("save settings is admin only", func(t *testing.T) {
		h, s, _ := newHandler()
		req := actionapimodels.Request{
			Action:   actionapimodels.SaveSettings,
			Settings: &settingsapimodels.Settings{SenderName: "People team"},
		}
		_, err := h.Exec(ctx, hr, req)
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
		require.Nil(t, s.saved)

		_, err = h.Exec(ctx, admin, req)
		require.NoError(t, err)
		require.Equal(t, "People team", s.saved.SenderName)
	})
	t.Run("delete evaluation is admin only", func(t *testing.T) {
		h, _, _ := newHandler()
		_, err := h.Exec(ctx, form.Session{Role: models.RoleAssessor, UserName: "a"},
			actionapimodels.Request{Action: actionapimodels.DeleteEvaluation, ID: "rec-1"})
		require.True(t, workflow.IsKind(err, workflow.KindAuthorization))
	})
	t.Run("send email", func(t *testing.T) {
		h, _, n := newHandler()
		req := actionapimodels.Request{
			Action: actionapimodels.SendEmail,
			Email:  &actionapimodels.EmailRequest{To: []string{"hr@example.com"}, Subject: "Reminder"},
		}
		_, err := h.Exec(ctx, admin, req)
		require.NoError(t, err)
		require.Equal(t, []string{"hr@example.com"}, n.sent)

		n.err = errors.New("connection refused")
		_, err = h.Exec(ctx, admin, req)
		require.True(t, workflow.IsKind(err, workflow.KindTransport))
	})
}

func TestRouteOf(t *testing.T) {
	require.Equal(t, route{"POST", "/api/v1/evaluation"}, routeOf(actionapimodels.Request{Action: actionapimodels.SaveEvaluation}))
	require.Equal(t, route{"PUT", "/api/v1/evaluation/42"}, routeOf(actionapimodels.Request{Action: actionapimodels.SaveEvaluation, ID: "42"}))
	require.Equal(t, route{}, routeOf(actionapimodels.Request{Action: "other"}))
}
