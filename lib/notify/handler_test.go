package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	accesslink "probation-eval-backend/lib/access-link"
	"probation-eval-backend/models"
	evaluationapimodels "probation-eval-backend/models/api/evaluation"
	dbmodels "probation-eval-backend/models/db"
)

type sentMail struct {
	to      []string
	subject string
	html    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) SendHTML(to []string, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

func (f *fakeSender) Configured() bool {
	return true
}

type fakeLinks struct {
	issued []models.UserRole
}

func (f *fakeLinks) Issue(evaluationID string, role models.UserRole) (evaluationapimodels.AccessLinkView, error) {
	f.issued = append(f.issued, role)
	return evaluationapimodels.AccessLinkView{
		Token:     "tkn",
		URL:       "http://front/evaluation?token=" + string(role),
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeLinks) Resolve(token string) (*accesslink.Claims, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLinks) Consume(linkID string) error {
	return nil
}

var testSettings = models.NotifySettings{
	RoleTitles:           map[models.UserRole]string{models.RoleApprover: "CEO"},
	HRRecipients:         []string{"hr@example.com"},
	ApproverRecipients:   []string{"ceo@example.com"},
	CompletionRecipients: []string{"all@example.com"},
}

func TestNotifyTransition(t *testing.T) {
	rec := dbmodels.Evaluation{
		BaseModel:    dbmodels.BaseModel{ID: "e1"},
		EmployeeName: "Somchai <b>",
		Ratings:      dbmodels.Ratings{1: 7},
	}
	t.Run(`pending hr goes to hr with link`, func(t *testing.T) {
		sender, links := &fakeSender{}, &fakeLinks{}
		n := NewInstance(sender, links)
		require.NoError(t, n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusDraft, models.EvaluationStatusPendingHR))
		require.Len(t, sender.sent, 1)
		require.Equal(t, []string{"hr@example.com"}, sender.sent[0].to)
		require.True(t, strings.HasPrefix(sender.sent[0].subject, "[Action Required]"))
		require.Contains(t, sender.sent[0].html, "http://front/evaluation?token=hr")
		require.Contains(t, sender.sent[0].html, "Somchai &lt;b&gt;")
		require.Equal(t, []models.UserRole{models.RoleHR}, links.issued)
	})
	t.Run(`pending approval goes to approver`, func(t *testing.T) {
		sender, links := &fakeSender{}, &fakeLinks{}
		n := NewInstance(sender, links)
		require.NoError(t, n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusPendingHR, models.EvaluationStatusPendingApproval))
		require.Equal(t, []string{"ceo@example.com"}, sender.sent[0].to)
		require.Contains(t, sender.sent[0].html, "Dear CEO,")
		require.Equal(t, []models.UserRole{models.RoleApprover}, links.issued)
	})
	t.Run(`completed has no link`, func(t *testing.T) {
		sender, links := &fakeSender{}, &fakeLinks{}
		n := NewInstance(sender, links)
		require.NoError(t, n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusPendingApproval, models.EvaluationStatusCompleted))
		require.True(t, strings.HasPrefix(sender.sent[0].subject, "[Completed]"))
		require.Equal(t, []string{"all@example.com"}, sender.sent[0].to)
		require.Empty(t, links.issued)
		require.NotContains(t, sender.sent[0].html, "Click here to continue")
	})
	t.Run(`draft and same status send nothing`, func(t *testing.T) {
		sender, links := &fakeSender{}, &fakeLinks{}
		n := NewInstance(sender, links)
		require.NoError(t, n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusCompleted, models.EvaluationStatusDraft))
		require.NoError(t, n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusPendingHR, models.EvaluationStatusPendingHR))
		require.Empty(t, sender.sent)
	})
	t.Run(`no recipients`, func(t *testing.T) {
		n := NewInstance(&fakeSender{}, &fakeLinks{})
		err := n.NotifyTransition(context.Background(), models.NotifySettings{}, rec, models.EvaluationStatusDraft, models.EvaluationStatusPendingHR)
		require.Error(t, err)
	})
	t.Run(`cancelled context`, func(t *testing.T) {
		sender, links := &fakeSender{}, &fakeLinks{}
		n := NewInstance(sender, links)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := n.NotifyTransition(ctx, testSettings, rec, models.EvaluationStatusDraft, models.EvaluationStatusPendingHR)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, links.issued)
		require.Empty(t, sender.sent)
	})
	t.Run(`send failure`, func(t *testing.T) {
		n := NewInstance(&fakeSender{err: errors.New("down")}, &fakeLinks{})
		err := n.NotifyTransition(context.Background(), testSettings, rec, models.EvaluationStatusDraft, models.EvaluationStatusPendingHR)
		require.Error(t, err)
	})
}

func TestSendEmail(t *testing.T) {
	sender := &fakeSender{}
	n := NewInstance(sender, &fakeLinks{})
	require.NoError(t, n.SendEmail(context.Background(), []string{"a@example.com"}, "Hello", "<p>body</p>", "http://x"))
	require.Contains(t, sender.sent[0].html, "<p>body</p>")
	require.Contains(t, sender.sent[0].html, "http://x")
}

func TestSendEmailCancelled(t *testing.T) {
	sender := &fakeSender{}
	n := NewInstance(sender, &fakeLinks{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.SendEmail(ctx, []string{"a@example.com"}, "Hello", "<p>body</p>", "")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, sender.sent)
}
