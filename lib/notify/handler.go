package notify

import (
	"context"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	accesslink "probation-eval-backend/lib/access-link"
	"probation-eval-backend/lib/evaluation/score"
	"probation-eval-backend/lib/smtp"
	"probation-eval-backend/models"
	dbmodels "probation-eval-backend/models/db"
)

type Provider interface {
	NotifyTransition(ctx context.Context, settings models.NotifySettings, rec dbmodels.Evaluation, from, to models.EvaluationStatus) error
	SendEmail(ctx context.Context, to []string, subject, html, link string) error
}

var Instance Provider

func NewHandler(sender smtp.Provider, links accesslink.Provider) {
	Instance = NewInstance(sender, links)
}

func NewInstance(sender smtp.Provider, links accesslink.Provider) Provider {
	return &impl{
		sender: sender,
		links:  links,
	}
}

type impl struct {
	sender smtp.Provider
	links  accesslink.Provider
}

const defaultBrand = "Probation Evaluation"

type message struct {
	recipients []string
	subject    string
	heading    string
	intro      string
	linkRole   models.UserRole
}

// buildMessage - кому и что отправить при переходе в статус to
func buildMessage(settings models.NotifySettings, rec dbmodels.Evaluation, to models.EvaluationStatus) (message, bool) {
	switch to {
	case models.EvaluationStatusPendingHR:
		return message{
			recipients: settings.HRRecipients,
			subject:    fmt.Sprintf("[Action Required] Please sign the probation evaluation of %s", rec.EmployeeName),
			heading:    fmt.Sprintf("Dear %s,", settings.RoleTitle(models.RoleHR)),
			intro:      "Please review and sign the probation evaluation of",
			linkRole:   models.RoleHR,
		}, true
	case models.EvaluationStatusPendingApproval:
		return message{
			recipients: settings.ApproverRecipients,
			subject:    fmt.Sprintf("[Action Required] Please approve the probation evaluation of %s", rec.EmployeeName),
			heading:    fmt.Sprintf("Dear %s,", settings.RoleTitle(models.RoleApprover)),
			intro:      fmt.Sprintf("%s has reviewed the evaluation. Please consider approving the probation evaluation of", settings.RoleTitle(models.RoleHR)),
			linkRole:   models.RoleApprover,
		}, true
	case models.EvaluationStatusCompleted:
		return message{
			recipients: settings.CompletionRecipients,
			subject:    fmt.Sprintf("[Completed] Probation evaluation of %s is complete", rec.EmployeeName),
			heading:    "Evaluation completed",
			intro:      "The evaluation has been completed for",
		}, true
	}
	return message{}, false
}

func (i impl) NotifyTransition(ctx context.Context, settings models.NotifySettings, rec dbmodels.Evaluation, from, to models.EvaluationStatus) error {
	logger := log.
		WithField("evaluation_id", rec.ID).
		WithField("from_status", from).
		WithField("to_status", to)
	if from == to {
		return nil
	}
	msg, ok := buildMessage(settings, rec, to)
	if !ok {
		logger.Debug("переход без уведомления")
		return nil
	}
	if len(msg.recipients) == 0 {
		return errors.Errorf("no notification recipients configured for status %v", to.ToHuman())
	}
	// отмененный запрос или остановка воркера: ссылку не выдаем, письмо не шлем
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "notification cancelled")
	}
	link := ""
	if msg.linkRole != "" {
		view, err := i.links.Issue(rec.ID, msg.linkRole)
		if err != nil {
			return errors.Wrap(err, "failed to issue access link")
		}
		link = view.URL
	}
	res := score.Calculate(rec.Ratings)
	content, err := render(body, bodyData{
		Intro:        msg.intro,
		EmployeeName: rec.EmployeeName,
		EmployeeID:   rec.EmployeeID,
		Position:     rec.Position,
		Department:   rec.Department,
		Total:        score.Round2(res.Total),
		Status:       to.ToHuman(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to render notification")
	}
	html, err := renderShell(settings.SenderName, msg.heading, content, link)
	if err != nil {
		return err
	}
	err = i.sender.SendHTML(msg.recipients, msg.subject, html)
	if err != nil {
		return errors.Wrap(err, "failed to send notification")
	}
	logger.Info("уведомление отправлено")
	return nil
}

func (i impl) SendEmail(ctx context.Context, to []string, subject, html, link string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "email cancelled")
	}
	wrapped, err := renderShell("", subject, html, link)
	if err != nil {
		return err
	}
	return i.sender.SendHTML(to, subject, wrapped)
}

func renderShell(brand, heading, content, link string) (string, error) {
	if brand == "" {
		brand = defaultBrand
	}
	html, err := render(shell, shellData{
		Brand:      brand,
		Heading:    heading,
		Body:       template.HTML(content),
		Link:       link,
		ButtonText: "Click here to continue",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render email")
	}
	return html, nil
}
