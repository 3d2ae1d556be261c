package reminder

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	evaluationstore "probation-eval-backend/lib/evaluation/store"
	"probation-eval-backend/lib/notify"
	"probation-eval-backend/lib/settings"
	baseworker "probation-eval-backend/lib/utils/base-worker"
	"probation-eval-backend/lib/utils/helpers"
	initchecker "probation-eval-backend/lib/utils/init-checker"
	"probation-eval-backend/models"
)

// статус, из которого запись пришла в ожидающий статус: письмо собирается как при исходном переходе
var pendingFrom = map[models.EvaluationStatus]models.EvaluationStatus{
	models.EvaluationStatusPendingHR:       models.EvaluationStatusDraft,
	models.EvaluationStatusPendingApproval: models.EvaluationStatusPendingHR,
}

type Config struct {
	Schedule   string
	StaleAfter time.Duration
}

type impl struct {
	*baseworker.BaseImpl
	store      evaluationstore.Provider
	notifier   notify.Provider
	settings   settings.Provider
	staleAfter time.Duration
	now        func() time.Time
}

func StartWorker(ctx context.Context, cfg Config, store evaluationstore.Provider, notifier notify.Provider, settingsProvider settings.Provider) error {
	initchecker.CheckInit(
		"evaluation store", store,
		"notifier", notifier,
		"settings", settingsProvider,
	)
	i, err := newWorker(cfg, store, notifier, settingsProvider)
	if err != nil {
		return err
	}
	go i.Run(ctx, i.handle)
	return nil
}

func newWorker(cfg Config, store evaluationstore.Provider, notifier notify.Provider, settingsProvider settings.Provider) (*impl, error) {
	schedule, err := cron.ParseStandard(cfg.Schedule)
	if err != nil {
		return nil, errors.Wrapf(err, "некорректное расписание напоминаний: %v", cfg.Schedule)
	}
	return &impl{
		BaseImpl:   baseworker.NewScheduled("ReminderJob", time.Minute, schedule),
		store:      store,
		notifier:   notifier,
		settings:   settingsProvider,
		staleAfter: cfg.StaleAfter,
		now:        time.Now,
	}, nil
}

// handle - повторно отправляет письмо роли, от которой ждут подпись дольше staleAfter
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	statuses := make([]models.EvaluationStatus, 0, len(pendingFrom))
	for status := range pendingFrom {
		statuses = append(statuses, status)
	}
	list, err := i.store.ListStale(statuses, i.now().Add(-i.staleAfter))
	if err != nil {
		logger.WithError(err).Error("ошибка получения зависших оценок")
		return
	}
	if len(list) == 0 {
		return
	}
	notifySettings, err := i.settings.NotifySettings()
	if err != nil {
		logger.WithError(err).Error("ошибка получения настроек уведомлений")
		return
	}
	sent := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		status := rec.StatusSnapshot
		from, ok := pendingFrom[status]
		if !ok {
			continue
		}
		err = i.notifier.NotifyTransition(ctx, notifySettings, rec, from, status)
		if err != nil {
			logger.
				WithField("evaluation_id", rec.ID).
				WithError(err).
				Warn("напоминание не отправлено")
			continue
		}
		sent++
	}
	logger.WithField("stale", len(list)).WithField("sent", sent).Info("напоминания отправлены")
}
