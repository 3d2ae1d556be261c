package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"probation-eval-backend/config"
	"probation-eval-backend/db"
	"probation-eval-backend/fiberlog"
	accesslink "probation-eval-backend/lib/access-link"
	accesslinkstore "probation-eval-backend/lib/access-link/store"
	"probation-eval-backend/lib/action"
	"probation-eval-backend/lib/employee"
	employeestore "probation-eval-backend/lib/employee/store"
	evaluationhandler "probation-eval-backend/lib/evaluation"
	evaluationhistorystore "probation-eval-backend/lib/evaluation/history-store"
	evaluationstore "probation-eval-backend/lib/evaluation/store"
	pdfexport "probation-eval-backend/lib/export/pdf"
	xlsexport "probation-eval-backend/lib/export/xls"
	filestorage "probation-eval-backend/lib/file-storage"
	filesdbstorage "probation-eval-backend/lib/file-storage/storage"
	"probation-eval-backend/lib/notify"
	"probation-eval-backend/lib/rbac"
	"probation-eval-backend/lib/reminder"
	"probation-eval-backend/lib/settings"
	settingsstore "probation-eval-backend/lib/settings/store"
	sheetimport "probation-eval-backend/lib/sheet-import"
	"probation-eval-backend/lib/smtp"
	staffauth "probation-eval-backend/lib/staff-auth"
	connectionhub "probation-eval-backend/lib/ws/hub/connection-hub"
	"probation-eval-backend/models"
	settingsapimodels "probation-eval-backend/models/api/settings"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	rbac.NewHandler()
	staffauth.NewHandler(config.Conf.Staff)

	accesslink.NewHandler(accesslinkstore.NewInstance(db.DB), accesslink.Config{
		Secret:  config.Conf.Auth.JWTSecret,
		TTL:     time.Duration(config.Conf.Auth.AccessLinkTTLDays) * 24 * time.Hour,
		BaseURL: config.Conf.App.PublicBaseURL,
	})
	notify.NewHandler(smtp.Instance, accesslink.Instance)
	settings.NewHandler(settingsstore.NewInstance(db.DB), notifyDefaults())
	employee.NewHandler(employeestore.NewInstance(db.DB))
	evaluationhandler.NewHandler(evaluationhandler.Deps{
		Store:        evaluationstore.NewInstance(db.DB),
		HistoryStore: evaluationhistorystore.NewInstance(db.DB),
		Notifier:     notify.Instance,
		Settings:     settings.Instance,
		Links:        accesslink.Instance,
		Employees:    employee.Instance,
		Hub:          connectionhub.Instance,
		ResetSecret:  config.Conf.Auth.JWTSecret,
		ResetTTL:     time.Duration(config.Conf.Auth.ResetTTLInSec) * time.Second,
	})
	sheetimport.NewHandler(filestorage.Instance, filesdbstorage.NewInstance(db.DB), employee.Instance)
	xlsexport.NewHandler()
	pdfexport.NewHandler(config.Conf.Export.FontDir)
	action.NewHandler(action.Deps{
		Rbac:        rbac.Instance,
		Evaluations: evaluationhandler.Instance,
		Employees:   employee.Instance,
		Settings:    settings.Instance,
		Sheets:      sheetimport.Instance,
		Notifier:    notify.Instance,
	})
	initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	if !*config.Conf.Reminder.Enabled {
		log.Info("напоминания отключены")
		return
	}
	// Задача напоминаний по оценкам, ожидающим подписи
	err := reminder.StartWorker(ctx, reminder.Config{
		Schedule:   config.Conf.Reminder.Schedule,
		StaleAfter: time.Duration(config.Conf.Reminder.StaleAfterDays) * 24 * time.Hour,
	}, evaluationstore.NewInstance(db.DB), notify.Instance, settings.Instance)
	if err != nil {
		log.WithError(err).Error("ошибка запуска задачи напоминаний")
	}
}

func notifyDefaults() settingsapimodels.Settings {
	return settingsapimodels.Settings{
		RoleTitles: map[models.UserRole]string{
			models.RoleAssessor: config.Conf.Notify.AssessorTitle,
			models.RoleHR:       config.Conf.Notify.HRTitle,
			models.RoleApprover: config.Conf.Notify.ApproverTitle,
		},
		HRRecipients:         config.Conf.Notify.HRRecipients,
		ApproverRecipients:   config.Conf.Notify.ApproverRecipients,
		CompletionRecipients: config.Conf.Notify.CompletionRecipients,
		SenderName:           config.Conf.Smtp.FromName,
	}
}
