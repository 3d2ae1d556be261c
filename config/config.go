package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type StaffUser struct {
	Username string `yaml:"username"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Email    string `yaml:"email"`
}

type Configuration struct {
	App struct {
		ListenAddr    string `default:"" env:"APP_HOST"`
		Port          int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMb   int    `default:"20" env:"APP_BODY_LIMIT_MB"`
		PublicBaseURL string `default:"http://localhost:3000" env:"APP_PUBLIC_BASE_URL"` // адрес фронта для ссылок в письмах
		DevMode       *bool  `default:"false" env:"APP_DEV_MODE"`
	}
	Database struct {
		Driver         string `default:"postgres" env:"DB_DRIVER"` // postgres | sqlite
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"probation-eval" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		SqlitePath     string `default:"probation-eval.db" env:"DB_SQLITE_PATH"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User        string `default:"" env:"SMTP_USER"`
		Password    string `default:"" env:"SMTP_PASSWORD"`
		Host        string `default:"" env:"SMTP_HOST"`
		Port        string `default:"" env:"SMTP_PORT"`
		TLSEnabled  *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		FromAddress string `default:"" env:"SMTP_FROM_ADDRESS"`
		FromName    string `default:"Probation Evaluation" env:"SMTP_FROM_NAME"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"probation-sheets" env:"S3_BUCKET_NAME"`
	}
	Auth struct {
		JWTSecret         string `default:"change-me" env:"AUTH_JWT_SECRET"`
		SessionTTLInSec   int64  `default:"43200" env:"AUTH_SESSION_TTL"`
		AccessLinkTTLDays int    `default:"14" env:"AUTH_ACCESS_LINK_TTL_DAYS"`
		ResetTTLInSec     int64  `default:"300" env:"AUTH_RESET_TTL"`
	}
	Notify struct {
		HRRecipients         []string `env:"NOTIFY_HR_RECIPIENTS"`
		ApproverRecipients   []string `env:"NOTIFY_APPROVER_RECIPIENTS"`
		CompletionRecipients []string `env:"NOTIFY_COMPLETION_RECIPIENTS"`
		AssessorTitle        string   `default:"Assessor" env:"NOTIFY_ASSESSOR_TITLE"`
		HRTitle              string   `default:"HR Manager" env:"NOTIFY_HR_TITLE"`
		ApproverTitle        string   `default:"CEO" env:"NOTIFY_APPROVER_TITLE"`
	}
	Reminder struct {
		Enabled        *bool  `default:"true" env:"REMINDER_ENABLED"`
		Schedule       string `default:"0 9 * * 1-5" env:"REMINDER_SCHEDULE"` // cron
		StaleAfterDays int    `default:"3" env:"REMINDER_STALE_AFTER_DAYS"`
	}
	Export struct {
		FontDir string `default:"" env:"EXPORT_FONT_DIR"` // каталог с ttf для pdf, пусто - встроенный шрифт
	}
	Staff []StaffUser
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
