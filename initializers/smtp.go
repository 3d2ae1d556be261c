package initializers

import (
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/config"
	"probation-eval-backend/lib/smtp"
)

func InitSmtp() {
	err := smtp.Connect(smtp.Config{
		User:        config.Conf.Smtp.User,
		Password:    config.Conf.Smtp.Password,
		Host:        config.Conf.Smtp.Host,
		Port:        config.Conf.Smtp.Port,
		TLSEnabled:  *config.Conf.Smtp.TLSEnabled,
		FromAddress: config.Conf.Smtp.FromAddress,
		FromName:    config.Conf.Smtp.FromName,
	})
	if err != nil {
		panic(err.Error())
	}
	if !smtp.Instance.Configured() {
		log.Warn("SMTP не настроен, уведомления не отправляются")
	}
}
