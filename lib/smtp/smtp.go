package smtp

import (
	"bytes"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendHTML(to []string, subject, html string) error
	Configured() bool
}

type Config struct {
	User        string
	Password    string
	Host        string
	Port        string
	TLSEnabled  bool
	FromAddress string
	FromName    string
}

func Connect(cfg Config) error {
	Instance = &impl{
		cfg:  cfg,
		send: sendMail,
	}
	return nil
}

type sendFunc func(addr string, tlsEnabled bool, auth sasl.Client, from string, to []string, msg []byte) error

type impl struct {
	cfg  Config
	send sendFunc
}

func (i impl) Configured() bool {
	return i.cfg.User != "" && i.cfg.Host != "" && i.cfg.Port != ""
}

func (i impl) from() string {
	if i.cfg.FromAddress != "" {
		return i.cfg.FromAddress
	}
	return i.cfg.User
}

func (i impl) SendHTML(to []string, subject, html string) (err error) {
	logger := log.
		WithField("recipients", strings.Join(to, ",")).
		WithField("subject", subject)
	if !i.Configured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}
	body, err := composeMessage(i.from(), i.cfg.FromName, to, subject, html)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования письма")
	}
	auth := sasl.NewPlainClient("", i.cfg.User, i.cfg.Password)
	err = i.send(i.cfg.Host+":"+i.cfg.Port, i.cfg.TLSEnabled, auth, i.from(), to, body)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func composeMessage(from, fromName string, to []string, subject, html string) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sendMail(addr string, tlsEnabled bool, auth sasl.Client, from string, to []string, msg []byte) error {
	if tlsEnabled {
		return smtp.SendMailTLS(addr, auth, from, to, bytes.NewReader(msg))
	}
	return smtp.SendMail(addr, auth, from, to, bytes.NewReader(msg))
}
