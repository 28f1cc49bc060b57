package mail

import (
	"base97/config"

	"gopkg.in/gomail.v2"
)

// Mailer SMTP 发信封装
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(conf *config.Config) *Mailer {
	smtp := conf.Smtp
	return &Mailer{
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password),
		from:   smtp.From,
	}
}

func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}
