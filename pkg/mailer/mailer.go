package mailer

import (
	"hangul_edu_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Message is a plain notification mail. Templated campaign mail is out of
// scope; decision notices are the only mail this system sends.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender is what services depend on; SMTPSender is the production
// implementation.
type Sender interface {
	Send(msg Message) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return s.dialer.DialAndSend(m)
}
