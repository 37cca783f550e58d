package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender отправляет письма через аутентифицированное SMTP-соединение с TLS.
// Одно письмо - один получатель, тело в HTML
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender создает SMTP-отправителя
func NewSender(host string, port int, from, username, password string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send отправляет одно HTML-письмо одному получателю.
// Ошибки соединения, аутентификации и отправки пробрасываются вызывающей
// стороне - повторами управляет outbox-воркер
func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}
