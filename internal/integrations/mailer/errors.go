package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке соединения, аутентификации
	// или отправки письма
	ErrSendFailed = errors.New("mailer: failed to send message")
)
