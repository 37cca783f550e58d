package notifier

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
)

// OutboxRepository интерфейс outbox-репозитория уведомлений
type OutboxRepository interface {
	FetchPending(ctx context.Context, limit int) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id int64) error
	MarkSkipped(ctx context.Context, id int64, reason string) error
	MarkAttemptFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID string) (*userservice.User, error)
}

// EmailSender интерфейс SMTP-отправителя
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// MetricsRecorder интерфейс для записи метрик обработки уведомлений
type MetricsRecorder interface {
	IncNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
