package update_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// OutboxRepository интерфейс outbox-репозитория уведомлений
type OutboxRepository interface {
	Enqueue(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
