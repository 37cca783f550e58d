package domain

import "time"

// NotificationStatus represents the delivery state of an outbox row
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	// NotificationSkipped - владелец не найден или у него нет email,
	// отправка молча пропущена
	NotificationSkipped NotificationStatus = "skipped"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification строка outbox-таблицы уведомлений о завершении работ.
// Данные автомобиля денормализованы, чтобы воркер мог собрать письмо,
// даже если бронирование к этому моменту удалено
type Notification struct {
	ID           int64
	BookingID    int64
	CustomerID   string
	VehicleMake  string
	VehicleModel string
	Status       NotificationStatus
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	SentAt       *time.Time
}
