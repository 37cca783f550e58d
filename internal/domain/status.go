package domain

import (
	"fmt"
	"strings"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked     BookingStatus = "Booked"
	StatusInProgress BookingStatus = "InProgress"
	StatusDone       BookingStatus = "Done"
	StatusCancelled  BookingStatus = "Cancelled"
)

// AllStatuses список всех допустимых статусов
var AllStatuses = []BookingStatus{
	StatusBooked,
	StatusInProgress,
	StatusDone,
	StatusCancelled,
}

// AllowedTransitions задает граф допустимых переходов статусов.
// Done и Cancelled - терминальные статусы
var AllowedTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:     {StatusInProgress, StatusDone, StatusCancelled},
	StatusInProgress: {StatusDone, StatusCancelled},
	StatusDone:       {},
	StatusCancelled:  {},
}

// ParseStatus конвертирует строку в BookingStatus без учета регистра
func ParseStatus(s string) (BookingStatus, error) {
	for _, valid := range AllStatuses {
		if strings.EqualFold(s, string(valid)) {
			return valid, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// IsTerminal returns true for statuses that allow no further transitions
func (s BookingStatus) IsTerminal() bool {
	return len(AllowedTransitions[s]) == 0
}

// CanTransition проверяет, допустим ли переход from -> to.
// Переход в тот же статус разрешен (редактирование остальных полей)
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
