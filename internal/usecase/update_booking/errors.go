package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrIDMismatch возвращается, когда ID в пути и в теле запроса
	// не совпадают. Наружу отображается как not found
	ErrIDMismatch = errors.New("update_booking: path and payload id mismatch")

	// ErrAccessDenied возвращается, когда вызывающий не администратор
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("update_booking: status transition not allowed")

	// ErrVersionConflict возвращается при конкурентном изменении записи,
	// когда запись все еще существует. Конфликт не разрешается
	// автоматически - решение остается за вызывающим
	ErrVersionConflict = errors.New("update_booking: concurrent modification detected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
