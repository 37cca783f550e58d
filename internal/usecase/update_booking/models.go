package update_booking

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Request модель запроса на редактирование бронирования.
// Несет все поля записи целиком - редактирование перезаписывает их verbatim
type Request struct {
	PathID          int64 // ID из URL, должен совпадать с ID в теле
	ID              int64
	CustomerID      string
	VehicleMake     string
	Model           string
	Year            int
	Mileage         int
	VIN             string
	ServiceType     string
	AppointmentDate time.Time
	Status          domain.BookingStatus
	Version         int64 // optimistic-concurrency токен из ранее прочитанной записи
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	CustomerID      string
	VehicleMake     string
	Model           string
	Year            int
	Mileage         int
	VIN             string
	ServiceType     string
	AppointmentDate time.Time
	Status          string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		VehicleMake:     b.VehicleMake,
		Model:           b.Model,
		Year:            b.Year,
		Mileage:         b.Mileage,
		VIN:             b.VIN,
		ServiceType:     b.ServiceType,
		AppointmentDate: b.AppointmentDate,
		Status:          string(b.Status),
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
