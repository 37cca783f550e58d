package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// CreateBookingRequest HTTP request model
// Поля customerId, status и version принимаются, но игнорируются:
// владельцем всегда становится аутентифицированный пользователь,
// начальный статус всегда Booked
type CreateBookingRequest struct {
	CustomerID      string `json:"customerId,omitempty"`
	Status          string `json:"status,omitempty"`
	Version         int64  `json:"version,omitempty"`
	VehicleMake     string `json:"vehicleMake"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	Mileage         int    `json:"mileage"`
	VIN             string `json:"vin"`
	ServiceType     string `json:"serviceType"`
	AppointmentDate string `json:"appointmentDate"` // "2024-05-01" или RFC 3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// (с парсингом даты записи)
func (r *CreateBookingRequest) ToServiceRequest() (*models.CreateBookingRequest, error) {
	appointmentDate, err := parseAppointmentDate(r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateBookingRequest{
		VehicleMake:     r.VehicleMake,
		Model:           r.Model,
		Year:            r.Year,
		Mileage:         r.Mileage,
		VIN:             r.VIN,
		ServiceType:     r.ServiceType,
		AppointmentDate: appointmentDate,
	}, nil
}

// parseAppointmentDate принимает дату записи как RFC 3339 или YYYY-MM-DD
func parseAppointmentDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(domain.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid appointment date %q", s)
}
