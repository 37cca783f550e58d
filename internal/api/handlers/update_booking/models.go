package update_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	updateBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model.
// Несет запись целиком вместе с optimistic-concurrency токеном version.
// Поля createdAt/updatedAt принимаются, но игнорируются - клиент может
// отправить запись в том виде, в каком прочитал ее через GET
type UpdateBookingRequest struct {
	ID              int64  `json:"id"`
	CustomerID      string `json:"customerId"`
	VehicleMake     string `json:"vehicleMake"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	Mileage         int    `json:"mileage"`
	VIN             string `json:"vin"`
	ServiceType     string `json:"serviceType"`
	AppointmentDate string `json:"appointmentDate"` // "2024-05-01" или RFC 3339
	Status          string `json:"status"`
	Version         int64  `json:"version"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customerId"`
	VehicleMake     string    `json:"vehicleMake"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	Mileage         int       `json:"mileage"`
	VIN             string    `json:"vin"`
	ServiceType     string    `json:"serviceType"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Status          string    `json:"status"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом даты и статуса)
func (r *UpdateBookingRequest) ToUseCaseRequest(pathID int64) (*updateBooking.Request, error) {
	appointmentDate, err := parseAppointmentDate(r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		PathID:          pathID,
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		VehicleMake:     r.VehicleMake,
		Model:           r.Model,
		Year:            r.Year,
		Mileage:         r.Mileage,
		VIN:             r.VIN,
		ServiceType:     r.ServiceType,
		AppointmentDate: appointmentDate,
		Status:          status,
		Version:         r.Version,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		VehicleMake:     resp.VehicleMake,
		Model:           resp.Model,
		Year:            resp.Year,
		Mileage:         resp.Mileage,
		VIN:             resp.VIN,
		ServiceType:     resp.ServiceType,
		AppointmentDate: resp.AppointmentDate,
		Status:          resp.Status,
		Version:         resp.Version,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
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
