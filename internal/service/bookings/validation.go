package bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// validateCreateRequest валидирует обязательные поля при создании
func validateCreateRequest(req *models.CreateBookingRequest) error {
	return validateBookingFields(
		req.VehicleMake,
		req.Model,
		req.Year,
		req.Mileage,
		req.VIN,
		req.ServiceType,
		req.AppointmentDate,
	)
}

// validateBookingFields проверяет обязательные поля бронирования
func validateBookingFields(vehicleMake, model string, year, mileage int, vin, serviceType string, appointmentDate time.Time) error {
	if strings.TrimSpace(vehicleMake) == "" {
		return fmt.Errorf("%w: vehicleMake is required", ErrInvalidInput)
	}
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if year < domain.MinVehicleYear || year > time.Now().Year()+1 {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, domain.MinVehicleYear, time.Now().Year()+1)
	}
	if mileage < 0 {
		return fmt.Errorf("%w: mileage must be non-negative", ErrInvalidInput)
	}
	if strings.TrimSpace(vin) == "" {
		return fmt.Errorf("%w: vin is required", ErrInvalidInput)
	}
	if len(vin) > domain.MaxVINLength {
		return fmt.Errorf("%w: vin must be at most %d characters", ErrInvalidInput, domain.MaxVINLength)
	}
	if !domain.IsValidServiceType(serviceType) {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, serviceType)
	}
	if appointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}
	return nil
}
