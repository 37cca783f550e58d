package update_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerID) == "" {
		return fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VehicleMake) == "" {
		return fmt.Errorf("%w: vehicleMake is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if req.Year < domain.MinVehicleYear || req.Year > time.Now().Year()+1 {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, domain.MinVehicleYear, time.Now().Year()+1)
	}
	if req.Mileage < 0 {
		return fmt.Errorf("%w: mileage must be non-negative", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VIN) == "" {
		return fmt.Errorf("%w: vin is required", ErrInvalidInput)
	}
	if len(req.VIN) > domain.MaxVINLength {
		return fmt.Errorf("%w: vin must be at most %d characters", ErrInvalidInput, domain.MaxVINLength)
	}
	if !domain.IsValidServiceType(req.ServiceType) {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.ServiceType)
	}
	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointmentDate is required", ErrInvalidInput)
	}
	if req.Version <= 0 {
		return fmt.Errorf("%w: version is required", ErrInvalidInput)
	}
	return nil
}
