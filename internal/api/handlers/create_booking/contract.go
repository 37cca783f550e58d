package create_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

type BookingService interface {
	ResolveActor(ctx context.Context, callerID string) (bookings.Actor, error)
	Create(ctx context.Context, actor bookings.Actor, req *models.CreateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
