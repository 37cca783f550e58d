package get_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

type BookingService interface {
	ResolveActor(ctx context.Context, callerID string) (bookings.Actor, error)
	GetByID(ctx context.Context, actor bookings.Actor, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
