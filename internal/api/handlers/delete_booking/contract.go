package delete_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

type BookingService interface {
	ResolveActor(ctx context.Context, callerID string) (bookings.Actor, error)
	Delete(ctx context.Context, actor bookings.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
