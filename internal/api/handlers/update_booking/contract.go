package update_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	updateBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/update_booking"
)

type ActorResolver interface {
	ResolveActor(ctx context.Context, callerID string) (bookings.Actor, error)
}

type UpdateBookingUseCase interface {
	Execute(ctx context.Context, actor bookings.Actor, req *updateBooking.Request) (*updateBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
