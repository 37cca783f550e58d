package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

type BookingService interface {
	ResolveActor(ctx context.Context, callerID string) (bookings.Actor, error)
	List(ctx context.Context, actor bookings.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
