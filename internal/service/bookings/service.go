package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	userClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// Actor способности вызывающего: идентификатор и признак администратора.
// Резолвится один раз на операцию и передается явно, чтобы проверки прав
// не дублировались по обработчикам
type Actor struct {
	ID      string
	IsAdmin bool
}

// CanView returns true if the actor may see the given booking
func (a Actor) CanView(b *domain.Booking) bool {
	return a.IsAdmin || b.IsOwnedBy(a.ID)
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		logger:      logger,
	}
}

// ResolveActor определяет способности вызывающего через UserService
func (s *Service) ResolveActor(ctx context.Context, callerID string) (Actor, error) {
	user, err := s.userClient.GetUser(ctx, callerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("ResolveActor: unknown caller id=%s", callerID)
			return Actor{}, ErrAccessDenied
		}
		s.logger.Error("ResolveActor: failed to resolve caller id=%s: %v", callerID, err)
		return Actor{}, fmt.Errorf("%w: ResolveActor - user service error: %v", ErrInternal, err)
	}

	return Actor{ID: user.ID, IsAdmin: user.IsAdmin()}, nil
}

// Create создает бронирование от имени вызывающего.
// Владелец и начальный статус всегда проставляются сервером,
// что бы клиент ни прислал
func (s *Service) Create(ctx context.Context, actor Actor, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: new booking for customer=%s, vehicle=%s %s", actor.ID, req.VehicleMake, req.Model)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed for customer=%s: %v", actor.ID, err)
		return nil, err
	}

	booking := &domain.Booking{
		CustomerID:      actor.ID,
		VehicleMake:     req.VehicleMake,
		Model:           req.Model,
		Year:            req.Year,
		Mileage:         req.Mileage,
		VIN:             req.VIN,
		ServiceType:     req.ServiceType,
		AppointmentDate: req.AppointmentDate,
		Status:          domain.StatusBooked,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error("Create: repository error for customer=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created booking id=%d for customer=%s", created.ID, actor.ID)
	return models.FromDomainBooking(created), nil
}

// List получает список бронирований.
// Администратор видит все записи, остальные - только свои
func (s *Service) List(ctx context.Context, actor Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for caller=%s, admin=%t", actor.ID, actor.IsAdmin)

	filter := domain.BookingsFilter{}
	if !actor.IsAdmin {
		customerID := actor.ID
		filter.CustomerID = &customerID
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status filter=%s for caller=%s", *req.Status, actor.ID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for caller=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for caller=%s", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования или администратору
func (s *Service) GetByID(ctx context.Context, actor Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for caller=%s", id, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanView(booking) {
		s.logger.Warn("GetByID: access denied for caller=%s to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование. Доступно только администраторам.
// Операция идемпотентна: удаление несуществующего ID не является ошибкой
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d by caller=%s", id, actor.ID)

	if !actor.IsAdmin {
		s.logger.Warn("Delete: access denied for caller=%s", actor.ID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted (or was already absent)", id)
	return nil
}
