package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

// UseCase use case редактирования бронирования администратором.
// Перезаписывает все поля записи, проверяет optimistic-concurrency токен
// и при переходе статуса в Done ставит уведомление о завершении работ
// в outbox в той же транзакции
type UseCase struct {
	bookingRepo BookingRepository
	outboxRepo  OutboxRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет редактирование бронирования
func (uc *UseCase) Execute(ctx context.Context, actor bookings.Actor, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking id=%d by caller=%s, status=%s, version=%d",
		req.PathID, actor.ID, req.Status, req.Version)

	// 1. Редактирование доступно только администраторам
	if !actor.IsAdmin {
		uc.logger.Warn("UpdateBooking: access denied for caller=%s", actor.ID)
		return nil, ErrAccessDenied
	}

	// 2. ID в пути и в теле должны совпадать
	if req.PathID != req.ID {
		uc.logger.Warn("UpdateBooking: id mismatch path=%d payload=%d", req.PathID, req.ID)
		return nil, ErrIDMismatch
	}

	// 3. Валидация обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed for booking id=%d: %v", req.ID, err)
		return nil, err
	}

	// 4. Целевая запись должна существовать
	existing, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: repository error for booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 5. Переход статуса должен быть разрешен таблицей переходов
	if !domain.CanTransition(existing.Status, req.Status) {
		uc.logger.Warn("UpdateBooking: transition %s -> %s not allowed for booking id=%d",
			existing.Status, req.Status, req.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, req.Status)
	}

	booking := &domain.Booking{
		ID:              req.ID,
		CustomerID:      req.CustomerID,
		VehicleMake:     req.VehicleMake,
		Model:           req.Model,
		Year:            req.Year,
		Mileage:         req.Mileage,
		VIN:             req.VIN,
		ServiceType:     req.ServiceType,
		AppointmentDate: req.AppointmentDate,
		Status:          req.Status,
		Version:         req.Version,
	}

	// Уведомление ставится в очередь только при фактическом переходе
	// в Done, повторное сохранение завершенной записи письма не дублирует
	completed := req.Status == domain.StatusDone && existing.Status != domain.StatusDone

	var result *domain.Booking

	// 6. Обновление и постановка уведомления в outbox атомарны
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return uc.resolveConflict(txCtx, req.ID)
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if completed {
			notification := &domain.Notification{
				BookingID:    updated.ID,
				CustomerID:   updated.CustomerID,
				VehicleMake:  updated.VehicleMake,
				VehicleModel: updated.Model,
			}
			if _, err := uc.outboxRepo.Enqueue(txCtx, notification); err != nil {
				uc.logger.Error("UpdateBooking: failed to enqueue notification for booking id=%d: %v", updated.ID, err)
				return fmt.Errorf("%w: failed to enqueue notification: %v", ErrInternal, err)
			}
			uc.logger.Info("UpdateBooking: completion notification enqueued for booking id=%d, customer=%s",
				updated.ID, updated.CustomerID)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d to status=%s, version=%d",
		result.ID, result.Status, result.Version)

	return fromDomain(result), nil
}

// resolveConflict применяет политику обработки конфликта версий:
// если запись исчезла - not found, если существует - конфликт
// пробрасывается вызывающему без повторов и слияний
func (uc *UseCase) resolveConflict(ctx context.Context, id int64) error {
	exists, err := uc.bookingRepo.Exists(ctx, id)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to re-check existence of booking id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to re-check booking existence: %v", ErrInternal, err)
	}

	if !exists {
		uc.logger.Warn("UpdateBooking: booking id=%d deleted during concurrent update", id)
		return ErrBookingNotFound
	}

	uc.logger.Warn("UpdateBooking: version conflict on booking id=%d", id)
	return ErrVersionConflict
}
