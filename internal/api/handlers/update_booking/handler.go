package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	updateBooking "github.com/m04kA/SMC-WorkshopService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPayload     = "некорректные данные бронирования"
	msgNotFound           = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgVersionConflict    = "бронирование было изменено параллельно, обновите данные и повторите"
)

type Handler struct {
	resolver ActorResolver
	useCase  UpdateBookingUseCase
	logger   Logger
}

func NewHandler(resolver ActorResolver, useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
// Редактирование доступно только администраторам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и статуса)
	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	actor, err := h.resolver.ResolveActor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("PUT /bookings/{id} - Unknown caller: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("PUT /bookings/{id} - Failed to resolve caller: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrIDMismatch),
			errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrInvalidInput),
			errors.Is(err, updateBooking.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Invalid payload: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateBooking.ErrVersionConflict):
			h.logger.Warn("PUT /bookings/{id} - Version conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, status=%s, user_id=%s",
		bookingID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
