package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD или RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgSaveFailed         = "не удалось сохранить бронирование, введенные данные не потеряны - попробуйте еще раз"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель сервиса (с парсингом даты)
	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actor, err := h.service.ResolveActor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("POST /bookings - Unknown caller: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("POST /bookings - Failed to resolve caller: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.Create(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			// Ошибка хранилища: обезличенное сообщение, клиент сохраняет
			// введенные данные и может повторить запрос
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgSaveFailed)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%s",
		result.ID, result.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
