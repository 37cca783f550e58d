package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WorkshopService/pkg/ptr"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidStatus = "некорректный статус"
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

// Handle GET /api/v1/bookings
// Администратор видит все бронирования, остальные - только свои
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = ptr.Ptr(status)
	}

	actor, err := h.service.ResolveActor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("GET /bookings - Unknown caller: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /bookings - Failed to resolve caller: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.List(r.Context(), actor, &models.ListBookingsRequest{Status: statusPtr})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid status filter: user_id=%s, status=%s", userID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings for user_id=%s", len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
