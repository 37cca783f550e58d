package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/api/handlers"
)

// UserIDHeader заголовок с ID аутентифицированного пользователя.
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// Auth middleware извлекает ID пользователя из заголовка и кладет
// его в контекст запроса. Запросы без заголовка отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+UserIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
