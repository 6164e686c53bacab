package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
)

// userIDHeader заголовок с ID аутентифицированного пользователя.
// Аутентификацию выполняет внешний gateway, сервис доверяет заголовку.
const userIDHeader = "X-User-ID"

const msgMissingUserID = "thiếu thông tin người dùng"

type contextKey string

const userIDKey contextKey = "userID"

// Auth middleware проверяет наличие заголовка X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
