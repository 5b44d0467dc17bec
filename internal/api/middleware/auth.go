package middleware

import (
	"net/http"

	"github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers"
)

// AdminIDHeader заголовок идентификации администратора салона
const AdminIDHeader = "X-Admin-ID"

// Auth проверяет наличие заголовка X-Admin-ID
// Полная аутентификация выполняется на API gateway, здесь только
// отсечение запросов без идентификации
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AdminIDHeader) == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-Admin-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
