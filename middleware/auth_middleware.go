package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"petconnect_server_go/auth"
)

type contextKey string

// userIDKey - ключ для хранения ID пользователя в контексте запроса.
const userIDKey contextKey = "userID"

// usernameKey - ключ для хранения имени пользователя в контексте запроса.
const usernameKey contextKey = "username"

// JWT проверяет наличие и валидность JWT в заголовке Authorization.
// Если токен валиден, ID пользователя и имя пользователя добавляются в контекст запроса.
func JWT(tokens *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("JWT: отсутствует заголовок Authorization для %s %s", r.Method, r.URL.Path)
				http.Error(w, "Отсутствует заголовок Authorization", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Printf("JWT: неверный формат заголовка Authorization для %s %s", r.Method, r.URL.Path)
				http.Error(w, "Неверный формат заголовка Authorization (ожидается Bearer {token})", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				log.Printf("JWT: невалидный токен для %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Невалидный токен: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает ID пользователя, добавленный JWT middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// UsernameFromContext возвращает имя пользователя из контекста запроса.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// ContextWithUser добавляет данные пользователя в контекст. Используется в тестах.
func ContextWithUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}
