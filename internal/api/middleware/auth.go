package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// Заголовки аутентификации.
// Сервис работает за API-шлюзом, который уже проверил пользователя.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// RoleOperator роль оператора площадки
const RoleOperator = "operator"

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth извлекает ID и роль пользователя из заголовков и кладет их в контекст.
// Запросы без корректного X-User-ID отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			http.Error(w, `{"error":"отсутствует заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"некорректный заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// IsOperator проверяет, что запрос выполняет оператор
func IsOperator(ctx context.Context) bool {
	role, ok := GetUserRole(ctx)
	return ok && role == RoleOperator
}
