package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"trade_logger/internal/auth"
)

type contextKey string

const TerminalKey contextKey = "terminal"

// AuthMiddleware проверяет JWT токен терминала в запросе
func AuthMiddleware(authService *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, logger, "Unauthorized")
				return
			}

			// Формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				unauthorized(w, logger, "Invalid authorization header")
				return
			}

			claims, err := authService.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, logger, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), TerminalKey, claims.Terminal)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTerminal извлекает имя терминала из контекста
func GetTerminal(ctx context.Context) (string, bool) {
	terminal, ok := ctx.Value(TerminalKey).(string)
	return terminal, ok
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Warn("Failed to write response", slog.Any("error", err))
	}
}
