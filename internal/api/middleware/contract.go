package middleware

import (
	"time"

	"github.com/m04kA/RestaurantReservationService/pkg/jwt"
)

// TokenValidator проверяет Bearer токен персонала
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// HTTPMetrics собирает метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
