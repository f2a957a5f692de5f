package auth

import "time"

// TokenIssuer выпускает токены персонала
type TokenIssuer interface {
	GenerateToken(username, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
