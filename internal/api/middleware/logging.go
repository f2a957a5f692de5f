package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
)

const requestIDHeader = "X-Request-ID"

const requestIDKey contextKey = "request_id"

// RequestID проставляет X-Request-ID, если клиент его не передал
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logging пишет строку доступа на каждый запрос и перехватывает панику
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			defer func() {
				if recovered := recover(); recovered != nil {
					logger.Error("%s %s - panic: %v, request_id=%s\n%s",
						r.Method, r.URL.Path, recovered, GetRequestID(r.Context()), debug.Stack())
					handlers.RespondInternalError(rec)
				}

				line := "%s %s - status=%d, duration=%s, request_id=%s"
				if rec.status >= http.StatusInternalServerError {
					logger.Error(line, r.Method, r.URL.Path, rec.status, time.Since(start), GetRequestID(r.Context()))
					return
				}
				logger.Info(line, r.Method, r.URL.Path, rec.status, time.Since(start), GetRequestID(r.Context()))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
