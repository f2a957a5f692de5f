package update_reservation

import (
	"context"

	"github.com/m04kA/RestaurantReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
