package get_menu

import (
	"context"

	"github.com/m04kA/RestaurantReservationService/internal/service/menu/models"
)

type MenuService interface {
	ListActive(ctx context.Context) ([]models.MenuItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
