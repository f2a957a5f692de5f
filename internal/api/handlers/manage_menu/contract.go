package manage_menu

import (
	"context"

	"github.com/m04kA/RestaurantReservationService/internal/service/menu/models"
)

type MenuService interface {
	ListAll(ctx context.Context) ([]models.MenuItemResponse, error)
	Create(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItemResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateMenuItemRequest) (*models.MenuItemResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
