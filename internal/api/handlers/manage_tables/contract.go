package manage_tables

import (
	"context"

	"github.com/m04kA/RestaurantReservationService/internal/service/tables/models"
)

type TableService interface {
	Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error)
	List(ctx context.Context, req *models.ListTablesRequest) ([]models.TableResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
