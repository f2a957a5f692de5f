package get_availability

import (
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	Date       time.Time             // Дата (без времени)
	GuestCount int                   // Количество гостей
	Location   *domain.TableLocation // Предпочтение по залу (опционально)
}

// Response доступность каждого слота дня в порядке генерации
type Response struct {
	Date  time.Time
	Slots []domain.SlotAvailability
}
