package create_reservation

import (
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/pkg/types"
)

// SuccessMessage сообщение об успешном создании
const SuccessMessage = "Reservation created successfully"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Date              time.Time             // Дата бронирования (без времени)
	TimeSlot          types.TimeString      // Слот, например "19:00"
	GuestCount        int                   // Количество гостей
	SpecialRequests   *string               // Пожелания (опционально)
	SeatingPreference *domain.TableLocation // Зал (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Message         string
	Status          string
	AssignedTables  []int64 // Столы в порядке назначения, первый является основным
	RequiresDeposit bool
	DepositAmount   int64 // 0, если депозит не нужен
}
