package create_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/RestaurantReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgNoTablesAvailable  = "недостаточно свободных столов на выбранное время"
	msgConcurrentBooking  = "слот одновременно бронируется другим гостем, повторите попытку"
	msgDateInPast         = "нельзя забронировать столик на прошедшую дату"
	msgInvalidTimeSlot    = "выбранное время не входит в расписание ресторана"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Тот же обработчик обслуживает POST /api/v1/admin/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrNoTablesAvailable):
			h.logger.Info("POST /reservations - No capacity: date=%s, time=%s, guests=%d",
				req.Date, req.TimeSlot, req.GuestCount)
			handlers.RespondConflict(w, msgNoTablesAvailable)

		case errors.Is(err, createReservation.ErrConcurrentBooking):
			h.logger.Warn("POST /reservations - Concurrent booking: date=%s, time=%s", req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Time is not a slot: time=%s", req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+validationDetail(err))

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, time=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, tables=%v",
		result.ID, result.AssignedTables)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// validationDetail отрезает префикс sentinel-ошибки, оставляя описание поля
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), createReservation.ErrInvalidInput.Error()+": ")
}
