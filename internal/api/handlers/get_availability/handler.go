package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	getAvailability "github.com/m04kA/RestaurantReservationService/internal/usecase/get_availability"
)

const (
	msgMissingParams   = "параметры date и guests обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGuests   = "количество гостей должно быть положительным целым числом"
	msgInvalidLocation = "некорректный зал, ожидается Indoor или Outdoor"
	msgDateInPast      = "нельзя проверить доступность на прошедшую дату"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), guests (required), location (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr := query.Get("date")
	guestsStr := query.Get("guests")

	if dateStr == "" || guestsStr == "" {
		h.logger.Warn("GET /availability - Missing date or guests")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, guestsStr, query.Get("location"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		switch {
		case errors.Is(err, errInvalidGuests):
			handlers.RespondBadRequest(w, msgInvalidGuests)
		case errors.Is(err, errInvalidLocation):
			handlers.RespondBadRequest(w, msgInvalidLocation)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to check availability: date=%s, guests=%s, error=%v",
				dateStr, guestsStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: date=%s, guests=%d, slots_count=%d",
		dateStr, useCaseReq.GuestCount, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
