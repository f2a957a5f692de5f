package update_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные бронирования"
	msgInvalidStatus        = "некорректный статус бронирования"
	msgNotFound             = "бронирование не найдено"
	msgTableNotFound        = "стол не найден"
	msgTableOccupied        = "стол занят в выбранном слоте или заблокирован"
	msgReservationUpdated   = "Reservation updated"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /admin/reservations/{id} - Invalid reservation ID: %q", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), reservationID, &req); err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/reservations/{id} - Validation failed: reservation_id=%d, error=%v", reservationID, err)
			detail := strings.TrimPrefix(err.Error(), reservations.ErrInvalidInput.Error()+": ")
			handlers.RespondBadRequest(w, msgInvalidInput+": "+detail)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/reservations/{id} - Invalid status: reservation_id=%d, status=%q", reservationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrTableNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id} - Table not found: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgTableNotFound)

		case errors.Is(err, reservations.ErrTableOccupied):
			h.logger.Warn("PATCH /admin/reservations/{id} - Table unavailable: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgTableOccupied)

		default:
			h.logger.Error("PATCH /admin/reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id} - Reservation updated: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: msgReservationUpdated})
}
