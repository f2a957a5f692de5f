package update_deposit_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgDepositPaidRequired  = "поле deposit_paid обязательно"
	msgNotFound             = "бронирование не найдено"
	msgDepositUpdated       = "Deposit status updated"
)

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

// Handle PATCH /api/v1/admin/reservations/{id}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PATCH /admin/reservations/{id}/deposit - Invalid reservation ID: %q", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateDepositRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/deposit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.DepositPaid == nil {
		handlers.RespondBadRequest(w, msgDepositPaidRequired)
		return
	}

	if err := h.service.UpdateDeposit(r.Context(), reservationID, *req.DepositPaid); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id}/deposit - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/reservations/{id}/deposit - Failed to update deposit: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/deposit - Deposit updated: reservation_id=%d, paid=%t",
		reservationID, *req.DepositPaid)
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: msgDepositUpdated})
}
