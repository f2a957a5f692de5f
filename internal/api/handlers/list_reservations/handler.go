package list_reservations

import (
	"net/http"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/service/reservations/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/reservations
// Query params: date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListReservationsRequest{}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /admin/reservations - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reservations - Reservations retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
