package get_menu

import (
	"net/http"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
)

type Handler struct {
	service MenuService
	logger  Logger
}

func NewHandler(service MenuService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/menu
// Гостям отдаются только активные позиции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /menu - Failed to get menu: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /menu - Menu retrieved successfully: count=%d", len(items))
	handlers.RespondJSON(w, http.StatusOK, items)
}
