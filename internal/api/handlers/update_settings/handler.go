package update_settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptySettings      = "не передано ни одной настройки"
	msgInvalidSetting     = "некорректное значение настройки"
	msgInvalidHours       = "некорректные часы работы ресторана"
	msgSettingsUpdated    = "Settings updated"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/settings
// Body: {"key": value, ...}, все ключи сохраняются в одной транзакции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var values map[string]json.RawMessage
	if err := handlers.DecodeJSON(r, &values); err != nil {
		h.logger.Warn("POST /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(values) == 0 {
		handlers.RespondBadRequest(w, msgEmptySettings)
		return
	}

	if err := h.service.Update(r.Context(), values); err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidHours):
			h.logger.Warn("POST /admin/settings - Impossible restaurant hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /admin/settings - Validation failed: %v", err)
			detail := strings.TrimPrefix(err.Error(), settings.ErrInvalidInput.Error()+": ")
			handlers.RespondBadRequest(w, msgInvalidSetting+": "+detail)

		default:
			h.logger.Error("POST /admin/settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/settings - Settings updated: keys=%d", len(values))
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: msgSettingsUpdated})
}
