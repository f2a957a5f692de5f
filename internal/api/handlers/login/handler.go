package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/auth"
	"github.com/m04kA/RestaurantReservationService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgCredentialsRequired = "логин и пароль обязательны"
	msgInvalidCredentials  = "неверный логин или пароль"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgCredentialsRequired)

		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Login successful: username=%s, role=%s", req.Username, resp.Role)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
