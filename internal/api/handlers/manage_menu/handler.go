package manage_menu

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/menu"
	"github.com/m04kA/RestaurantReservationService/internal/service/menu/models"
)

const (
	msgInvalidMenuItemID  = "некорректный ID позиции меню"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные позиции меню"
	msgDuplicateName      = "позиция меню с таким названием уже существует"
	msgNotFound           = "позиция меню не найдена"
	msgMenuItemDeleted    = "Menu item deleted"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// Handler CRUD меню для администратора
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

// List GET /api/v1/admin/menu
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /admin/menu", 0, err)
		return
	}

	h.logger.Info("GET /admin/menu - Menu retrieved successfully: count=%d", len(items))
	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create POST /api/v1/admin/menu
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/menu - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/menu", 0, err)
		return
	}

	h.logger.Info("POST /admin/menu - Menu item created: menu_item_id=%d, name=%s", item.ID, item.Name)
	handlers.RespondJSON(w, http.StatusCreated, item)
}

// Update PATCH /api/v1/admin/menu/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.menuItemID(w, r, "PATCH /admin/menu/{id}")
	if !ok {
		return
	}

	var req models.UpdateMenuItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/menu/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Update(r.Context(), itemID, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /admin/menu/{id}", itemID, err)
		return
	}

	h.logger.Info("PATCH /admin/menu/{id} - Menu item updated: menu_item_id=%d", itemID)
	handlers.RespondJSON(w, http.StatusOK, item)
}

// Delete DELETE /api/v1/admin/menu/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.menuItemID(w, r, "DELETE /admin/menu/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), itemID); err != nil {
		h.respondServiceError(w, "DELETE /admin/menu/{id}", itemID, err)
		return
	}

	h.logger.Info("DELETE /admin/menu/{id} - Menu item deleted: menu_item_id=%d", itemID)
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: msgMenuItemDeleted})
}

func (h *Handler) menuItemID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s - Invalid menu item ID: %q", route, vars["id"])
		handlers.RespondBadRequest(w, msgInvalidMenuItemID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, itemID int64, err error) {
	switch {
	case errors.Is(err, menu.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: menu_item_id=%d, error=%v", route, itemID, err)
		detail := strings.TrimPrefix(err.Error(), menu.ErrInvalidInput.Error()+": ")
		handlers.RespondBadRequest(w, msgInvalidInput+": "+detail)

	case errors.Is(err, menu.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate menu item name: menu_item_id=%d", route, itemID)
		handlers.RespondBadRequest(w, msgDuplicateName)

	case errors.Is(err, menu.ErrMenuItemNotFound):
		h.logger.Warn("%s - Menu item not found: menu_item_id=%d", route, itemID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Internal error: menu_item_id=%d, error=%v", route, itemID, err)
		handlers.RespondInternalError(w)
	}
}
