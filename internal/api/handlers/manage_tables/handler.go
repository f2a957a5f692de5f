package manage_tables

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RestaurantReservationService/internal/api/handlers"
	"github.com/m04kA/RestaurantReservationService/internal/service/tables"
	"github.com/m04kA/RestaurantReservationService/internal/service/tables/models"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные стола"
	msgNotFound           = "стол не найден"
	msgHasReservations    = "нельзя удалить стол с активными бронированиями"
	msgTableDeleted       = "Table deleted"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// Handler CRUD столов для администратора
type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/tables
// Query params: location (optional, Indoor|Outdoor)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListTablesRequest{}
	if location := r.URL.Query().Get("location"); location != "" {
		req.Location = &location
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "GET /admin/tables", 0, err)
		return
	}

	h.logger.Info("GET /admin/tables - Tables retrieved successfully: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/v1/admin/tables
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	table, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/tables", 0, err)
		return
	}

	h.logger.Info("POST /admin/tables - Table created: table_id=%d, name=%s", table.ID, table.Name)
	handlers.RespondJSON(w, http.StatusCreated, table)
}

// Update PATCH /api/v1/admin/tables/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "PATCH /admin/tables/{id}")
	if !ok {
		return
	}

	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	table, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /admin/tables/{id}", tableID, err)
		return
	}

	h.logger.Info("PATCH /admin/tables/{id} - Table updated: table_id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, table)
}

// Delete DELETE /api/v1/admin/tables/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "DELETE /admin/tables/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tableID); err != nil {
		h.respondServiceError(w, "DELETE /admin/tables/{id}", tableID, err)
		return
	}

	h.logger.Info("DELETE /admin/tables/{id} - Table deleted: table_id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: msgTableDeleted})
}

func (h *Handler) tableID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s - Invalid table ID: %q", route, vars["id"])
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, tableID int64, err error) {
	switch {
	case errors.Is(err, tables.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: table_id=%d, error=%v", route, tableID, err)
		detail := strings.TrimPrefix(err.Error(), tables.ErrInvalidInput.Error()+": ")
		handlers.RespondBadRequest(w, msgInvalidInput+": "+detail)

	case errors.Is(err, tables.ErrTableNotFound):
		h.logger.Warn("%s - Table not found: table_id=%d", route, tableID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tables.ErrTableHasActiveReservations):
		h.logger.Warn("%s - Table has active reservations: table_id=%d", route, tableID)
		handlers.RespondConflict(w, msgHasReservations)

	default:
		h.logger.Error("%s - Internal error: table_id=%d, error=%v", route, tableID, err)
		handlers.RespondInternalError(w)
	}
}
