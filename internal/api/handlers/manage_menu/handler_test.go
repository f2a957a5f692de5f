package manage_menu

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/RestaurantReservationService/internal/service/menu"
	"github.com/m04kA/RestaurantReservationService/internal/service/menu/models"
)

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) ListAll(ctx context.Context) ([]models.MenuItemResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItemResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) Update(ctx context.Context, id int64, req *models.UpdateMenuItemRequest) (*models.MenuItemResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc MenuService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/menu", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/admin/menu", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/admin/menu/{id}", h.Update).Methods(http.MethodPatch)
	router.HandleFunc("/api/v1/admin/menu/{id}", h.Delete).Methods(http.MethodDelete)
	return router
}

func do(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockMenuService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateMenuItemRequest) bool {
		return req.Name == "Es Teh" && req.Price == 8000 && req.ImageURL == "/uploads/teh.jpg" &&
			req.IsActive != nil && *req.IsActive
	})).Return(&models.MenuItemResponse{ID: 7, Name: "Es Teh", Price: 8000, IsActive: true}, nil)

	w := do(newRouter(svc), http.MethodPost, "/api/v1/admin/menu",
		`{"name":"Es Teh","description":"","image_url":"/uploads/teh.jpg","price":8000,"category":"Drinks","is_active":true}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	svc.AssertExpectations(t)
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{name: "duplicate name", body: `{"name":"NASI GORENG","price":45000}`, svcErr: menu.ErrDuplicateName,
			wantStatus: http.StatusBadRequest, wantBody: "уже существует"},
		{name: "validation", body: `{"name":"Sate","price":-1}`, svcErr: fmt.Errorf("%w: %s", menu.ErrInvalidInput, "Price: gte"),
			wantStatus: http.StatusBadRequest, wantBody: "Price: gte"},
		{name: "internal", body: `{"name":"Sate","price":1}`, svcErr: menu.ErrInternal,
			wantStatus: http.StatusInternalServerError},
		{name: "camelCase field", body: `{"name":"Sate","price":1,"imageUrl":"/x.jpg"}`,
			wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMenuService)
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			w := do(newRouter(svc), http.MethodPost, "/api/v1/admin/menu", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Update(t *testing.T) {
	svc := new(MockMenuService)
	svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(req *models.UpdateMenuItemRequest) bool {
		return req.IsActive != nil && !*req.IsActive && req.Name == nil
	})).Return(&models.MenuItemResponse{ID: 3, Name: "Sate Ayam"}, nil)
	svc.On("Update", mock.Anything, int64(404), mock.Anything).Return(nil, menu.ErrMenuItemNotFound)

	router := newRouter(svc)

	assert.Equal(t, http.StatusOK, do(router, http.MethodPatch, "/api/v1/admin/menu/3", `{"is_active":false}`).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPatch, "/api/v1/admin/menu/404", `{"price":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPatch, "/api/v1/admin/menu/abc", `{"price":1}`).Code)
}

func TestHandler_ListAndDelete(t *testing.T) {
	svc := new(MockMenuService)
	svc.On("ListAll", mock.Anything).Return([]models.MenuItemResponse{
		{ID: 1, Name: "Sate Ayam", IsActive: true},
		{ID: 2, Name: "Es Campur", IsActive: false},
	}, nil)
	svc.On("Delete", mock.Anything, int64(2)).Return(nil)

	router := newRouter(svc)

	w := do(router, http.MethodGet, "/api/v1/admin/menu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":false`)

	w = do(router, http.MethodDelete, "/api/v1/admin/menu/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgMenuItemDeleted)
}
