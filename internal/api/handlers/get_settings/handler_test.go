package get_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]json.RawMessage), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("GetAll", mock.Anything).Return(map[string]json.RawMessage{
		"restaurant_name": json.RawMessage(`"Bistro"`),
		"deposit_config":  json.RawMessage(`{"threshold":5,"amount":50000}`),
	}, nil).Once()
	svc.On("GetAll", mock.Anything).Return(nil, errors.New("db down")).Once()

	h := NewHandler(svc, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"restaurant_name":"Bistro","deposit_config":{"threshold":5,"amount":50000}}`, w.Body.String())

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
