package get_settings

import (
	"context"
	"encoding/json"
)

type SettingsService interface {
	GetAll(ctx context.Context) (map[string]json.RawMessage, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
