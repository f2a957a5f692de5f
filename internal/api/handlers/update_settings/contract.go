package update_settings

import (
	"context"
	"encoding/json"
)

type SettingsService interface {
	Update(ctx context.Context, values map[string]json.RawMessage) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
