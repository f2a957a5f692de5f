package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/infra/cache"
	settingsRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/settings"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockSettingsRepository) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]json.RawMessage), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

// memoryCache кэш в памяти с управляемыми отказами
type memoryCache struct {
	values    map[string][]byte
	setErr    error
	deleteErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *memoryCache) SetIfAbsent(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = value
	return true, nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

// openTx транзакция в контексте без реальной БД
type openTx struct {
	dbmetrics.TxExecutor
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_GetRestaurantHours(t *testing.T) {
	tests := []struct {
		name    string
		raw     json.RawMessage
		repoErr error
		want    *domain.RestaurantHours
		wantErr error
	}{
		{
			name: "stored",
			raw:  json.RawMessage(`{"open":"09:00","close":"22:00","interval":30}`),
			want: &domain.RestaurantHours{Open: "09:00", Close: "22:00", Interval: 30},
		},
		{
			name:    "absent",
			repoErr: settingsRepo.ErrSettingNotFound,
			want:    nil,
		},
		{
			name: "unparsable falls back to empty hours",
			raw:  json.RawMessage(`"nine to ten"`),
			want: &domain.RestaurantHours{},
		},
		{
			name:    "storage failure",
			repoErr: errors.New("db down"),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			svc := NewService(repo, nil, time.Minute, inlineTxManager{}, nopLogger{})

			if tt.repoErr != nil {
				repo.On("Get", mock.Anything, domain.SettingRestaurantHours).Return(nil, tt.repoErr)
			} else {
				repo.On("Get", mock.Anything, domain.SettingRestaurantHours).Return(tt.raw, nil)
			}

			got, err := svc.GetRestaurantHours(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_GetDepositConfig_FillsDefaults(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewService(repo, nil, time.Minute, inlineTxManager{}, nopLogger{})

	repo.On("Get", mock.Anything, domain.SettingDepositConfig).
		Return(json.RawMessage(`{"threshold":8,"bank_info":"IBAN 123"}`), nil)

	cfg, err := svc.GetDepositConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Threshold)
	assert.Equal(t, int64(domain.DefaultDepositAmount), cfg.Amount)
	assert.Equal(t, "IBAN 123", cfg.BankInfo)
}

func TestService_GetDepositConfig_Absent(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewService(repo, nil, time.Minute, inlineTxManager{}, nopLogger{})

	repo.On("Get", mock.Anything, domain.SettingDepositConfig).Return(nil, settingsRepo.ErrSettingNotFound)

	cfg, err := svc.GetDepositConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDepositConfig(), cfg)
}

func TestService_ReadsThroughCache(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := new(MockCache)
	svc := NewService(repo, c, time.Minute, inlineTxManager{}, nopLogger{})

	raw := json.RawMessage(`{"open":"10:00","close":"20:00","interval":60}`)

	c.On("Get", mock.Anything, domain.SettingRestaurantHours).Return(nil, cache.ErrCacheMiss).Once()
	repo.On("Get", mock.Anything, domain.SettingRestaurantHours).Return(raw, nil).Once()
	c.On("SetIfAbsent", mock.Anything, domain.SettingRestaurantHours, []byte(raw), time.Minute).Return(true, nil).Once()

	hours, err := svc.GetRestaurantHours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, hours.Interval)

	c.On("Get", mock.Anything, domain.SettingRestaurantHours).Return([]byte(raw), nil).Once()

	hours, err = svc.GetRestaurantHours(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10:00", hours.Open)

	repo.AssertNumberOfCalls(t, "Get", 1)
	c.AssertExpectations(t)
}

func TestService_Update_UpsertsAndRefreshesCache(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := new(MockCache)
	svc := NewService(repo, c, time.Minute, inlineTxManager{}, nopLogger{})

	hours := json.RawMessage(`{"open":"09:00","close":"22:00","interval":30}`)
	deposit := json.RawMessage(`{"threshold":6,"amount":75000}`)

	repo.On("Upsert", mock.Anything, domain.SettingDepositConfig, deposit).Return(nil)
	repo.On("Upsert", mock.Anything, domain.SettingRestaurantHours, hours).Return(nil)
	c.On("Set", mock.Anything, domain.SettingDepositConfig, []byte(deposit), time.Minute).Return(nil)
	c.On("Set", mock.Anything, domain.SettingRestaurantHours, []byte(hours), time.Minute).Return(nil)

	err := svc.Update(context.Background(), map[string]json.RawMessage{
		domain.SettingRestaurantHours: hours,
		domain.SettingDepositConfig:   deposit,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]json.RawMessage
		wantErr error
	}{
		{"empty", map[string]json.RawMessage{}, ErrInvalidInput},
		{"broken json", map[string]json.RawMessage{"theme": json.RawMessage(`{`)}, ErrInvalidInput},
		{"open after close", map[string]json.RawMessage{
			domain.SettingRestaurantHours: json.RawMessage(`{"open":"23:00","close":"10:00","interval":30}`),
		}, ErrInvalidHours},
		{"negative interval", map[string]json.RawMessage{
			domain.SettingRestaurantHours: json.RawMessage(`{"open":"10:00","close":"22:00","interval":-15}`),
		}, ErrInvalidHours},
		{"unknown hours field", map[string]json.RawMessage{
			domain.SettingRestaurantHours: json.RawMessage(`{"opens":"10:00"}`),
		}, ErrInvalidInput},
		{"negative deposit", map[string]json.RawMessage{
			domain.SettingDepositConfig: json.RawMessage(`{"threshold":5,"amount":-1}`),
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			svc := NewService(repo, nil, time.Minute, inlineTxManager{}, nopLogger{})

			err := svc.Update(context.Background(), tt.values)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_StorageFailure(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := new(MockCache)
	svc := NewService(repo, c, time.Minute, inlineTxManager{}, nopLogger{})

	repo.On("Upsert", mock.Anything, "theme", mock.Anything).Return(errors.New("db down"))

	err := svc.Update(context.Background(), map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)})

	assert.ErrorIs(t, err, ErrInternal)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func warmDepositConfig(t *testing.T, svc *Service, repo *MockSettingsRepository, raw string) {
	t.Helper()

	repo.On("Get", mock.Anything, domain.SettingDepositConfig).Return(json.RawMessage(raw), nil).Once()
	cfg, err := svc.GetDepositConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Threshold)
}

func TestService_Update_NewValueVisibleAfterWrite(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := newMemoryCache()
	svc := NewService(repo, c, 5*time.Minute, inlineTxManager{}, nopLogger{})

	warmDepositConfig(t, svc, repo, `{"threshold":5,"amount":50000}`)

	repo.On("Upsert", mock.Anything, domain.SettingDepositConfig, mock.Anything).Return(nil)
	require.NoError(t, svc.Update(context.Background(), map[string]json.RawMessage{
		domain.SettingDepositConfig: json.RawMessage(`{"threshold":8,"amount":50000}`),
	}))

	cfg, err := svc.GetDepositConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Threshold)
	repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestService_Update_CacheFailure(t *testing.T) {
	tests := []struct {
		name      string
		setErr    error
		deleteErr error
		wantErr   error
	}{
		{name: "refresh fails, delete succeeds", setErr: errors.New("redis timeout")},
		{name: "refresh and delete fail", setErr: errors.New("redis timeout"), deleteErr: errors.New("redis timeout"),
			wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			c := newMemoryCache()
			svc := NewService(repo, c, 5*time.Minute, inlineTxManager{}, nopLogger{})

			warmDepositConfig(t, svc, repo, `{"threshold":5,"amount":50000}`)

			c.setErr = tt.setErr
			c.deleteErr = tt.deleteErr
			repo.On("Upsert", mock.Anything, domain.SettingDepositConfig, mock.Anything).Return(nil)

			err := svc.Update(context.Background(), map[string]json.RawMessage{
				domain.SettingDepositConfig: json.RawMessage(`{"threshold":8,"amount":50000}`),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			repo.On("Get", mock.Anything, domain.SettingDepositConfig).
				Return(json.RawMessage(`{"threshold":8,"amount":50000}`), nil).Once()
			cfg, err := svc.GetDepositConfig(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 8, cfg.Threshold)
		})
	}
}

func TestService_ReadMissDoesNotOverwriteNewerWrite(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := newMemoryCache()
	svc := NewService(repo, c, 5*time.Minute, inlineTxManager{}, nopLogger{})

	// читатель получил старую строку, а запись успела закоммититься до заполнения кэша
	repo.On("Get", mock.Anything, domain.SettingDepositConfig).
		Return(json.RawMessage(`{"threshold":5,"amount":50000}`), nil).
		Run(func(mock.Arguments) {
			require.NoError(t, svc.Update(context.Background(), map[string]json.RawMessage{
				domain.SettingDepositConfig: json.RawMessage(`{"threshold":8,"amount":50000}`),
			}))
		}).Once()
	repo.On("Upsert", mock.Anything, domain.SettingDepositConfig, mock.Anything).Return(nil)

	stale, err := svc.GetDepositConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stale.Threshold)

	cfg, err := svc.GetDepositConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Threshold)
}

func TestService_GetDepositConfig_InTransactionSkipsCache(t *testing.T) {
	repo := new(MockSettingsRepository)
	c := new(MockCache)
	svc := NewService(repo, c, time.Minute, inlineTxManager{}, nopLogger{})

	repo.On("Get", mock.Anything, domain.SettingDepositConfig).
		Return(json.RawMessage(`{"threshold":8,"amount":50000}`), nil)

	txCtx := dbmetrics.WithTx(context.Background(), openTx{})
	cfg, err := svc.GetDepositConfig(txCtx)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Threshold)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "SetIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
