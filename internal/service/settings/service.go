package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/RestaurantReservationService/internal/domain"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
	"github.com/m04kA/RestaurantReservationService/internal/infra/cache"
	settingsRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/settings"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
)

// Service типизированный доступ к настройкам ресторана
// Вне транзакции значения читаются через кэш, внутри транзакции только из БД
// Запись после коммита кладет в кэш новые значения; читатель заполняет кэш через SetIfAbsent
// и не затирает более свежую запись
type Service struct {
	repo      SettingsRepository
	cache     Cache
	cacheTTL  time.Duration
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис настроек
// cache может быть nil: тогда каждое чтение идет в БД
func NewService(repo SettingsRepository, c Cache, cacheTTL time.Duration, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		cacheTTL:  cacheTTL,
		txManager: txManager,
		logger:    logger,
	}
}

// GetRestaurantHours возвращает часы работы или nil, если настройка отсутствует
// Нечитаемый JSON трактуется как пустые часы: при генерации слотов подставятся значения по умолчанию
func (s *Service) GetRestaurantHours(ctx context.Context) (*domain.RestaurantHours, error) {
	raw, err := s.getRaw(ctx, domain.SettingRestaurantHours)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	hours := &domain.RestaurantHours{}
	if err := json.Unmarshal(raw, hours); err != nil {
		s.logger.Warn("GetRestaurantHours: unparsable value, using defaults: %v", err)
		return &domain.RestaurantHours{}, nil
	}

	return hours, nil
}

// GetDepositConfig возвращает правила депозита; пропущенные поля заполняются значениями по умолчанию
func (s *Service) GetDepositConfig(ctx context.Context) (domain.DepositConfig, error) {
	defaults := domain.DefaultDepositConfig()

	raw, err := s.getRaw(ctx, domain.SettingDepositConfig)
	if err != nil {
		return domain.DepositConfig{}, err
	}
	if raw == nil {
		return defaults, nil
	}

	var cfg domain.DepositConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("GetDepositConfig: unparsable value, using defaults: %v", err)
		return defaults, nil
	}

	if cfg.Threshold <= 0 {
		cfg.Threshold = defaults.Threshold
	}
	if cfg.Amount <= 0 {
		cfg.Amount = defaults.Amount
	}

	return cfg, nil
}

// GetAll возвращает все настройки как есть
func (s *Service) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}
	return all, nil
}

// Update сохраняет все переданные ключи в одной транзакции
func (s *Service) Update(ctx context.Context, values map[string]json.RawMessage) error {
	// 1. Валидация входных данных
	if len(values) == 0 {
		return fmt.Errorf("%w: no settings provided", ErrInvalidInput)
	}

	keys := make([]string, 0, len(values))
	for key, value := range values {
		if key == "" {
			return fmt.Errorf("%w: empty setting key", ErrInvalidInput)
		}
		if err := validateSetting(key, value); err != nil {
			s.logger.Warn("UpdateSettings: rejected key=%s: %v", key, err)
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// 2. Запись в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, key := range keys {
			if err := s.repo.Upsert(txCtx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSettings: failed to save keys=%v: %v", keys, err)
		return fmt.Errorf("%w: Update - upsert: %v", ErrInternal, err)
	}

	// 3. Обновление кэша
	if err := s.refreshCache(ctx, keys, values); err != nil {
		s.logger.Error("UpdateSettings: keys=%v saved but cache still holds old values: %v", keys, err)
		return fmt.Errorf("%w: Update - cache invalidation: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: saved keys=%v", keys)
	return nil
}

// refreshCache записывает в кэш новые значения; если запись не удалась, ключи удаляются
// Ошибка возвращается, только когда не удалось ни то ни другое
func (s *Service) refreshCache(ctx context.Context, keys []string, values map[string]json.RawMessage) error {
	if s.cache == nil {
		return nil
	}

	var setErr error
	for _, key := range keys {
		if setErr = s.cache.Set(ctx, key, values[key], s.cacheTTL); setErr != nil {
			break
		}
	}
	if setErr == nil {
		return nil
	}

	s.logger.Warn("UpdateSettings: cache refresh failed for keys=%v, deleting: %v", keys, setErr)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("set: %v; delete: %w", setErr, err)
	}
	return nil
}

// getRaw читает значение через кэш; nil без ошибки означает отсутствие настройки
func (s *Service) getRaw(ctx context.Context, key string) (json.RawMessage, error) {
	useCache := s.cache != nil && !dbmetrics.IsInTransaction(ctx)

	if useCache {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return json.RawMessage(cached), nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("getSetting: cache read failed for key=%s: %v", key, err)
		}
	}

	raw, err := s.repo.Get(ctx, key)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("getSetting: repository error for key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: get %s: %v", ErrInternal, key, err)
	}

	if useCache {
		if _, err := s.cache.SetIfAbsent(ctx, key, raw, s.cacheTTL); err != nil {
			s.logger.Warn("getSetting: cache write failed for key=%s: %v", key, err)
		}
	}

	return raw, nil
}

func validateSetting(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: %s is not valid JSON", ErrInvalidInput, key)
	}

	switch key {
	case domain.SettingRestaurantHours:
		var hours domain.RestaurantHours
		if err := decodeStrict(value, &hours); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
		}
		if _, err := engine.ResolveHours(hours); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidHours, err)
		}
	case domain.SettingDepositConfig:
		var cfg domain.DepositConfig
		if err := decodeStrict(value, &cfg); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
		}
		if cfg.Threshold < 0 || cfg.Amount < 0 {
			return fmt.Errorf("%w: %s: threshold and amount must not be negative", ErrInvalidInput, key)
		}
	}

	return nil
}

func decodeStrict(value json.RawMessage, dst interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
