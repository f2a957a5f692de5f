package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createReservationHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/delete_reservation"
	getAvailabilityHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/get_settings"
	listReservationsHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/list_reservations"
	loginHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/login"
	getMenuHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/get_menu"
	manageMenuHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/manage_menu"
	manageTablesHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/manage_tables"
	updateDepositStatusHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/update_deposit_status"
	updateReservationHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/update_reservation"
	updateReservationStatusHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/update_reservation_status"
	updateSettingsHandler "github.com/m04kA/RestaurantReservationService/internal/api/handlers/update_settings"
	"github.com/m04kA/RestaurantReservationService/internal/api/middleware"
	"github.com/m04kA/RestaurantReservationService/internal/config"
	"github.com/m04kA/RestaurantReservationService/internal/engine"
	"github.com/m04kA/RestaurantReservationService/internal/infra/cache"
	menuRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/menu"
	reservationRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/settings"
	tableRepo "github.com/m04kA/RestaurantReservationService/internal/infra/storage/table"
	"github.com/m04kA/RestaurantReservationService/internal/integrations/notifier"
	authService "github.com/m04kA/RestaurantReservationService/internal/service/auth"
	authModels "github.com/m04kA/RestaurantReservationService/internal/service/auth/models"
	menuService "github.com/m04kA/RestaurantReservationService/internal/service/menu"
	reservationsService "github.com/m04kA/RestaurantReservationService/internal/service/reservations"
	settingsService "github.com/m04kA/RestaurantReservationService/internal/service/settings"
	tablesService "github.com/m04kA/RestaurantReservationService/internal/service/tables"
	createReservationUC "github.com/m04kA/RestaurantReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/RestaurantReservationService/internal/usecase/get_availability"
	"github.com/m04kA/RestaurantReservationService/pkg/dbmetrics"
	"github.com/m04kA/RestaurantReservationService/pkg/jwt"
	"github.com/m04kA/RestaurantReservationService/pkg/locker"
	"github.com/m04kA/RestaurantReservationService/pkg/logger"
	"github.com/m04kA/RestaurantReservationService/pkg/metrics"
	"github.com/m04kA/RestaurantReservationService/pkg/telemetry"
	"github.com/m04kA/RestaurantReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting RestaurantReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Трассировка (no-op без endpoint)
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Metrics.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Endpoint != "" {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка только прокидывает вызовы в *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: блокировки слотов и кэш настроек. Без Redis сервис работает на одних транзакциях
	var (
		slotLocker    locker.Locker = locker.NoopLocker{}
		settingsCache settingsService.Cache
		redisClient   *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()

		if err != nil {
			log.Warn("Redis unavailable at %s, continuing without slot locks and settings cache: %v", cfg.Redis.Addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			slotLocker = locker.NewRedisLocker(redisClient, locker.Options{
				TTL:        time.Duration(cfg.Redis.LockTTLMs) * time.Millisecond,
				Retries:    cfg.Redis.LockRetries,
				RetryDelay: time.Duration(cfg.Redis.LockRetryDelay) * time.Millisecond,
			})
			settingsCache = cache.NewRedisCache(redisClient, "settings:")
			log.Info("Connected to Redis at %s (slot locks and settings cache enabled)", cfg.Redis.Addr)
		}
	}

	// Уведомления о новых бронированиях
	var reservationNotifier createReservationUC.Notifier = notifier.NewLogNotifier(log)
	var rabbitPublisher *notifier.RabbitPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err = notifier.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, notifications will only be logged: %v", err)
		} else {
			reservationNotifier = rabbitPublisher
			log.Info("Publishing reservation events to RabbitMQ queue %s", cfg.RabbitMQ.Queue)
		}
	}

	// Инициализируем репозитории
	tableRepository := tableRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	menuRepository := menuRepo.NewRepository(wrappedDB)

	// Движок подбора столов
	tableEngine := engine.NewEngine(tableRepository, reservationRepository, log)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		settingsCache,
		time.Duration(cfg.Redis.SettingsTTLSecs)*time.Second,
		txMgr,
		log,
	)
	reservationsSvc := reservationsService.NewService(reservationRepository, tableRepository, txMgr, log)
	tablesSvc := tablesService.NewService(tableRepository, txMgr, log)
	menuSvc := menuService.NewService(menuRepository, txMgr, log)

	tokens := jwt.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	accounts := make([]authModels.StaffAccount, 0, len(cfg.Auth.Users))
	for _, u := range cfg.Auth.Users {
		accounts = append(accounts, authModels.StaffAccount{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
		})
	}
	authSvc := authService.NewService(accounts, tokens, log)
	log.Info("Staff accounts loaded: %d", len(accounts))

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableEngine,
		settingsSvc,
		slotLocker,
		reservationNotifier,
		metricsCollector,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		settingsSvc,
		tableEngine,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	updateDepositStatus := updateDepositStatusHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	manageTables := manageTablesHandler.NewHandler(tablesSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	getMenu := getMenuHandler.NewHandler(menuSvc, log)
	manageMenu := manageMenuHandler.NewHandler(menuSvc, log)
	login := loginHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Error("GET /health - Database unavailable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования гостем
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)

	// Настройки ресторана
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// Меню (только активные позиции)
	api.HandleFunc("/menu", getMenu.Handle).Methods(http.MethodGet)

	// Вход персонала
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен Admin или Staff)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(tokens, log))

	// --- Бронирования ---
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/deposit", updateDepositStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Столы и меню: чтение для персонала, изменение только для Admin ---
	admin.HandleFunc("/tables", manageTables.List).Methods(http.MethodGet)
	admin.HandleFunc("/menu", manageMenu.List).Methods(http.MethodGet)

	adminOnly := admin.PathPrefix("").Subrouter()
	adminOnly.Use(middleware.RequireRole(authModels.RoleAdmin))

	adminOnly.HandleFunc("/tables", manageTables.Create).Methods(http.MethodPost)
	adminOnly.HandleFunc("/tables/{id}", manageTables.Update).Methods(http.MethodPatch)
	adminOnly.HandleFunc("/tables/{id}", manageTables.Delete).Methods(http.MethodDelete)

	// --- Настройки ---
	adminOnly.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPost)

	// --- Меню ---
	adminOnly.HandleFunc("/menu", manageMenu.Create).Methods(http.MethodPost)
	adminOnly.HandleFunc("/menu/{id}", manageMenu.Update).Methods(http.MethodPatch)
	adminOnly.HandleFunc("/menu/{id}", manageMenu.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if rabbitPublisher != nil {
		if err := rabbitPublisher.Close(); err != nil {
			log.Error("Failed to close RabbitMQ connection: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
