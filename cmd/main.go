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

	applyPresetHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/apply_preset"
	blockSlotHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/create_booking"
	getAgendaHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/get_agenda"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/get_schedule"
	lookupBookingsHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/lookup_bookings"
	replicateDayHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/replicate_day"
	setDaysHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/set_days"
	updateScheduleRuleHandler "github.com/m04kA/SMC-WellnessService/internal/api/handlers/update_schedule_rule"
	"github.com/m04kA/SMC-WellnessService/internal/api/middleware"
	"github.com/m04kA/SMC-WellnessService/internal/config"
	bookingRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-WellnessService/internal/infra/storage/schedule"
	eligibilityClient "github.com/m04kA/SMC-WellnessService/internal/integrations/eligibility"
	bookingsService "github.com/m04kA/SMC-WellnessService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-WellnessService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-WellnessService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-WellnessService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WellnessService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WellnessService/pkg/identity"
	"github.com/m04kA/SMC-WellnessService/pkg/logger"
	"github.com/m04kA/SMC-WellnessService/pkg/metrics"
	"github.com/m04kA/SMC-WellnessService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WellnessService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-WellnessService...")
	log.Info("Configuration loaded from config.toml")

	// Операционный часовой пояс расписания
	location, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Schedule.Timezone, err)
	}
	log.Info("Operating timezone: %s", cfg.Schedule.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Хешер идентификаторов сотрудников
	hasher := identity.NewHasher(cfg.Identity.Pepper)

	// Клиент списка участников программы
	eligClient := eligibilityClient.NewClient(
		cfg.EligibilityService.URL,
		time.Duration(cfg.EligibilityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (EligibilityService=%s timeout=%ds)",
		cfg.EligibilityService.URL, cfg.EligibilityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		hasher,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		eligClient,
		hasher,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	lookupBookings := lookupBookingsHandler.NewHandler(bookingSvc, log)
	getAgenda := getAgendaHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateScheduleRule := updateScheduleRuleHandler.NewHandler(scheduleSvc, log)
	setDays := setDaysHandler.NewHandler(scheduleSvc, log)
	applyPreset := applyPresetHandler.NewHandler(scheduleSvc, log)
	replicateDay := replicateDayHandler.NewHandler(scheduleSvc, log)
	blockSlot := blockSlotHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Поиск активных бронирований по идентификатору
	api.HandleFunc("/bookings/lookup", lookupBookings.Handle).Methods(http.MethodPost)

	// Отмена бронирования владельцем
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (JWT cookie)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.JWTSecret, cfg.Auth.CookieName))

	// --- Расписание ---
	// Правило генерации слотов
	admin.HandleFunc("/schedule/rule", updateScheduleRule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/rule", updateScheduleRule.HandleUpdate).Methods(http.MethodPut)

	// Настройки дней за период
	admin.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Массовое сохранение настроек дней
	admin.HandleFunc("/days", setDays.Handle).Methods(http.MethodPut)

	// Раскладка пресета по датам
	admin.HandleFunc("/days/apply-preset", applyPreset.Handle).Methods(http.MethodPost)

	// Репликация настроек дня
	admin.HandleFunc("/days/{date}/replicate", replicateDay.Handle).Methods(http.MethodPost)

	// Блокировка и разблокировка слота
	admin.HandleFunc("/days/{date}/slots/{time}/block", blockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/days/{date}/slots/{time}/block", blockSlot.HandleUnblock).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Список бронирований за период
	admin.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)

	// Административная отмена бронирования
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	log.Info("Server stopped gracefully")
}
