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

	cancelSubscriptionHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/cancel_subscription"
	completeAppointmentHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/complete_appointment"
	createBookingHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/create_booking"
	createSubscriptionHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/create_subscription"
	deleteAppointmentHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/delete_appointment"
	getActiveSubscriptionsHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/get_active_subscriptions"
	getAppointmentHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/get_available_slots"
	getDayScheduleHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/get_day_schedule"
	updateSubscriptionHandler "github.com/riquelima/SandyPetShop-BookingService/internal/api/handlers/update_subscription"
	"github.com/riquelima/SandyPetShop-BookingService/internal/api/middleware"
	"github.com/riquelima/SandyPetShop-BookingService/internal/capacity"
	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/config"
	appointmentRepo "github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/appointment"
	subscriptionRepo "github.com/riquelima/SandyPetShop-BookingService/internal/infra/storage/subscription"
	notifierClient "github.com/riquelima/SandyPetShop-BookingService/internal/integrations/notifier"
	"github.com/riquelima/SandyPetShop-BookingService/internal/pricing"
	"github.com/riquelima/SandyPetShop-BookingService/internal/recurrence"
	appointmentsService "github.com/riquelima/SandyPetShop-BookingService/internal/service/appointments"
	subscriptionsService "github.com/riquelima/SandyPetShop-BookingService/internal/service/subscriptions"
	cancelSubscriptionUC "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/cancel_subscription"
	createBookingUC "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/create_booking"
	createSubscriptionUC "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/create_subscription"
	getAvailableSlotsUC "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/get_available_slots"
	updateSubscriptionUC "github.com/riquelima/SandyPetShop-BookingService/internal/usecase/update_subscription"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/dbmetrics"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/logger"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/metrics"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/simpletxmanager"
	"github.com/riquelima/SandyPetShop-BookingService/pkg/txmanager"
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

	log.Info("Starting SandyPetShop-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (URL=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем доменные компоненты движка бронирования
	clock := civiltime.NewClock(cfg.Booking.UTCOffsetHours)
	serviceCatalog := catalog.Default()
	pricingEngine := pricing.NewEngine(serviceCatalog, cfg.Booking.PackageDiscount)
	expander := recurrence.NewExpander(clock)
	checker := capacity.NewChecker(cfg.Booking.SlotCapacity)
	log.Info("Booking engine initialized (capacity=%d, discount=%.2f, utc_offset=%d)",
		cfg.Booking.SlotCapacity, cfg.Booking.PackageDiscount, cfg.Booking.UTCOffsetHours)

	// Инициализируем репозитории (с метриками или без)
	var (
		apptRepository *appointmentRepo.Repository
		subRepository  *subscriptionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		subRepository = subscriptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		subRepository = subscriptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.New(
		apptRepository,
		notifier,
		clock,
		serviceCatalog,
		log,
	)

	subscriptionsSvc := subscriptionsService.New(
		subRepository,
		serviceCatalog,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		apptRepository,
		pricingEngine,
		checker,
		clock,
		txMgr,
		log,
	)

	createSubscriptionUseCase := createSubscriptionUC.NewUseCase(
		apptRepository,
		subRepository,
		pricingEngine,
		expander,
		checker,
		clock,
		txMgr,
		log,
	)

	updateSubscriptionUseCase := updateSubscriptionUC.NewUseCase(
		apptRepository,
		subRepository,
		pricingEngine,
		expander,
		checker,
		clock,
		txMgr,
		log,
	)

	cancelSubscriptionUseCase := cancelSubscriptionUC.NewUseCase(
		apptRepository,
		subRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		apptRepository,
		clock,
		cfg.Booking.SlotCapacity,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createSubscription := createSubscriptionHandler.NewHandler(createSubscriptionUseCase, log)
	updateSubscription := updateSubscriptionHandler.NewHandler(updateSubscriptionUseCase, log)
	cancelSubscription := cancelSubscriptionHandler.NewHandler(cancelSubscriptionUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(appointmentsSvc, log)
	getActiveSubscriptions := getActiveSubscriptionsHandler.NewHandler(subscriptionsSvc, log)

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
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Расписание дня ---
	protected.HandleFunc("/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// --- Абонементы ---
	protected.HandleFunc("/subscriptions", createSubscription.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/subscriptions", getActiveSubscriptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/subscriptions/{subscriptionId}", updateSubscription.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/subscriptions/{subscriptionId}/cancel", cancelSubscription.Handle).Methods(http.MethodPatch)

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
