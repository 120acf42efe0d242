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

	approveReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getCourtReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_court_reservations"
	getCourtSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_court_slots"
	getFieldScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_field_schedule"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	listNotificationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_notifications"
	markNotificationReadHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/mark_notification_read"
	payReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/pay_reservation"
	rejectReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reject_reservation"
	updateFieldScheduleHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_field_schedule"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/dispatcher"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	courtRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/court"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
	paymentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/payments"
	"github.com/m04kA/SMC-ReservationService/internal/scheduler"
	availabilityService "github.com/m04kA/SMC-ReservationService/internal/service/availability"
	notificationsService "github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	approveReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
	cancelReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	expireReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/expire_reservation"
	payReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/pay_reservation"
	rejectReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/reject_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository  *reservationRepo.Repository
		courtRepository        *courtRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		paymentRepository      *paymentRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Контекст фоновых процессов: диспетчер, аудит, планировщик
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Шина событий переходов и ее подписчики
	bus := events.NewBus()

	notificationDispatcher := dispatcher.New(notificationRepository, log)
	go notificationDispatcher.Run(bgCtx, bus.Subscribe(64))

	auditObserver := dispatcher.NewAuditObserver(log)
	go auditObserver.Run(bgCtx, bus.Subscribe(64))

	log.Info("Transition event bus started (dispatcher + audit)")

	// Реестр платежных методов
	paymentRegistry := payments.NewRegistry()
	log.Info("Payment methods registered: %v", paymentRegistry.Methods())

	// Use case истечения и планировщик дедлайнов оплаты
	expireReservationUseCase := expireReservationUC.NewUseCase(
		reservationRepository,
		paymentRepository,
		bus,
		log,
	)

	expirationScheduler := scheduler.New(reservationRepository, expireReservationUseCase, log)
	expirationScheduler.SetIntervals(
		time.Duration(cfg.Scheduler.TickInterval)*time.Second,
		time.Duration(cfg.Scheduler.SweepInterval)*time.Second,
	)

	// Восстанавливаем дедлайны незавершенных оплат после рестарта
	if err := expirationScheduler.Recover(bgCtx); err != nil {
		log.Fatal("Failed to recover payment deadlines: %v", err)
	}
	go expirationScheduler.Run(bgCtx)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		courtRepository,
		scheduleRepository,
		txMgr,
		bus,
		log,
	)
	approveReservationUseCase := approveReservationUC.NewUseCase(
		reservationRepository,
		expirationScheduler,
		bus,
		log,
	)
	rejectReservationUseCase := rejectReservationUC.NewUseCase(
		reservationRepository,
		bus,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		paymentRepository,
		expirationScheduler,
		bus,
		log,
	)
	payReservationUseCase := payReservationUC.NewUseCase(
		reservationRepository,
		paymentRepository,
		paymentRegistry,
		expirationScheduler,
		expireReservationUseCase,
		bus,
		log,
	)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)
	availabilitySvc := availabilityService.NewService(reservationRepository, scheduleRepository, log)
	notificationsSvc := notificationsService.NewService(notificationRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, courtRepository, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	approveReservation := approveReservationHandler.NewHandler(approveReservationUseCase, log)
	rejectReservation := rejectReservationHandler.NewHandler(rejectReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	payReservation := payReservationHandler.NewHandler(payReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getCourtReservations := getCourtReservationsHandler.NewHandler(reservationsSvc, log)
	getCourtSlots := getCourtSlotsHandler.NewHandler(availabilitySvc, log)
	getFieldSchedule := getFieldScheduleHandler.NewHandler(scheduleSvc, log)
	updateFieldSchedule := updateFieldScheduleHandler.NewHandler(scheduleSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationsSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты корта на дату
	api.HandleFunc("/courts/{courtId}/slots", getCourtSlots.Handle).Methods(http.MethodGet)

	// Расписание площадки
	api.HandleFunc("/fields/{fieldId}/schedule", getFieldSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/payment", payReservation.Handle).Methods(http.MethodPost)

	// --- История пользователя ---
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Операторские выборки ---
	protected.HandleFunc("/courts/{courtId}/reservations", getCourtReservations.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием (для операторов) ---
	protected.HandleFunc("/fields/{fieldId}/schedule", updateFieldSchedule.Handle).Methods(http.MethodPut)

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

	// Сначала дожидаемся дозавершения запросов: их переходы еще публикуются в шину
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Затем закрываем шину: подписчики дочитывают буфер до закрытия канала
	bus.Close()
	bgCancel()
	if dropped := bus.Dropped(); dropped > 0 {
		log.Warn("Event bus dropped %d events during lifetime", dropped)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
