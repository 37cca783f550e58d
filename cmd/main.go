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

	createBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/config"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/storage"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	outboxRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/outbox"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/mailer"
	userServiceClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
	"github.com/m04kA/SMC-WorkshopService/internal/notifier"
	bookingsService "github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	updateBookingUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/metrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WorkshopService/pkg/txmanager"
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

	log.Info("Starting SMC-WorkshopService...")
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

	// Применяем схему БД
	if err := storage.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to apply database schema: %v", err)
	}
	log.Info("Database schema applied")

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	mailSender := mailer.NewSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.FromEmail,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, SMTP=%s:%d)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.SMTP.Host, cfg.SMTP.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		outboxRepository  *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		outboxRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Запускаем воркер отправки уведомлений
	var notifierMetrics notifier.MetricsRecorder
	if cfg.Metrics.Enabled {
		notifierMetrics = metricsCollector
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	notifierWorker := notifier.NewWorker(
		notifier.Config{
			PollInterval: time.Duration(cfg.Notifier.PollIntervalSeconds) * time.Second,
			BatchSize:    cfg.Notifier.BatchSize,
			MaxAttempts:  cfg.Notifier.MaxAttempts,
		},
		outboxRepository,
		userClient,
		mailSender,
		notifierMetrics,
		log,
	)
	go notifierWorker.Run(workerCtx)

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

	// Все операции с бронированиями требуют аутентификации (X-User-ID).
	// Разделение прав клиент/администратор выполняется в сервисном слое
	// по способностям вызывающего
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований (администратор - все, клиент - свои)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Редактирование бронирования (только администратор)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Удаление бронирования (только администратор)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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

	// Останавливаем воркер уведомлений
	stopWorker()

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
