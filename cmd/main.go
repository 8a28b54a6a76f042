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

	changeStatusHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/change_reservation_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/check_table_availability"
	createReservationHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/create_reservation"
	createTableHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/create_table"
	deleteReservationHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/delete_reservation"
	deleteTableHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/delete_table"
	findBestSlotHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/find_best_slot"
	findCandidatesHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/find_candidate_tables"
	findNearestSlotHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/find_nearest_slot"
	getReservationHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/get_reservation"
	getTableHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/get_table"
	getTableStatisticsHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/get_table_statistics"
	listReservationsHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/list_reservations"
	listTablesHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/list_tables"
	updateReservationHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/update_reservation"
	updateTableHandler "github.com/m04kA/SMC-TableService/internal/api/handlers/update_table"
	"github.com/m04kA/SMC-TableService/internal/api/middleware"
	"github.com/m04kA/SMC-TableService/internal/config"
	"github.com/m04kA/SMC-TableService/internal/domain"
	clientRepo "github.com/m04kA/SMC-TableService/internal/infra/storage/client"
	reservationRepo "github.com/m04kA/SMC-TableService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-TableService/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-TableService/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-TableService/internal/service/reservations"
	"github.com/m04kA/SMC-TableService/internal/service/slots"
	"github.com/m04kA/SMC-TableService/internal/service/tablestatus"
	tablesService "github.com/m04kA/SMC-TableService/internal/service/tables"
	changeStatusUC "github.com/m04kA/SMC-TableService/internal/usecase/change_reservation_status"
	createReservationUC "github.com/m04kA/SMC-TableService/internal/usecase/create_reservation"
	updateReservationUC "github.com/m04kA/SMC-TableService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-TableService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableService/pkg/logger"
	"github.com/m04kA/SMC-TableService/pkg/metrics"
	"github.com/m04kA/SMC-TableService/pkg/tablelock"
	"github.com/m04kA/SMC-TableService/pkg/txmanager"
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

	log.Info("Starting SMC-TableService...")

	// Метрики (nil, если выключены: все методы Metrics безопасны для nil)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	tableRepository := tableRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	// Блокировки столов
	var baseLocker tablelock.Locker
	switch cfg.Locks.Mode {
	case config.LockModeRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		baseLocker = tablelock.NewRedisLocker(redisClient, tablelock.RedisOptions{
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       time.Duration(cfg.Locks.TTLMs) * time.Millisecond,
		})
		log.Info("Table locks: redis (addr=%s)", cfg.Redis.Addr)
	default:
		baseLocker = tablelock.NewLocalLocker()
		log.Info("Table locks: in-process")
	}
	locker := tablelock.WithTimeout(baseLocker, time.Duration(cfg.Locks.TimeoutMs)*time.Millisecond)

	// Публикация событий (после commit, ошибки брокера только логируются)
	type EventPublisher interface {
		Publish(ctx context.Context, event domain.ReservationEvent)
	}
	var publisher EventPublisher = eventbus.NoopPublisher{}
	if cfg.Events.Enabled {
		busPublisher := eventbus.NewPublisher(cfg.Events.URL, cfg.Events.Queue, log)
		defer busPublisher.Close()
		publisher = busPublisher
		log.Info("Reservation events are published to queue %s", cfg.Events.Queue)
	}

	// Сервисы движка доступности
	checker := availability.NewChecker(reservationRepository, tableRepository, metricsCollector, log)
	searcher := slots.NewSearcher(checker, metricsCollector, log)
	projector := tablestatus.NewProjector(
		tableRepository,
		reservationRepository,
		&tablestatus.RealTimeProvider{},
		metricsCollector,
		log,
	)

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		projector,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	tableSvc := tablesService.NewService(
		tableRepository,
		reservationRepository,
		locker,
		txMgr,
		log,
	)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		clientRepository,
		checker,
		projector,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		checker,
		projector,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		reservationRepository,
		projector,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checker, log)
	findCandidates := findCandidatesHandler.NewHandler(checker, log)
	findNearestSlot := findNearestSlotHandler.NewHandler(searcher, log)
	findBestSlot := findBestSlotHandler.NewHandler(searcher, reservationSvc, log)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)

	listTables := listTablesHandler.NewHandler(tableSvc, log)
	getTable := getTableHandler.NewHandler(tableSvc, log)
	createTable := createTableHandler.NewHandler(tableSvc, log)
	updateTable := updateTableHandler.NewHandler(tableSvc, log)
	deleteTable := deleteTableHandler.NewHandler(tableSvc, log)
	getTableStatistics := getTableStatisticsHandler.NewHandler(tableSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность и подбор слотов ---
	api.HandleFunc("/tables/{tableId:[0-9]+}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/candidate-tables", findCandidates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/nearest", findNearestSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/best", findBestSlot.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}", deleteReservation.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// --- Столы ---
	api.HandleFunc("/tables/statistics", getTableStatistics.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tables", listTables.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tables", createTable.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tables/{tableId:[0-9]+}", getTable.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tables/{tableId:[0-9]+}", updateTable.Handle).Methods(http.MethodPut)
	api.HandleFunc("/tables/{tableId:[0-9]+}", deleteTable.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
