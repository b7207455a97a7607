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

	adminCreatePlaceHandler "github.com/mlegeay/examslots/internal/api/handlers/admin_create_place"
	adminMoveBookingHandler "github.com/mlegeay/examslots/internal/api/handlers/admin_move_booking"
	adminRemoveBookingHandler "github.com/mlegeay/examslots/internal/api/handlers/admin_remove_booking"
	bookPlaceHandler "github.com/mlegeay/examslots/internal/api/handlers/book_place"
	cancelReservationHandler "github.com/mlegeay/examslots/internal/api/handlers/cancel_reservation"
	checkPlaceHandler "github.com/mlegeay/examslots/internal/api/handlers/check_place"
	getAvailableDatesHandler "github.com/mlegeay/examslots/internal/api/handlers/get_available_dates"
	getReservationHandler "github.com/mlegeay/examslots/internal/api/handlers/get_reservation"
	"github.com/mlegeay/examslots/internal/api/middleware"
	"github.com/mlegeay/examslots/internal/config"
	archiveRepo "github.com/mlegeay/examslots/internal/infra/storage/archive"
	candidatRepo "github.com/mlegeay/examslots/internal/infra/storage/candidat"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
	inspecteurRepo "github.com/mlegeay/examslots/internal/infra/storage/inspecteur"
	placeRepo "github.com/mlegeay/examslots/internal/infra/storage/place"
	"github.com/mlegeay/examslots/internal/integrations/mailgateway"
	availabilityService "github.com/mlegeay/examslots/internal/service/availability"
	reservationsService "github.com/mlegeay/examslots/internal/service/reservations"
	bookPlaceUC "github.com/mlegeay/examslots/internal/usecase/book_place"
	cancelReservationUC "github.com/mlegeay/examslots/internal/usecase/cancel_reservation"
	"github.com/mlegeay/examslots/pkg/dbmetrics"
	"github.com/mlegeay/examslots/pkg/logger"
	"github.com/mlegeay/examslots/pkg/metrics"
	"github.com/mlegeay/examslots/pkg/simpletxmanager"
	"github.com/mlegeay/examslots/pkg/txmanager"
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

	log.Info("Starting examslots...")
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

	// Инициализируем клиент почтового шлюза
	mailClient := mailgateway.NewClient(
		cfg.MailGateway.URL,
		time.Duration(cfg.MailGateway.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Mail gateway client initialized (url=%s, timeout=%ds)",
		cfg.MailGateway.URL, cfg.MailGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		placeRepository      *placeRepo.Repository
		candidatRepository   *candidatRepo.Repository
		centreRepository     *centreRepo.Repository
		inspecteurRepository *inspecteurRepo.Repository
		archiveRepository    *archiveRepo.Repository
		txMgr                reservationsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		placeRepository = placeRepo.NewRepository(wrappedDB)
		candidatRepository = candidatRepo.NewRepository(wrappedDB)
		centreRepository = centreRepo.NewRepository(wrappedDB)
		inspecteurRepository = inspecteurRepo.NewRepository(wrappedDB)
		archiveRepository = archiveRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		placeRepository = placeRepo.NewRepository(db)
		candidatRepository = candidatRepo.NewRepository(db)
		centreRepository = centreRepo.NewRepository(db)
		inspecteurRepository = inspecteurRepo.NewRepository(db)
		archiveRepository = archiveRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		placeRepository,
		candidatRepository,
		centreRepository,
		inspecteurRepository,
		archiveRepository,
		mailClient,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		placeRepository,
		centreRepository,
		log,
	)

	// Инициализируем use cases
	bookPlaceUseCase := bookPlaceUC.NewUseCase(reservationSvc, log)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(reservationSvc, log)

	// Инициализируем handlers
	bookPlace := bookPlaceHandler.NewHandler(bookPlaceUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(availabilitySvc, log)
	checkPlace := checkPlaceHandler.NewHandler(availabilitySvc, log)
	adminCreatePlace := adminCreatePlaceHandler.NewHandler(reservationSvc, log)
	adminMoveBooking := adminMoveBookingHandler.NewHandler(reservationSvc, log)
	adminRemoveBooking := adminRemoveBookingHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Кандидатские маршруты (X-Candidat-ID)
	candidat := api.PathPrefix("/places").Subrouter()
	candidat.Use(middleware.Auth)
	candidat.HandleFunc("", getReservation.Handle).Methods(http.MethodGet)
	candidat.HandleFunc("", bookPlace.Handle).Methods(http.MethodPost)
	candidat.HandleFunc("", cancelReservation.Handle).Methods(http.MethodDelete)
	candidat.HandleFunc("/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	candidat.HandleFunc("/check", checkPlace.Handle).Methods(http.MethodGet)

	// Административные маршруты (X-Admin-Email)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth)
	admin.HandleFunc("/places", adminCreatePlace.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/places/move", adminMoveBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{candidatId}", adminRemoveBooking.Handle).Methods(http.MethodDelete)

	// Запускаем HTTP сервер
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on :%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	close(stopMetricsCh)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
