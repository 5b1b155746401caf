package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addBlockedRangeHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/add_blocked_range"
	cancelBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_client_bookings"
	getResourceBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_resource_bookings"
	getResourceScheduleHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_resource_schedule"
	removeBlockedRangeHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/remove_blocked_range"
	updateResourceScheduleHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/update_resource_schedule"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/config"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	blockedRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/blocked"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/storage/memory"
	resourceRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/resource"
	catalogClient "github.com/m04kA/SMC-BookingEngine/internal/integrations/catalog"
	bookingsService "github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
	"github.com/m04kA/SMC-BookingEngine/internal/service/commitguard"
	resourcesService "github.com/m04kA/SMC-BookingEngine/internal/service/resources"
	createBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// Хранилища, общие для Postgres и memory
type resourceStore interface {
	GetResource(ctx context.Context, id string) (*domain.Resource, error)
	UpdateSchedule(ctx context.Context, resource *domain.Resource) (*domain.Resource, error)
}

type blockedRangeStore interface {
	ListBlockedRanges(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BlockedRange, error)
	CreateBlockedRange(ctx context.Context, block domain.BlockedRange) (*domain.BlockedRange, error)
	DeleteBlockedRange(ctx context.Context, resourceID, id string) error
}

type bookingStore interface {
	InsertBookingIfFree(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
	ListClientBookings(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason *string) (*domain.Booking, error)
}

type serviceCatalog interface {
	GetService(ctx context.Context, serviceID string) (*domain.ServiceSpec, error)
}

type stores struct {
	resources resourceStore
	blocked   blockedRangeStore
	bookings  bookingStore
	catalog   serviceCatalog
	close     func()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-BookingEngine...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var st *stores
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		st, err = newMemoryStores(cfg, log)
	default:
		st, err = newPostgresStores(cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer st.close()

	// Атомарная фиксация бронирований
	guard := commitguard.NewGuard(
		st.bookings,
		time.Duration(cfg.Booking.CommitTimeoutMs)*time.Millisecond,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(st.bookings, st.resources, log)
	resourceSvc := resourcesService.NewService(st.resources, st.blocked, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		st.resources,
		st.blocked,
		st.bookings,
		st.catalog,
		metricsCollector,
		log,
	)

	createBookingUseCase, err := createBookingUC.NewUseCase(
		st.resources,
		st.blocked,
		st.bookings,
		st.catalog,
		guard,
		metricsCollector,
		log,
		createBookingUC.Options{
			InitialStatus:    cfg.Booking.InitialStatus,
			ConflictPrecheck: *cfg.Booking.ConflictPrecheck,
		},
	)
	if err != nil {
		log.Fatal("Failed to initialize create booking use case: %v", err)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(bookingSvc, log)
	getResourceSchedule := getResourceScheduleHandler.NewHandler(resourceSvc, log)
	updateResourceSchedule := updateResourceScheduleHandler.NewHandler(resourceSvc, log)
	addBlockedRange := addBlockedRangeHandler.NewHandler(resourceSvc, log)
	removeBlockedRange := removeBlockedRangeHandler.NewHandler(resourceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты и бронирования ---
	api.HandleFunc("/resources/{resourceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление ресурсом ---
	api.HandleFunc("/resources/{resourceId}/bookings", getResourceBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/schedule", getResourceSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/schedule", updateResourceSchedule.Handle).Methods(http.MethodPut)
	api.HandleFunc("/resources/{resourceId}/blocked-ranges", addBlockedRange.Handle).Methods(http.MethodPost)
	api.HandleFunc("/resources/{resourceId}/blocked-ranges/{blockId}", removeBlockedRange.Handle).Methods(http.MethodDelete)

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
		log.Info("Starting server on %s (storage=%s)", addr, cfg.Storage.Driver)
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

// newPostgresStores подключается к PostgreSQL; услуги берутся из каталога
func newPostgresStores(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*stores, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Метрики запросов и пула соединений (без метрик - только обертка)
	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	catalog := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	return &stores{
		resources: resourceRepo.NewRepository(wrappedDB, txMgr),
		blocked:   blockedRepo.NewRepository(wrappedDB),
		bookings:  bookingRepo.NewRepository(wrappedDB, txMgr),
		catalog:   catalog,
		close:     func() { _ = db.Close() },
	}, nil
}

// newMemoryStores хранилище в памяти процесса с начальными данными из seed файла.
// Услуги тоже берутся из seed файла, каталог не используется.
func newMemoryStores(cfg *config.Config, log *logger.Logger) (*stores, error) {
	store := memory.NewStore()

	if cfg.Storage.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.Storage.SeedFile)
		if err != nil {
			return nil, err
		}
		for _, r := range seed.Resources {
			resource, err := r.ToDomain()
			if err != nil {
				return nil, err
			}
			store.PutResource(resource)
		}
		for _, s := range seed.Services {
			store.PutService(s.ToDomain())
		}
		log.Info("Memory storage seeded from %s (resources=%d, services=%d)",
			cfg.Storage.SeedFile, len(seed.Resources), len(seed.Services))
	}

	return &stores{
		resources: store,
		blocked:   store,
		bookings:  store,
		catalog:   store,
		close:     func() {},
	}, nil
}
