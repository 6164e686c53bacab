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

	cancelAppointmentHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/cancel_appointment"
	checkoutHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/checkout"
	createAppointmentHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_available_slots"
	getCustomerAppointmentsHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_customer_appointments"
	getCustomerOrdersHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_customer_orders"
	getDoctorAppointmentsHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_doctor_appointments"
	getLowStockHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_low_stock"
	getLoyaltyAccountHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_loyalty_account"
	getOrderHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_order"
	getProductHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/get_product"
	listProductsHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/list_products"
	rescheduleAppointmentHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/PetCare-PortalService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	"github.com/m04kA/PetCare-PortalService/internal/config"
	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
	inventoryRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/inventory"
	loyaltyRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/loyalty"
	orderRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/order"
	productRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/product"
	appointmentsService "github.com/m04kA/PetCare-PortalService/internal/service/appointments"
	inventoryService "github.com/m04kA/PetCare-PortalService/internal/service/inventory"
	storeService "github.com/m04kA/PetCare-PortalService/internal/service/store"
	checkoutUC "github.com/m04kA/PetCare-PortalService/internal/usecase/checkout"
	createAppointmentUC "github.com/m04kA/PetCare-PortalService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/PetCare-PortalService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/PetCare-PortalService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/PetCare-PortalService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-PortalService/pkg/logger"
	"github.com/m04kA/PetCare-PortalService/pkg/metrics"
	"github.com/m04kA/PetCare-PortalService/pkg/simpletxmanager"
	"github.com/m04kA/PetCare-PortalService/pkg/txmanager"
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

	log.Info("Starting PetCare-PortalService...")
	log.Info("Configuration loaded from config.toml")

	// Сетка слотов и локация клиники
	location, err := time.LoadLocation(cfg.Slots.Location)
	if err != nil {
		log.Fatal("Failed to load location %s: %v", cfg.Slots.Location, err)
	}

	slotGrid, err := domain.NewSlotGrid(cfg.Slots.Times, location)
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}
	log.Info("Slot grid initialized: %d slots, location=%s", len(slotGrid.Times()), cfg.Slots.Location)

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

	// Redis для кэша ответов каталога (опционально)
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Cache.Addr, err)
		}
		defer redisClient.Close()
		log.Info("Response cache enabled (redis=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		loyaltyRepository     *loyaltyRepo.Repository
		inventoryRepository   *inventoryRepo.Repository
		productRepository     *productRepo.Repository
		orderRepository       *orderRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		loyaltyRepository = loyaltyRepo.NewRepository(wrappedDB)
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		loyaltyRepository = loyaltyRepo.NewRepository(db)
		inventoryRepository = inventoryRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	inventorySvc := inventoryService.NewService(inventoryRepository, log)
	storeSvc := storeService.NewService(
		productRepository,
		inventoryRepository,
		orderRepository,
		loyaltyRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		slotGrid,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		slotGrid,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		slotGrid,
		txMgr,
		log,
	)

	checkoutUseCase := checkoutUC.NewUseCase(
		productRepository,
		inventorySvc,
		loyaltyRepository,
		orderRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	getOrder := getOrderHandler.NewHandler(storeSvc, log)
	getCustomerOrders := getCustomerOrdersHandler.NewHandler(storeSvc, log)
	getLoyaltyAccount := getLoyaltyAccountHandler.NewHandler(storeSvc, log)
	listProducts := listProductsHandler.NewHandler(storeSvc, log)
	getProduct := getProductHandler.NewHandler(storeSvc, log)
	getLowStock := getLowStockHandler.NewHandler(inventorySvc, log)

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

	// Доступные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог зоомагазина; ответы одинаковы для всех, поэтому кэшируются
	catalog := api.PathPrefix("/products").Subrouter()
	if cfg.Cache.Enabled {
		catalog.Use(middleware.ResponseCache(redisClient, cfg.Cache.Prefix, cfg.Cache.TTL(), log))
	}
	catalog.HandleFunc("", listProducts.Handle).Methods(http.MethodGet)
	catalog.HandleFunc("/{productId}", getProduct.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// Рабочий экран врача
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)

	// --- Зоомагазин ---
	protected.HandleFunc("/orders", checkout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/orders", getCustomerOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/loyalty", getLoyaltyAccount.Handle).Methods(http.MethodGet)

	// --- Склад (страница фармацевта) ---
	protected.HandleFunc("/branches/{branchId}/low-stock", getLowStock.Handle).Methods(http.MethodGet)

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
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
