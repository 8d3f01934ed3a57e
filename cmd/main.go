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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	adminDashboardHandler "github.com/smilehub/clinic-booking/internal/api/handlers/admin_dashboard"
	createAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/get_appointment"
	getBookedSlotsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/get_booked_slots"
	healthHandler "github.com/smilehub/clinic-booking/internal/api/handlers/health"
	listAppointmentsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/list_appointments"
	streamAppointmentsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/stream_appointments"
	updateStatusHandler "github.com/smilehub/clinic-booking/internal/api/handlers/update_status"
	"github.com/smilehub/clinic-booking/internal/api/middleware"
	"github.com/smilehub/clinic-booking/internal/auth"
	"github.com/smilehub/clinic-booking/internal/config"
	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/infra/feed"
	"github.com/smilehub/clinic-booking/internal/infra/migrator"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/internal/integrations/mailer"
	"github.com/smilehub/clinic-booking/internal/notification"
	appointmentsService "github.com/smilehub/clinic-booking/internal/service/appointments"
	createAppointmentUC "github.com/smilehub/clinic-booking/internal/usecase/create_appointment"
	getBookedSlotsUC "github.com/smilehub/clinic-booking/internal/usecase/get_booked_slots"
	updateStatusUC "github.com/smilehub/clinic-booking/internal/usecase/update_status"
	"github.com/smilehub/clinic-booking/pkg/dbmetrics"
	"github.com/smilehub/clinic-booking/pkg/logger"
	"github.com/smilehub/clinic-booking/pkg/metrics"
	"github.com/smilehub/clinic-booking/pkg/txmanager"
)

const rateLimiterCleanupInterval = 5 * time.Minute

// EventPublisher общий интерфейс Redis и Nop публикаторов
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
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

	log.Info("Starting clinic-booking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены). nil коллектор безопасен
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(cfg.Database.DSN(), log)
		if err != nil {
			log.Fatal("Failed to create migrator: %v", err)
		}
		if err := m.Up(); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		_ = m.Close()
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Лента изменений (Redis pub/sub)
	var (
		publisher  EventPublisher = feed.NopPublisher{}
		subscriber *feed.Subscriber
	)
	if cfg.Redis.Enabled {
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
			log.Error("Redis unavailable at %s, live updates disabled: %v", cfg.Redis.Addr, err)
		} else {
			publisher = feed.NewPublisher(redisClient, cfg.Redis.Channel, metricsCollector, log)
			subscriber = feed.NewSubscriber(redisClient, cfg.Redis.Channel, log)
			log.Info("Change feed enabled (redis=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
		}
	}

	// Почта
	sender, err := newSender(cfg.Mailer, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}
	renderer, err := notification.NewRenderer(notification.Branding{
		Name:       cfg.Clinic.Name,
		Address:    cfg.Clinic.Address,
		Phone:      cfg.Clinic.Phone,
		Email:      cfg.Clinic.Email,
		BookingURL: cfg.Clinic.WebsiteURL,
	})
	if err != nil {
		log.Fatal("Failed to parse email templates: %v", err)
	}
	dispatcher := notification.NewDispatcher(sender, renderer, metricsCollector,
		time.Duration(cfg.Mailer.Timeout)*time.Second)
	log.Info("Mailer initialized (provider=%s)", cfg.Mailer.Provider)

	schedule := domain.ClinicSchedule{
		Slots:              domain.SlotLabels(cfg.Clinic.TimeSlots),
		Location:           cfg.Clinic.Location(),
		ClosedWeekdays:     cfg.Clinic.Weekdays(),
		AdvanceBookingDays: cfg.Clinic.AdvanceBookingDays,
	}

	// Инициализируем репозитории и сервисы
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	apptSvc := appointmentsService.NewService(appointmentRepository, publisher, schedule, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		txMgr,
		dispatcher,
		publisher,
		metricsCollector,
		schedule,
		log,
	)
	getBookedSlotsUseCase := getBookedSlotsUC.NewUseCase(appointmentRepository, schedule, log)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		dispatcher,
		publisher,
		metricsCollector,
		updateStatusUC.Policy{
			RequireCancellationReason: cfg.Lifecycle.RequireCancellationReason,
			DefaultCancellationReason: cfg.Lifecycle.DefaultCancellationReason,
		},
		log,
	)

	// Инициализируем handlers
	routes := routeHandlers{
		createAppointment: createAppointmentHandler.NewHandler(createAppointmentUseCase, log),
		manualAppointment: createAppointmentHandler.NewManualHandler(createAppointmentUseCase, log),
		listAppointments:  listAppointmentsHandler.NewHandler(apptSvc, log),
		getAppointment:    getAppointmentHandler.NewHandler(apptSvc, log),
		updateStatus:      updateStatusHandler.NewHandler(updateStatusUseCase, log),
		deleteAppointment: deleteAppointmentHandler.NewHandler(apptSvc, log),
		getBookedSlots:    getBookedSlotsHandler.NewHandler(getBookedSlotsUseCase, log),
		adminDashboard:    adminDashboardHandler.NewHandler(apptSvc, log),
	}
	if subscriber != nil {
		routes.streamAppointments = streamAppointmentsHandler.NewHandler(apptSvc, subscriber, log)
	}

	authenticator := auth.NewAuthenticator(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		cfg.Auth.OperatorEmails,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	routes.operator = middleware.OperatorAuth(authenticator, log)
	routes.limit = func(h http.Handler) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Proxies(),
			log,
		)
		go rl.RunCleanup(rateLimiterCleanupInterval, stopCh)
		routes.limit = rl.Limit
		log.Info("Rate limiting enabled for public booking (%.0f req/min, burst %d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", healthHandler.NewHandler(wrappedDB, log).Handle).Methods(http.MethodGet)

	// API под /api/v1 и те же пути от корня для старых клиентов
	routes.register(r.PathPrefix("/api/v1").Subrouter())
	routes.register(r)

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

	// Останавливаем фоновые задачи: сбор метрик пула и очистку лимитеров
	close(stopCh)

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

// newSender выбирает почтовый транспорт по mailer.provider
func newSender(cfg config.MailerConfig, log *logger.Logger) (notification.Notifier, error) {
	switch cfg.Provider {
	case "sendgrid":
		return mailer.NewSendGridSender(mailer.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
			Host:      cfg.SendGridHost,
		}, log)
	case "ses":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mailer.NewSESSenderFromEnv(ctx, mailer.SESConfig{
			Region:    cfg.SESRegion,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, log)
	default:
		return mailer.NewLogSender(log), nil
	}
}
