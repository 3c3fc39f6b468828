package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"bloodbank/internal/api/handlers"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/api/routes"
	"bloodbank/internal/logger"
	"bloodbank/internal/metrics"
	"bloodbank/internal/middleware"
	"bloodbank/internal/utils"
	"bloodbank/internal/utils/mailing"
	"bloodbank/internal/utils/storage"
	"bloodbank/pkg/bloodbank"
	"bloodbank/pkg/bloodrequest"
	"bloodbank/pkg/dashboard"
	"bloodbank/pkg/donation"
	"bloodbank/pkg/donor"
	"bloodbank/pkg/jwt"
	"bloodbank/pkg/notification"
	"bloodbank/pkg/transaction"
	"bloodbank/pkg/user"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Repositories groups the gorm-backed repositories.
type Repositories struct {
	Users        user.UserRepository
	Donors       donor.DonorRepository
	Donations    donation.DonationRepository
	BloodBanks   bloodbank.BloodBankRepository
	BloodRequest bloodrequest.BloodRequestRepository
	Dashboard    dashboard.DashboardRepository
	Transactor   transaction.Transactor
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:        user.NewUserRepository(db),
		Donors:       donor.NewDonorRepository(db),
		Donations:    donation.NewDonationRepository(db),
		BloodBanks:   bloodbank.NewBloodBankRepository(db),
		BloodRequest: bloodrequest.NewBloodRequestRepository(db),
		Dashboard:    dashboard.NewDashboardRepository(db),
		Transactor:   transaction.NewTransactor(db),
	}
}

type Services struct {
	Repositories Repositories
	Metrics      *metrics.Metrics
	JWT          jwt.JWTService

	User         user.UserService
	Donor        donor.DonorService
	Donation     donation.DonationService
	BloodBank    bloodbank.BloodBankService
	BloodRequest bloodrequest.BloodRequestService
	Dashboard    dashboard.DashboardService
}

// NewServices wires every service from configuration. S3 and SMTP are
// optional: without them photo upload fails and notifications are skipped.
func NewServices(ctx context.Context, db *gorm.DB, log *logger.Logger, reg prometheus.Registerer) (*Services, error) {
	utils.InitValidator()
	validate := utils.Validate

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		return nil, fmt.Errorf("init s3: %w", err)
	}
	if s3 == nil {
		log.Warn("AWS_S3_BUCKET not set, profile photo upload disabled")
	}

	var mailer mailing.Mailer
	if utils.GetConfig("SMTP_HOST") != "" {
		mailer = mailing.NewMailer(mailing.LoadMailConfig())
	} else {
		log.Warn("SMTP_HOST not set, notifications disabled")
	}

	m := metrics.New(reg)
	repos := NewRepositories(db)
	jwtService := jwt.NewJWTService(secret)
	notifier := notification.NewNotifier(mailer, log, m)

	return &Services{
		Repositories: repos,
		Metrics:      m,
		JWT:          jwtService,
		User:         user.NewUserService(repos.Users, jwtService, validate, m),
		Donor:        donor.NewDonorService(repos.Donors, repos.Transactor, validate, s3, m),
		Donation: donation.NewDonationService(
			repos.Donations,
			repos.Donors,
			repos.BloodBanks,
			repos.Transactor,
			validate,
			notifier,
			m,
		),
		BloodBank: bloodbank.NewBloodBankService(repos.BloodBanks, repos.Transactor, validate, m),
		BloodRequest: bloodrequest.NewBloodRequestService(
			repos.BloodRequest,
			repos.Transactor,
			validate,
			notifier,
			m,
			utils.GetConfig("ADMIN_EMAIL"),
		),
		Dashboard: dashboard.NewDashboardService(
			repos.Dashboard,
			repos.Donors,
			repos.Donations,
			repos.BloodRequest,
			repos.BloodBanks,
			repos.Transactor,
			m,
		),
	}, nil
}

// limiterStorage returns redis-backed limiter storage when REDIS_ADDR is set.
// A nil storage makes the limiter fall back to process memory.
func limiterStorage(ctx context.Context, log *logger.Logger) (fiber.Storage, error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	store := middleware.NewRedisStorage(middleware.NewRedisClient(addr, utils.GetConfig("REDIS_PASSWORD")))
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.WithFields(map[string]any{"addr": addr}).Info("rate limiter using redis")
	return store, nil
}

func NewApp(ctx context.Context, db *gorm.DB, log *logger.Logger) (*fiber.App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services, err := NewServices(ctx, db, log, registry)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "bloodbank",
		ErrorHandler: presenters.ErrorHandler,
	})

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	store, err := limiterStorage(ctx, log)
	if err != nil {
		return nil, err
	}
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOWED_ORIGINS"), store)
	app.Use(middlewares.RateLimiter(utils.GetConfigInt("RATE_LIMIT_MAX", 20), time.Second))

	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(services.User),
		DonorHandler:        handlers.NewDonorHandler(services.Donor),
		DonationHandler:     handlers.NewDonationHandler(services.Donation),
		BloodBankHandler:    handlers.NewBloodBankHandler(services.BloodBank),
		BloodRequestHandler: handlers.NewBloodRequestHandler(services.BloodRequest),
		DashboardHandler:    handlers.NewDashboardHandler(services.Dashboard),
		Middleware:          middlewares,
		JWTService:          services.JWT,
		Gatherer:            registry,
	}
	routesConfig.Setup()
	return app, nil
}
