package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/config"
	"github.com/homelead/territory-api/internal/infra/cache"
	"github.com/homelead/territory-api/internal/infra/database"
	"github.com/homelead/territory-api/internal/infra/http/handlers"
	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/infra/integration/authapi"
	"github.com/homelead/territory-api/internal/infra/integration/payhub"
	"github.com/homelead/territory-api/internal/infra/integration/textgrid"
	"github.com/homelead/territory-api/internal/infra/notify"
	"github.com/homelead/territory-api/internal/infra/queue"
	"github.com/homelead/territory-api/internal/logging"
	"github.com/homelead/territory-api/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	if cfg.Auth.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}

	logger, err := logging.InitLogger(cfg.Logging.Level, cfg.Logging.Environment)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	territoryRepo := database.NewTerritoryRepository(db)
	leadRepo := database.NewLeadRepository(db)
	profileRepo := database.NewProfileRepository(db)
	requestRepo := database.NewTerritoryRequestRepository(db)
	waitlistRepo := database.NewWaitlistRepository(db)

	// Gateways and adapters
	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.Redis.CacheTTL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	payhubClient := payhub.NewClient(cfg.PayHub.APIKey, cfg.PayHub.BaseURL)
	authClient := authapi.NewClient(cfg.Auth.AdminAPIKey, cfg.Auth.AdminAPIURL)

	// Notification worker
	emailSender := notify.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	smsSender := notify.NewSMSSender(textgrid.NewClient(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber, cfg.SMS.BaseURL))
	dispatcher := notify.NewDispatcher(emailSender, smsSender)
	worker := queue.NewWorker(rabbitMQ.Ch, dispatcher)
	go worker.Start(queue.QueueName)

	// Use cases
	bootstrapUC := usecase.NewBootstrapProfileUseCase(profileRepo)
	checkUC := usecase.NewCheckAvailabilityUseCase(territoryRepo, availabilityCache)
	claimUC := usecase.NewClaimTerritoryUseCase(territoryRepo, requestRepo, leadRepo, bootstrapUC, availabilityCache, producer)
	leadUC := usecase.NewCreateLeadUseCase(leadRepo, territoryRepo, profileRepo, producer)
	deleteUC := usecase.NewDeleteUserUseCase(leadRepo, profileRepo, territoryRepo, requestRepo, authClient, availabilityCache)

	// Handlers
	availabilityHandler := handlers.NewAvailabilityHandler(checkUC)
	leadHandler := handlers.NewLeadHandler(leadUC, leadRepo, cfg.Intake.RatePerMinute, cfg.Intake.Burst)
	checkoutHandler := handlers.NewCheckoutHandler(payhubClient, requestRepo, checkUC, claimUC, cfg.PayHub.TerritoryPriceCents, cfg.PayHub.SuccessURL, cfg.PayHub.CancelURL)
	webhookHandler := handlers.NewWebhookHandler(claimUC, cfg.PayHub.WebhookSecret)
	waitlistHandler := handlers.NewWaitlistHandler(waitlistRepo)
	profileHandler := handlers.NewProfileHandler(bootstrapUC, profileRepo, territoryRepo)
	adminHandler := handlers.NewAdminHandler(claimUC, leadUC, deleteUC, territoryRepo, availabilityCache)
	healthHandler := handlers.NewHealthHandler(db, redisClient, rabbitMQ.Conn)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, profileRepo)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Public
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/availability/{zip}", availabilityHandler.Check)
	r.Post("/leads", leadHandler.Create)
	r.Post("/waitlist", waitlistHandler.Join)
	r.Post("/webhooks/payhub", webhookHandler.Handle)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/me/profile", profileHandler.Get)
		r.Put("/me/profile", profileHandler.Update)
		r.Get("/me/territories", profileHandler.ListTerritories)
		r.Get("/me/leads", leadHandler.ListMine)
		r.Patch("/leads/{id}", leadHandler.Update)
		r.Post("/checkout", checkoutHandler.Start)
		r.Get("/checkout/success", checkoutHandler.Complete)
	})

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/admin/availability/{zip}", availabilityHandler.CheckLedger)
		r.Post("/admin/territories", adminHandler.GrantTerritory)
		r.Delete("/admin/territories/{id}", adminHandler.ReleaseTerritory)
		r.Post("/admin/leads", adminHandler.CreateLead)
		r.Patch("/admin/leads/{id}", leadHandler.AdminUpdate)
		r.Post("/admin/leads/{id}/reassign", adminHandler.ReassignLead)
		r.Delete("/admin/users/{id}", adminHandler.DeleteUser)
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
