package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/config"
	"github.com/fysiofunnel/api/internal/infra/database"
	"github.com/fysiofunnel/api/internal/infra/http/handlers"
	"github.com/fysiofunnel/api/internal/infra/http/middleware"
	"github.com/fysiofunnel/api/internal/infra/integration/virtuagym"
	"github.com/fysiofunnel/api/internal/infra/mail"
	"github.com/fysiofunnel/api/internal/infra/queue"
	"github.com/fysiofunnel/api/internal/token"
	"github.com/fysiofunnel/api/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	eventRepo := database.NewEventRepository(db)
	practiceRepo := database.NewPracticeRepository(db)

	// 2. Action token codec
	secret := cfg.TokenSecret
	if secret == "" {
		secret = "fysiofunnel-dev-secret"
		log.Warn().Msg("ACTION_TOKEN_SECRET not set, using insecure development secret")
	}
	codec := token.New(secret, cfg.TokenStrict)
	if cfg.TokenStrict {
		log.Info().Msg("strict action token verification enabled")
	}

	// 3. Mail and notification dispatch. With a broker the api publishes
	// and the worker mails, without one mail goes out inline.
	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	var notifier usecase.NotifierInterface
	var rabbitConn *amqp.Connection
	if cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq connection failed")
		}
		defer rabbit.Close()

		notifier = queue.NewProducer(rabbit.Conn, rabbit.Ch)
		rabbitConn = rabbit.Conn

		worker := queue.NewWorker(rabbit.Ch, sender)
		go worker.Start(queue.QueueName)
	} else {
		log.Info().Msg("AMQP_URL not set, sending notification mail inline")
		notifier = mail.NewDirectNotifier(sender)
	}

	// 4. Membership platform client for the registered stage
	gym := virtuagym.NewClient(cfg.VirtuagymBaseURL, cfg.VirtuagymAPIKey, cfg.VirtuagymClubSecret, cfg.VirtuagymClubID)
	if !gym.Configured() {
		log.Info().Msg("virtuagym credentials not set, registration sync disabled")
	}

	// 5. UseCases
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, eventRepo, practiceRepo, codec, notifier, cfg.PublicBaseURL)
	recordUC := usecase.NewRecordEventUseCase(eventRepo)
	metricsUC := usecase.NewFunnelMetricsUseCase(eventRepo)
	actionUC := usecase.NewLeadActionUseCase(leadRepo, eventRepo, practiceRepo, codec, notifier)
	syncUC := usecase.NewSyncRegistrationsUseCase(leadRepo, eventRepo, gym)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(captureUC)
	eventHandler := handlers.NewEventHandler(recordUC)
	dashboardHandler := handlers.NewDashboardHandler(metricsUC, leadRepo)
	actionHandler := handlers.NewActionHandler(actionUC)
	syncHandler := handlers.NewSyncHandler(syncUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.MailHost)

	if cfg.AdminAPIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY not set, dashboard api is locked")
	}

	// 7. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-Key"},
	}))

	leadLimiter := middleware.NewRateLimiter(10, time.Minute)
	eventLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.With(leadLimiter.Handler).Post("/leads", leadHandler.Handle)
	r.With(eventLimiter.Handler).Post("/events", eventHandler.Handle)
	r.Get("/lead-action", actionHandler.Handle)
	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminAPIKey))
		r.Get("/metrics", dashboardHandler.HandleMetrics)
		r.Get("/series", dashboardHandler.HandleSeries)
		r.Get("/events", dashboardHandler.HandleEvents)
		r.Get("/leads", dashboardHandler.HandleLeads)
		r.Post("/sync/registrations", syncHandler.Handle)
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🔥 fysiofunnel api running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
