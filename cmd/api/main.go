package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/admin-api/internal/config"
	"github.com/petgroom/admin-api/internal/email"
	"github.com/petgroom/admin-api/internal/handler"
	appointmentHandler "github.com/petgroom/admin-api/internal/handler/appointment"
	clientHandler "github.com/petgroom/admin-api/internal/handler/client"
	statsHandler "github.com/petgroom/admin-api/internal/handler/stats"
	"github.com/petgroom/admin-api/internal/middleware"
	"github.com/petgroom/admin-api/internal/repository/memory"
	"github.com/petgroom/admin-api/internal/router"
	"github.com/petgroom/admin-api/internal/seed"
	appointmentService "github.com/petgroom/admin-api/internal/service/appointment"
	clientService "github.com/petgroom/admin-api/internal/service/client"
	notificationService "github.com/petgroom/admin-api/internal/service/notification"
	statsService "github.com/petgroom/admin-api/internal/service/stats"
	"github.com/petgroom/admin-api/pkg/logger"
	"github.com/petgroom/admin-api/pkg/messaging"
	redisbroker "github.com/petgroom/admin-api/pkg/messaging/redis"
	"github.com/petgroom/admin-api/pkg/metrics"
	"github.com/petgroom/admin-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logging.Pretty,
	})

	// Stores
	appointmentRepo := memory.NewAppointmentRepository()
	clientRepo := memory.NewClientRepository()

	m := metrics.NewMetrics("petgroom")
	v := validator.New()

	// Reminder channels are optional; the core emits events regardless.
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect reminder broker")
		}
		defer broker.Close()
	}

	var emailSvc email.Service
	if cfg.Email.Enabled {
		emailSvc = email.NewService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	}

	// Services
	notifSvc := notificationService.NewService(broker, emailSvc, m, appLogger)
	clientSvc := clientService.NewService(clientRepo, v, m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, clientRepo, notifSvc, v, m, appLogger)
	statsSvc := statsService.NewService(appointmentRepo, clientRepo)

	if cfg.Seed {
		if err := seed.Load(context.Background(), clientSvc, appointmentSvc); err != nil {
			log.Fatal().Err(err).Msg("failed to load seed data")
		}
		appLogger.Info("seed data loaded")
	}

	// Handlers
	h := handler.NewHandler()
	aptH := appointmentHandler.NewHandler(appointmentSvc)
	clientH := clientHandler.NewHandler(clientSvc)
	statsH := statsHandler.NewHandler(statsSvc)

	r := router.NewRouter(aptH, clientH, statsH, h, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORS:           middleware.DefaultCORSConfig(),
		MetricsPrefix:  "petgroom",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
}
