package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	"github.com/BruksfildServices01/business-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/business-booking/internal/db"
	"github.com/BruksfildServices01/business-booking/internal/events"
	"github.com/BruksfildServices01/business-booking/internal/logging"
	"github.com/BruksfildServices01/business-booking/internal/metrics"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
	"github.com/BruksfildServices01/business-booking/internal/routes"
	"github.com/BruksfildServices01/business-booking/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(cfg.LogLevel, cfg.LogPretty)
	timezone.SetDefault(cfg.DefaultTimezone)
	metrics.Register()

	db := dbpkg.NewDB(cfg)
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	// ------------------------------
	// Rate limiting (optional)
	// ------------------------------
	var limiter *middleware.RateLimiter
	rdb, err := middleware.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis configuration")
	}
	if rdb != nil {
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "booking:rl")
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_URL not set, rate limiting disabled")
	}

	// ------------------------------
	// Audit trail + order events
	// ------------------------------
	writers := []audit.Writer{audit.New(db)}
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	if publisher != nil {
		writers = append(writers, publisher)
		log.Info().Str("topic", cfg.KafkaOrdersTopic).Msg("publishing order events")
	}
	auditDispatcher := audit.NewDispatcher(writers...)

	// ------------------------------
	// HTTP
	// ------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Audit:   auditDispatcher,
		Limiter: limiter,
		Health:  sqlDB,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue not drained")
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("kafka writer close failed")
		}
	}
	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("database close failed")
	}
}
