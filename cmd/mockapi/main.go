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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/wbonfim/DeliveryApp/configs"
	"github.com/wbonfim/DeliveryApp/internal/mockapi"
	"github.com/wbonfim/DeliveryApp/internal/services"
	"github.com/wbonfim/DeliveryApp/pkg/logger"
	"github.com/wbonfim/DeliveryApp/pkg/messaging"
)

func main() {
	// Load configuration
	config, err := configs.LoadConfig()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{
		Level:     config.Log.Level,
		Pretty:    config.Log.Pretty,
		Component: "mockapi",
	})

	// Set Gin mode
	gin.SetMode(config.MockAPI.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := newServer(ctx, config, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build API")
	}
	defer cleanup()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("prefix", config.MockAPI.Prefix).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// newServer wires the API, the order event publisher and /metrics. The
// returned cleanup closes the publisher.
func newServer(ctx context.Context, config *configs.Config, log zerolog.Logger) (*http.Server, func(), error) {
	// Order events go to Kafka when brokers are configured
	var publisher services.EventPublisher = messaging.NopPublisher{}
	cleanup := func() {}
	if len(config.Kafka.Brokers) > 0 {
		kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
		publisher = kafkaProducer
		cleanup = func() { _ = kafkaProducer.Close() }
		log.Info().Strs("brokers", config.Kafka.Brokers).Msg("publishing order events to kafka")
	}

	router, err := mockapi.New(ctx, mockapi.Config{
		Prefix:      config.MockAPI.Prefix,
		JWTSecret:   config.MockAPI.JWTSecret,
		TokenTTL:    config.MockAPI.TokenTTL,
		CORSOrigins: config.MockAPI.CORSOrigins,
		RateLimit:   config.MockAPI.RateLimit,
		RateBurst:   config.MockAPI.RateBurst,
		Publisher:   publisher,
		Logger:      log,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &http.Server{
		Addr:              ":" + config.MockAPI.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, cleanup, nil
}
