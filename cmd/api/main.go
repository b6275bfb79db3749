package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"septic-canary/internal/config"
	"septic-canary/internal/handler"
	"septic-canary/internal/logging"
	"septic-canary/internal/middleware"
	"septic-canary/internal/repository"
	"septic-canary/internal/server"
	"septic-canary/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

//	@title						Septic Canary API
//	@version					1.0
//	@description				Looks up whether a property uses a septic sewage system via HouseCanary.
//	@BasePath					/
//	@securityDefinitions.basic	BasicAuth
func main() {
	// Load .env for local development; the process environment still wins.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found, relying on environment variables")
	}

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if err := logging.Setup(config.LogLevel, config.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("cannot configure logging")
	}
	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize layers
	repo := repository.NewRepository(
		config.HouseCanaryAPIBaseURL,
		config.HouseCanaryAPIKey,
		config.HouseCanaryAPISecret,
		repository.WithHTTPClient(&http.Client{Timeout: config.UpstreamTimeout}),
	)
	propertyService := service.NewPropertyService(repo, service.SystemClock{})
	propertyHandler := handler.NewPropertyHandler(propertyService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	var limiter *middleware.RateLimiter
	if config.RateLimitRPS > 0 {
		burst := config.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = middleware.NewRateLimiter(rate.Limit(config.RateLimitRPS), burst)
		g.Go(func() error {
			limiter.Cleanup(10*time.Minute, gctx.Done())
			return nil
		})
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server.NewRouter(config, propertyHandler, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info().
			Str("addr", config.ServerAddress).
			Bool("inbound_auth", config.InboundAuthEnabled()).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server exited")
}
