package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Domenick1991/fanzone/api"
	"github.com/Domenick1991/fanzone/config"
)

const shutdownTimeout = 5 * time.Second

type routeRegistrar interface {
	Register(router *gin.RouterGroup, auth *api.Auth)
}

// Handlers groups everything mounted under /api.
type Handlers struct {
	Auth            *api.Auth
	Flights         routeRegistrar
	Hotels          routeRegistrar
	SuggestedHotels api.SuggestedHotelLister
	MatchTickets    routeRegistrar
	Activities      routeRegistrar
	Packages        *api.PackageHandler
	Bookings        *api.BookingHandler
	Users           *api.UserHandler
	Chat            *api.ChatHandler
}

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      NewRouter(cfg, handlers, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	}
}

func NewRouter(cfg *config.Config, handlers Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		SkipPaths:  []string{"/healthz", "/metrics"},
		Context:    traceFields,
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.HTTP.SwaggerDir != "" {
		r.StaticFile("/docs/openapi.json", filepath.Join(cfg.HTTP.SwaggerDir, "openapi.json"))
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))
	}

	group := r.Group("/api")
	handlers.Flights.Register(group.Group("/flights"), handlers.Auth)
	hotels := group.Group("/hotels")
	if handlers.SuggestedHotels != nil {
		api.RegisterSuggestedHotels(hotels, handlers.SuggestedHotels)
	}
	handlers.Hotels.Register(hotels, handlers.Auth)
	handlers.MatchTickets.Register(group.Group("/match-tickets"), handlers.Auth)
	handlers.Activities.Register(group.Group("/activities"), handlers.Auth)
	handlers.Packages.Register(group.Group("/packages"), handlers.Auth)
	handlers.Bookings.Register(group.Group("/bookings"), handlers.Auth)
	handlers.Users.Register(group, handlers.Auth)
	handlers.Chat.Register(group.Group("/chat"))

	return r
}

func traceFields(c *gin.Context) []zapcore.Field {
	span := trace.SpanFromContext(c.Request.Context()).SpanContext()
	if !span.IsValid() {
		return nil
	}
	return []zapcore.Field{
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	}
}
