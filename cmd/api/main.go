package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/handlers"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
	"github.com/imrishuroy/go-storefront-orderflow/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logging.OrNop(cfg.Logger)))

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire application", zap.Error(err))
	}
	defer a.Close()

	logger.Info("storefront configuration",
		zap.String("api_url", cfg.BaseURL()),
		zap.String("dispatch_policy", cfg.DispatchPolicy),
		zap.Bool("relay_configured", cfg.Relay.Complete()),
		zap.Bool("ledger", cfg.SubmissionsTable != ""),
		zap.Bool("followups", cfg.FollowUpQueueURL != ""),
		zap.Bool("kafka", cfg.KafkaBrokers != ""),
		zap.Bool("run_local", cfg.RunLocal))

	r := setupRouter(a.handlers)

	// if RUN_LOCAL=true, run a local HTTP server for development.
	if cfg.RunLocal {
		if err := runLocal(cfg, r, logger); err != nil {
			logger.Fatal("local server failed", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req lambdaevents.APIGatewayProxyRequest) (lambdaevents.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

// runLocal serves r behind CORS until SIGINT/SIGTERM, then drains.
func runLocal(cfg *config.Config, r http.Handler, logger *zap.Logger) error {
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader, handlers.FormIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("running local server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down local server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
