package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/kyc-co/synthforms/docs"
	"github.com/kyc-co/synthforms/internal/catalog"
	"github.com/kyc-co/synthforms/internal/config"
	"github.com/kyc-co/synthforms/internal/forms"
	"github.com/kyc-co/synthforms/internal/handlers"
	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/middleware"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/services"
)

// @title           Synthforms API
// @version         1.0
// @description     Generates synthetic Colombian KYC forms (employee knowledge and SAGRILAFT counterparty knowledge) for testing document pipelines.

// @host      localhost:8080
// @BasePath  /v1

// @tag.name forms
// @tag.description Whole synthetic forms

// @tag.name fields
// @tag.description Single synthetic fields

// @tag.name health
// @tag.description Health check operations

func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Error("failed to load config", zap.Error(err))
		os.Exit(1)
	}
	cfg := config.AppConfig

	ctx := context.Background()
	if err := observability.InitTracer(ctx, observability.TracerSettings{
		Enabled:     cfg.TracingEnabled,
		Endpoint:    cfg.TracingEndpoint,
		Environment: cfg.Environment,
		SampleRatio: cfg.TracingSampleRatio,
	}); err != nil {
		logging.Logger.Warn("tracing unavailable", zap.Error(err))
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		observability.ShutdownTracer(tctx)
	}()

	cat, err := catalog.Default()
	if err != nil {
		logging.Logger.Error("failed to load reference catalog", zap.Error(err))
		os.Exit(1)
	}

	checks := map[string]handlers.HealthCheckFunc{}
	serviceOpts := []services.ServiceOption{
		services.WithBatchLimits(cfg.MaxBatchSize, cfg.GenerateWorkers),
		services.WithServiceLogger(logging.Logger),
	}

	// Sinks are optional: generation works without any of them.
	var store, publisher services.Sink

	if cfg.CacheEnabled {
		redisClient, err := config.InitRedis(ctx, cfg)
		if err != nil {
			logging.Logger.Warn("redis unavailable, serving without cache", zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			serviceOpts = append(serviceOpts, services.WithCache(services.NewFormCache(redisClient, cfg.RedisTTL, logging.Logger)))
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	mongoClient, err := config.InitMongoDB(ctx, cfg)
	if err != nil {
		logging.Logger.Warn("mongodb unavailable, persist=true will be rejected", zap.Error(err))
	} else {
		defer disconnect(mongoClient)
		formStore := services.NewFormStore(config.MongoDB, cfg.EmployeeFormCollection, cfg.CounterpartyFormCollection, logging.Logger)
		if err := formStore.EnsureIndexes(ctx); err != nil {
			logging.Logger.Warn("failed to create form indexes", zap.Error(err))
		}
		store = formStore
		checks["mongodb"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) }
	}

	formPublisher, err := services.NewFormPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue, false, logging.Logger)
	if err != nil {
		logging.Logger.Warn("rabbitmq unavailable, publish=true will be rejected", zap.Error(err))
	} else {
		defer func() { _ = formPublisher.Close() }()
		publisher = formPublisher
	}

	builder := forms.NewBuilder(cat,
		forms.WithLogger(logging.Logger),
		forms.WithAgeRange(cfg.DefaultMinAge, cfg.DefaultMaxAge),
	)
	formService := services.NewFormService(builder, serviceOpts...)
	formHandlers := handlers.NewFormHandlers(formService, store, publisher, logging.Logger)
	healthHandlers := handlers.NewHealthHandlers(checks)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandlers.HealthCheck)

		v1.GET("/forms/employee", formHandlers.GetEmployeeForm)
		v1.GET("/forms/counterparty", formHandlers.GetCounterpartyForm)
		v1.POST("/forms/:type/batch", formHandlers.PostBatch)

		v1.GET("/fields/:field", formHandlers.GetField)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Error("failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logging.Logger.Info("server exited gracefully")
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logging.Logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
	}
}
