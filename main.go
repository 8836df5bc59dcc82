package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fedex-shipping-service/awsutil"
	"fedex-shipping-service/controllers"
	"fedex-shipping-service/currency"
	"fedex-shipping-service/database"
	"fedex-shipping-service/providers"
	"fedex-shipping-service/repository"
	"fedex-shipping-service/routes"
	servicepkg "fedex-shipping-service/services"
	"fedex-shipping-service/units"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	// AWS clients
	awsCfg, awsErr := awsutil.LoadAWSConfig(context.Background())
	var snsClient awsutil.SNSPublisher
	var metrics awsutil.MetricsPublisher

	if awsErr != nil {
		logger.Warn("AWS config unavailable, SNS and metrics disabled", zap.Error(awsErr))
	} else {
		snsClient = awsutil.NewSNSClient(awsCfg)
		metrics = awsutil.NewMetricsClient(awsCfg)
	}

	// Carrier transport and DI chain
	carrierCfg := cfg.CarrierConfig()
	fedexClient := providers.NewFedExClient(carrierCfg)
	quoteRepo := repository.NewGormQuoteRepository(database.DB)
	converter := currency.NewFixedRateConverter(cfg.PrimaryCurrency, cfg.CurrencyRates)
	shippingService := servicepkg.NewShippingService(
		quoteRepo,
		fedexClient,
		converter,
		servicepkg.QuoteConfig{
			Carrier:       carrierCfg,
			Strategy:      cfg.PackingStrategy(),
			WeightUnit:    units.Unit(cfg.WeightUnit),
			DimensionUnit: units.Unit(cfg.DimensionUnit),
			PackageVolume: cfg.PackingPackageVolume,
		},
		snsClient,
		cfg.ShippingSNSTopicARN,
		metrics,
		cfg.OriginAddress(),
		logger,
	)
	shippingController := controllers.NewShippingController(shippingService)

	r := gin.New()

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "fedex-shipping-service"})
	})

	routes.RegisterShippingRoutes(r, shippingController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Shipping service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down shipping service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
