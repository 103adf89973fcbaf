package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailcore/pkg/logger"
	"retailcore/store-service/internal/app/store/bootstrap"
	"retailcore/store-service/internal/app/store/config"
	"retailcore/store-service/internal/app/store/handler"
	"retailcore/store-service/internal/app/store/processor"
	"retailcore/store-service/internal/app/store/render"
	"retailcore/store-service/internal/app/store/service"
	"retailcore/store-service/internal/app/store/util"
)

const serviceName = "store-service"

func main() {
	// === КОНФИГУРАЦИЯ И ЛОГГЕР ===
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(serviceName, cfg.App.LogLevel)
	if cfg.App.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.App.LogstashAddr, serviceName, cfg.App.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.App.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	// === ВНЕШНИЕ ЗАВИСИМОСТИ (опциональные) ===
	var publisher util.MessagePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, serviceName)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	}

	var cache util.ReportCache
	if cfg.Redis.Enabled {
		redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, serviceName)
		if err != nil {
			// Без кеша отчёты просто генерируются каждый раз
			logger.Warn().Err(err).Msg("Redis unavailable, report cache disabled")
		} else {
			defer redisClient.Close()
			cache = redisClient
			logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")
		}
	}

	// === ЯДРО: КАТАЛОГ, ПОКУПАТЕЛИ, ТРАНЗАКЦИИ ===
	catalog := service.NewProductCatalog()
	directory := service.NewCustomerDirectory()
	transactions := service.NewTransactionProcessor(catalog, directory, publisher)
	pricing := service.NewPricingService(catalog, publisher)
	reports := service.NewReportService(catalog, directory, cache, cfg.App.ReportCacheTTL)

	receipts, err := render.NewReceiptFormatter(cfg.App.ReceiptFormat)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure receipt format")
	}

	if cfg.App.SeedData || cfg.App.Mode == config.ModeDemo {
		if err := bootstrap.Seed(catalog, directory); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed store")
		}
		logger.Info().Int("products", len(catalog.ListAll())).Int("customers", len(directory.ListAll())).
			Msg("Seeded demo data")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.App.Mode == config.ModeDemo {
		demo := &bootstrap.Demo{
			Catalog:   catalog,
			Directory: directory,
			Processor: transactions,
			Reports:   reports,
			Receipts:  receipts,
			Out:       os.Stdout,
		}
		if err := demo.Run(ctx, bootstrap.DefaultPurchases, cfg.App.Reports); err != nil {
			logger.Error().Err(err).Msg("Demo run failed")
			os.Exit(1)
		}
		return
	}

	// === ПЛАНИРОВЩИК ОТЧЁТОВ ===
	if cfg.App.ReportSchedule != "" {
		scheduler := processor.NewCronScheduler(reports, cfg.App.Reports)
		if err := scheduler.Start(ctx, cfg.App.ReportSchedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start report scheduler")
		}
		defer scheduler.Stop()
	}

	// === HTTP СЕРВЕР ===
	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	storeHandler := handler.NewStoreHandler(catalog, directory, transactions, pricing, reports, receipts)
	router := handler.SetupRoutes(storeHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Store Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down Store Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logger.Info().Msg("Store Service stopped gracefully")
}
