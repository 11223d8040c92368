package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/ai/gemini"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/federated"
	grpcAdapter "github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/grpc"
	natsAdapter "github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/repository/cache"
	mongoRepo "github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/repository/mongodb"
	pgRepo "github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/repository/postgres"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/rest"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/mailer"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/tracer"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type stores struct {
	listings  domain.ListingRepository
	inventory domain.InventoryRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		appLogger.Info("Successfully connected and pinged MongoDB.")
		db := client.Database(cfg.MongoDatabase)

		listingRepo := mongoRepo.NewListingRepository(db, appLogger)
		if err := listingRepo.EnsureIndexes(ctx); err != nil {
			appLogger.Warn("Failed to ensure listing indexes", zap.Error(err))
		}
		return &stores{
			listings:  listingRepo,
			inventory: mongoRepo.NewInventoryRepository(db, appLogger),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
				}
			},
		}, nil

	default:
		db, err := pgRepo.Connect(ctx, cfg.PostgresDSN, appLogger)
		if err != nil {
			return nil, err
		}
		if cfg.DBAutoMigrate {
			if err := pgRepo.Migrate(db.DB, appLogger); err != nil {
				db.Close()
				return nil, err
			}
		}
		return &stores{
			listings:  pgRepo.NewListingRepository(db),
			inventory: pgRepo.NewInventoryRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					appLogger.Error("Error closing PostgreSQL pool", zap.Error(err))
				}
			},
		}, nil
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("store_driver", cfg.StoreDriver),
	)

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	ctx := context.Background()
	st, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	// Events, mail and images are optional; the service runs without them.
	var publisher domain.EventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, listing events disabled", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	var notifier domain.Notifier
	if cfg.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Sender:   cfg.SMTPSender,
		}, appLogger)
		if err != nil {
			appLogger.Warn("SMTP misconfigured, confirmation emails disabled", zap.Error(err))
		} else {
			notifier = smtpMailer
		}
	}

	var imageService rest.ImageService
	if cfg.MinIOEndpoint != "" {
		storage, err := s3.NewS3Storage(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
		if err != nil {
			appLogger.Warn("MinIO unavailable, image uploads disabled", zap.Error(err))
		} else {
			imageService = usecase.NewImageUsecase(storage, appLogger)
		}
	}

	var quota domain.QuotaLimiter
	if cfg.RedisAddress != "" && cfg.AIQuotaPerMinute > 0 {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddress)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis for AI quota", zap.String("address", cfg.RedisAddress), zap.Error(err))
		}
		defer redisClient.Close()
		quota = cache.NewQuotaLimiter(redisClient, cfg.AIQuotaPerMinute)
		appLogger.Info("AI quota enabled", zap.Int("per_minute", cfg.AIQuotaPerMinute))
	}

	var generator domain.SuggestionGenerator = gemini.Unconfigured{}
	if cfg.GeminiAPIKey != "" {
		suggester, err := gemini.NewSuggester(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
		generator = suggester
	}

	listingUsecase := usecase.NewListingUsecase(st.listings, publisher, notifier, metricsManager, appLogger).
		WithNotifyTimeout(cfg.SMTPTimeout)
	suggestionUsecase := usecase.NewSuggestionUsecase(generator, st.inventory, quota, metricsManager, appLogger)
	recommendationUsecase := usecase.NewRecommendationUsecase(federated.NewClient(cfg.FederatedURL, appLogger), quota, metricsManager, appLogger)
	inventoryUsecase := usecase.NewInventoryUsecase(st.inventory, appLogger)

	handler := rest.NewHandler(rest.Services{
		Listings:        listingUsecase,
		Suggestions:     suggestionUsecase,
		Recommendations: recommendationUsecase,
		Inventory:       inventoryUsecase,
		Images:          imageService,
	}, metricsManager, appLogger)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           rest.NewRouter(handler, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC", zap.String("port", cfg.GRPCPort), zap.Error(err))
	}
	grpcSrv, healthServer := grpcAdapter.NewGRPCServer(appLogger)
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Fatal("gRPC server Serve error", zap.Error(err))
		}
	}()

	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	healthServer.SetServingStatus(grpcAdapter.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcSrv.GracefulStop()
	appLogger.Info("Application shutting down...")
}
