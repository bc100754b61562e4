package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/sewa-portal/api"
	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/core/events"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	donationMongo "github.com/frahmantamala/sewa-portal/internal/donation/mongo"
	donationPostgres "github.com/frahmantamala/sewa-portal/internal/donation/postgres"
	"github.com/frahmantamala/sewa-portal/internal/media"
	mediaMongo "github.com/frahmantamala/sewa-portal/internal/media/mongo"
	mediaPostgres "github.com/frahmantamala/sewa-portal/internal/media/postgres"
	mediaS3 "github.com/frahmantamala/sewa-portal/internal/media/s3"
	"github.com/frahmantamala/sewa-portal/internal/messaging"
	"github.com/frahmantamala/sewa-portal/internal/observability"
	"github.com/frahmantamala/sewa-portal/internal/transport"
	"github.com/frahmantamala/sewa-portal/internal/transport/rest"
	"github.com/frahmantamala/sewa-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// intentStore is a payment intent store that can also report its health.
type intentStore interface {
	donation.RepositoryAPI
	rest.HealthChecker
}

type stores struct {
	intents intentStore
	media   media.RepositoryAPI
	close   func(ctx context.Context) error
}

type Dependencies struct {
	Config   *internal.Config
	Router   *chi.Mux
	Logger   *slog.Logger
	EventBus *events.EventBus
	closers  []func(ctx context.Context) error
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "storage", deps.Config.Storage.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Close(ctx)
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// Close drains in-flight event handlers and releases connections in
// reverse order of acquisition.
func (d *Dependencies) Close(ctx context.Context) {
	d.EventBus.Wait()
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			d.Logger.Error("Shutdown close error", "error", err)
		}
	}
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	deps := &Dependencies{
		Config:   config,
		Router:   chi.NewRouter(),
		Logger:   lg,
		EventBus: events.NewEventBus(lg),
	}

	st, err := openStores(ctx, config)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, st.close)

	objectStorage, err := mediaS3.New(ctx, config.ObjectStorage)
	if err != nil {
		deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	if config.Kafka.Enabled {
		relay := messaging.NewKafkaRelay(messaging.NewKafkaWriter(config.Kafka.Brokers, config.Kafka.Topic), lg)
		relay.Register(deps.EventBus)
		deps.closers = append(deps.closers, func(context.Context) error { return relay.Close() })
		lg.Info("Kafka relay enabled", "brokers", config.Kafka.Brokers, "topic", config.Kafka.Topic)
	}

	metrics := observability.NewMetrics()

	donationService := donation.NewService(donation.ServiceDeps{
		Repository: st.intents,
		Links:      donation.NewLinkBuilder(config.Payee),
		References: donation.NewReferenceGenerator(time.Now),
		QR:         donation.NewQRCodeEncoder(),
		Publisher:  deps.EventBus,
		Metrics:    metrics,
		Logger:     lg,
	})

	mediaService := media.NewService(media.ServiceDeps{
		Repository: st.media,
		Storage:    objectStorage,
		Publisher:  deps.EventBus,
		Metrics:    metrics,
		Logger:     lg,
	})

	baseHandler := transport.NewBaseHandler(lg)

	routerDeps := rest.RouterDeps{
		DonationHandler: donation.NewHandler(baseHandler, donationService),
		MediaHandler:    media.NewHandler(baseHandler, mediaService),
		HealthCheckers:  []rest.HealthChecker{st.intents, objectStorage},
		AllowedOrigins:  config.Server.Origins(),
		OpenAPIDoc:      api.OpenAPI,
		Logger:          lg,
	}
	if config.Observability.Metrics.Enabled {
		routerDeps.Metrics = metrics
		routerDeps.MetricsPath = config.Observability.Metrics.Path
	}
	rest.RegisterAllRoutes(deps.Router, routerDeps)

	return deps, nil
}

func openStores(ctx context.Context, config *internal.Config) (*stores, error) {
	switch config.Storage.Driver {
	case internal.StorageDriverPostgres:
		db, err := initDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return &stores{
			intents: donationPostgres.NewPaymentIntentRepository(gormDB),
			media:   mediaPostgres.NewMediaRepository(gormDB),
			close:   func(context.Context) error { return db.Close() },
		}, nil

	case internal.StorageDriverMongo:
		client, err := connectMongo(ctx, config.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		database := client.Database(config.Mongo.Database)
		intents := donationMongo.NewPaymentIntentStore(database)
		mediaStore := mediaMongo.NewMediaStore(database)

		if err := intents.EnsureIndexes(ctx); err != nil {
			slog.Warn("failed to create payment intent indexes", "error", err)
		}
		if err := mediaStore.EnsureIndexes(ctx); err != nil {
			slog.Warn("failed to create media indexes", "error", err)
		}

		return &stores{
			intents: intents,
			media:   mediaStore,
			close:   client.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// connectMongo dials and pings once; the caller owns the client and must
// Disconnect it on shutdown.
func connectMongo(ctx context.Context, cfg internal.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := internal.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
