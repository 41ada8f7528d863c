package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/streamops/channel-control/internal/config"
	"github.com/streamops/channel-control/internal/database"
	"github.com/streamops/channel-control/internal/handler"
	"github.com/streamops/channel-control/internal/medialive"
	"github.com/streamops/channel-control/internal/mediapackage"
	"github.com/streamops/channel-control/internal/router"
	"github.com/streamops/channel-control/internal/service"
	"github.com/streamops/channel-control/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API is the HTTP control-plane application.
type API struct {
	cfg *config.Config
	srv *http.Server
	db  *gorm.DB
	log *zap.Logger
}

// newLogger builds the zap logger for the configured environment.
func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.AppEnv == "development" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// NewAPI creates the API application: validates config, runs migrations,
// opens DB, builds clients, services, handlers and router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	logger := newLogger(cfg)

	encoder := medialive.NewClient(cfg.MediaLiveEndpoint, cfg.EncoderAPIToken, logger)
	packaging := mediapackage.NewClient(cfg.MediaPackageEndpoint, cfg.EncoderAPIToken, logger)
	metadata := store.NewMetadata(db, cfg.ChannelTable)

	channelSvc := service.NewChannelService(encoder, metadata, logger)
	scheduleSvc := service.NewScheduleService(encoder, metadata, logger)
	metadataSvc := service.NewMetadataService(encoder, packaging, metadata, logger)

	r := router.New(
		handler.NewChannelHandler(channelSvc, scheduleSvc, logger),
		handler.NewGraphicsHandler(metadataSvc, scheduleSvc, logger),
		handler.NewOutputHandler(metadataSvc, logger),
		handler.NewHealthHandler(),
		cfg.AllowOrigin,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, log: logger}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled; then shuts
// down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.srv.Addr)
	log.Printf("  Health:    %s/health", base)
	log.Printf("  Channels:  %s/channels", base)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	_ = a.log.Sync()
	return nil
}
