package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/config"
	"github.com/Skotchmaster/pet_place/internal/db"
	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/httpserver"
	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/repo"
	"github.com/Skotchmaster/pet_place/internal/search"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/tokens"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty).With().Str("service", cfg.ServiceName).Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	ctx = logging.IntoContext(ctx, logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("db open")
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Warn().Err(err).Msg("db close")
		}
	}()

	store := repo.New(gdb)
	publisher := newPublisher(cfg.Kafka, logger)
	defer func() {
		if p, ok := publisher.(*events.Producer); ok {
			if err := p.Close(); err != nil {
				logger.Warn().Err(err).Msg("kafka close")
			}
		}
	}()

	authSvc := &service.AuthService{
		Users:  store,
		Tokens: tokens.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Events: publisher,
	}
	if cfg.Admin.Enabled() {
		if err := authSvc.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Fatal().Err(err).Msg("seed admin")
		}
	}

	catalogSvc := &service.CatalogService{Products: store, Users: store, Events: publisher}
	if cfg.Search.Enabled() {
		es, err := search.NewClient(cfg.Search)
		if err != nil {
			logger.Fatal().Err(err).Str("url", cfg.Search.URL).Msg("elasticsearch connect")
		}
		idx := search.NewIndex(es, cfg.Search.Index)
		catalogSvc.Index = idx
		catalogSvc.Searcher = idx
		logger.Info().Str("index", cfg.Search.Index).Msg("search index enabled")
	}

	m := metrics.New()
	e := httpserver.New(logger, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Metrics: m},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Metrics: m},
		ChatHandler:    &httpserver.ChatHTTP{Svc: &service.ChatService{Chat: store, Users: store, Events: publisher}, Metrics: m},
		NewsHandler:    &httpserver.NewsHTTP{Svc: &service.NewsService{News: store, Users: store, Events: publisher}},
		Identity:       authmw.NewIdentity(authSvc, store, cfg.TrustUserIDHeader),
		Metrics:        m,
		Ready:          readiness(gdb),
		SearchEnabled:  cfg.Search.Enabled(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("pet-place listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("pet-place stopped")
}

func newPublisher(cfg config.KafkaConfig, logger zerolog.Logger) service.Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info().Msg("kafka disabled, events are dropped")
		return events.Nop{}
	}
	logger.Info().Strs("brokers", cfg.Brokers).Msg("kafka events enabled")
	return events.NewProducer(cfg.Brokers)
}

func readiness(gdb *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.Ping(ctx, gdb)
	}
}
