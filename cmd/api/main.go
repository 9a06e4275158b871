package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quickfix-labs/quickfix/internal/auth"
	"github.com/quickfix-labs/quickfix/internal/cache"
	"github.com/quickfix-labs/quickfix/internal/catalog"
	"github.com/quickfix-labs/quickfix/internal/config"
	"github.com/quickfix-labs/quickfix/internal/directory"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	httpx "github.com/quickfix-labs/quickfix/internal/http"
	"github.com/quickfix-labs/quickfix/internal/notifications"
	"github.com/quickfix-labs/quickfix/internal/observability"
	"github.com/quickfix-labs/quickfix/internal/repo"
	"github.com/quickfix-labs/quickfix/internal/repo/dynamo"
	"github.com/quickfix-labs/quickfix/internal/repo/memory"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	ctx := context.Background()

	// tracing is opt-in via the OTLP endpoint
	tracing := false
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, "quickfix-api", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			tracing = true
			defer func() {
				sctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					log.Error("tracer shutdown failed", "err", err)
				}
			}()
		}
	}

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if awsErr != nil {
		log.Warn("aws config load failed, remote mode unavailable", "err", awsErr)
	}

	// Pick the storage backend: explicit override first, otherwise probe
	// the ambient credentials.
	var probe repo.Probe
	if awsErr == nil {
		probe = dynamo.CredentialsProbe(awsCfg)
	}
	mode := repo.DetectMode(ctx, cfg.StorageMode, probe, log)
	if mode == repo.ModeRemote && awsErr != nil {
		log.Error("remote mode forced but aws config is unusable", "err", awsErr)
		os.Exit(1)
	}

	var (
		store repo.Store
		ready func() error
	)

	switch mode {
	case repo.ModeRemote:
		ds := dynamo.NewStore(awsCfg, dynamo.Config{
			UsersTable:    cfg.UsersTable,
			ServicesTable: cfg.ServicesTable,
			BookingsTable: cfg.BookingsTable,
		}, log)
		store = ds
		ready = func() error {
			rctx, cancel := config.WithTimeout(2 * time.Second)
			defer cancel()
			_, err := ds.ListServices(rctx)
			return err
		}
	default:
		store = memory.NewStore()
	}

	store = observability.NewInstrumentedStore(store, prom)

	// Notification sink: SNS when a topic is configured in remote mode,
	// otherwise log lines. Both sit behind the circuit breaker.
	var sink notifications.Notifier
	if mode == repo.ModeRemote && cfg.SNSTopicARN != "" {
		sink = notifications.NewSNSNotifier(awsCfg, cfg.SNSTopicARN)
	} else {
		sink = notifications.NewLogNotifier(log)
	}
	notifier := observability.NewMeteredNotifier(
		notifications.NewProtectedNotifier(sink, notifications.ProtectedNotifierConfig{}),
		prom,
	)

	// Catalog cache: Redis when configured, in-process otherwise.
	var serviceCache cache.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		defer rc.Close()

		pctx, cancel := config.WithTimeout(2 * time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn("redis unreachable, using in-process cache", "addr", cfg.RedisAddr, "err", err)
			serviceCache = cache.NewMemory(cfg.CacheTTL)
		} else {
			serviceCache = rc
		}
		cancel()
	} else {
		serviceCache = cache.NewMemory(cfg.CacheTTL)
	}

	services := catalog.New(store, serviceCache, log)

	providers, err := directory.Load(cfg.ProvidersSeed)
	if err != nil {
		log.Error("provider directory load failed", "path", cfg.ProvidersSeed, "err", err)
		os.Exit(1)
	}

	if cfg.SeedUsername != "" && cfg.SeedPassword != "" {
		sctx, cancel := config.WithTimeout(5 * time.Second)
		if err := repo.EnsureSeedUser(sctx, store, cfg.SeedUsername, cfg.SeedPassword, user.Role(cfg.SeedRole)); err != nil {
			log.Warn("seed user setup failed", "username", cfg.SeedUsername, "err", err)
		}
		cancel()
	}

	jwt := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL)

	router := httpx.NewRouter(httpx.Deps{
		Env:       cfg.Env,
		Log:       log,
		Store:     store,
		Catalog:   services,
		Directory: providers,
		Notifier:  notifier,
		JWT:       jwt,
		Issuer:    jwt,
		Prom:      prom,
		Registry:  registry,
		Tracing:   tracing,
		Ready:     ready,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage_mode", mode.String())
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		sctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(sctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")
	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
