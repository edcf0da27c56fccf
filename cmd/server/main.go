package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenantadmin/internal/keycloak"
	"tenantadmin/internal/platform/config"
	"tenantadmin/internal/platform/database"
	"tenantadmin/internal/platform/health"
	"tenantadmin/internal/platform/httpserver"
	"tenantadmin/internal/platform/kafka/producer"
	"tenantadmin/internal/platform/logger"
	"tenantadmin/internal/platform/tracer"
	"tenantadmin/internal/tenant/audit"
	tenanthandler "tenantadmin/internal/tenant/handler"
	tenantmetrics "tenantadmin/internal/tenant/metrics"
	"tenantadmin/internal/tenant/service"
	tenantstore "tenantadmin/internal/tenant/store/tenant"
	httptransport "tenantadmin/internal/transport/http"
	"tenantadmin/internal/upload"
	"tenantadmin/migrations"
	request "tenantadmin/pkg/platform/middleware/request"
)

// main wires dependencies and runs the server until SIGINT or SIGTERM.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing tenant admin",
		"addr", cfg.Server.Addr,
		"storage", cfg.Storage.Type,
		"database", cfg.Database.URL != "",
		"kafka", cfg.Kafka.Brokers != "",
	)

	checks := health.New()
	tr := tracer.NewOTel()

	tenants, closeStore, err := buildTenantStore(ctx, cfg.Database, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	files, err := buildUploadStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	checks.RegisterCheck("uploads", files.Health)

	publisher, closePublisher, err := buildAuditPublisher(cfg.Kafka, log, checks)
	if err != nil {
		return err
	}
	defer closePublisher()

	if cfg.Keycloak.BaseURL != "" {
		idp := keycloak.New(keycloak.ConfigFrom(cfg.Keycloak),
			keycloak.WithLogger(logger.NewCategorized(log)),
			keycloak.WithTracer(tr),
			keycloak.WithMetrics(keycloak.NewMetrics()),
		)
		checks.RegisterCheck("keycloak", func(ctx context.Context) error {
			if _, ok := idp.FetchAdminToken(ctx); !ok {
				return errors.New("admin token unavailable")
			}
			return nil
		})
	}

	uploads := upload.New(files,
		upload.WithTracer(tr),
		upload.WithMetrics(upload.NewMetrics()),
		upload.WithLogger(log),
	)
	svc := service.NewTenantService(tenants,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(tenantmetrics.New()),
	)
	handler := tenanthandler.New(svc, uploads, log,
		tenanthandler.WithUploadConcurrency(cfg.Storage.Concurrency),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Tenants:        handler,
		Health:         checks,
		Metrics:        request.NewMetrics(),
		AdminToken:     cfg.Server.AdminAPIToken,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Server.Addr)
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

	log.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildTenantStore selects PostgreSQL when DATABASE_URL is set, else memory.
func buildTenantStore(ctx context.Context, cfg config.Database, checks *health.Handler) (service.TenantStore, func(), error) {
	pool, err := database.New(ctx, database.ConfigFrom(cfg))
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		return tenantstore.NewInMemory(), func() {}, nil
	}
	if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
		_ = pool.Close()
		return nil, nil, err
	}
	checks.RegisterCheck("database", pool.Health)
	return tenantstore.NewPostgres(pool.DB()), func() { _ = pool.Close() }, nil
}

func buildUploadStore(ctx context.Context, cfg config.Storage) (upload.Store, error) {
	if cfg.Type == config.StorageS3 {
		return upload.NewS3Store(ctx, upload.S3Config{
			Bucket: cfg.S3Bucket,
			Region: cfg.S3Region,
			Prefix: cfg.S3Prefix,
		})
	}
	return upload.NewLocalStore(cfg.Dir)
}

// buildAuditPublisher publishes to Kafka when brokers are configured and
// otherwise records audit events in the log only.
func buildAuditPublisher(cfg config.Kafka, log *slog.Logger, checks *health.Handler) (service.AuditPublisher, func(), error) {
	if cfg.Brokers == "" {
		return audit.NewLogPublisher(log), func() {}, nil
	}
	prod, err := producer.New(producer.DefaultConfig(cfg.Brokers), log)
	if err != nil {
		return nil, nil, err
	}
	checks.RegisterCheck("kafka", prod.Healthy)
	return audit.NewKafkaPublisher(prod, cfg.AuditTopic), func() { _ = prod.Close() }, nil
}
