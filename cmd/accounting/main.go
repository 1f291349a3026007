// Command accounting runs the university back-office accounting API.
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vsuet/accounting/internal/api"
	"github.com/vsuet/accounting/internal/config"
	"github.com/vsuet/accounting/internal/db"
	"github.com/vsuet/accounting/internal/db/migrations"
	"github.com/vsuet/accounting/internal/dbpool"
	"github.com/vsuet/accounting/internal/metrics"
	"github.com/vsuet/accounting/internal/service"
	"github.com/vsuet/accounting/internal/store"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	poolStatsInterval = 15 * time.Second
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	if err := run(log); err != nil {
		log.WithError(err).Fatal("accounting exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := db.SeedDemoData(ctx, pool, log); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	base := store.Base{Pool: pool, Log: log}

	auditSvc := service.NewAuditService(store.NewAuditStore(base), log)
	auditWorker := service.NewAuditWorker(auditSvc, log, cfg.AuditQueueSize)

	deps := &api.RouterDeps{
		Log:           log,
		DB:            pool,
		Departments:   service.NewDepartmentService(store.NewDepartmentStore(base), auditWorker, log),
		Employees:     service.NewEmployeeService(store.NewEmployeeStore(base), auditWorker, log),
		Vendors:       service.NewVendorService(store.NewVendorStore(base), auditWorker, log),
		Expenses:      service.NewExpenseService(store.NewExpenseStore(base), auditWorker, log),
		Payrolls:      service.NewPayrollService(store.NewPayrollStore(base), auditWorker, log),
		Reports:       service.NewReportService(store.NewReportStore(base)),
		Archive:       service.NewArchiveService(store.NewArchiveStore(base), auditWorker, log),
		Audit:         auditSvc,
		CORSOrigins:   cfg.CORSOrigins,
		Version:       config.Version,
		SchemaVersion: db.SchemaVersion(),
	}

	apiServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// The audit worker outlives the request context so queued entries from
	// in-flight requests are drained after the HTTP servers stop.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		auditWorker.Run(workerCtx)
		close(workerDone)
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return serve(log, apiServer, "api") })
	g.Go(func() error { return serve(log, metricsServer, "metrics") })
	g.Go(func() error {
		reportPoolStats(gctx, pool)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	log.WithFields(logrus.Fields{
		"addr":         cfg.Addr(),
		"metrics_addr": cfg.MetricsAddr(),
		"version":      config.Version,
		"schema":       deps.SchemaVersion,
	}).Info("accounting started")

	err = g.Wait()

	stopWorker()
	<-workerDone

	return err
}

// serve runs srv until it is shut down. http.ErrServerClosed is not an error.
func serve(log *logrus.Logger, srv *http.Server, name string) error {
	log.WithFields(logrus.Fields{"server": name, "addr": srv.Addr}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}

	return nil
}

// reportPoolStats publishes connection pool gauges until ctx is cancelled.
func reportPoolStats(ctx context.Context, pool *dbpool.Pool) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		stat := pool.Stat()
		metrics.DBPoolConns.WithLabelValues("total").Set(float64(stat.TotalConns()))
		metrics.DBPoolConns.WithLabelValues("idle").Set(float64(stat.IdleConns()))
		metrics.DBPoolConns.WithLabelValues("acquired").Set(float64(stat.AcquiredConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
