package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/credora/creatorscore/internal/adapters/http/api"
	"github.com/credora/creatorscore/internal/adapters/repository"
	service "github.com/credora/creatorscore/internal/app"
	"github.com/credora/creatorscore/internal/config"
	"github.com/credora/creatorscore/internal/domain/model"
	"github.com/credora/creatorscore/internal/domain/scoring"
	"github.com/credora/creatorscore/internal/scheduler"
	"github.com/credora/creatorscore/pkg/logger"
	"github.com/credora/creatorscore/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Custom system metrics replace the default Go collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.New(cfg.DBPath)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer store.Close()

	svc := service.New(store,
		service.WithLogger(log.Named("service")),
		service.WithEngine(scoring.NewEngine(scoring.WithWeights(weightsFromConfig(cfg)))),
		service.WithLookbackMonths(cfg.LookbackMonths),
		service.WithLatestWindow(cfg.LatestWindow),
		service.WithBatchWorkers(cfg.BatchWorkers),
	)

	if cfg.GenerateIntervalHours > 0 {
		sched := scheduler.New(svc,
			scheduler.WithInterval(time.Duration(cfg.GenerateIntervalHours)*time.Hour),
			scheduler.WithLogger(log.Named("scheduler")),
		)
		go func() {
			_ = sched.Run(ctx)
		}()
	}

	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// weightsFromConfig applies the configured platform reliability table on
// top of the default factor tables.
func weightsFromConfig(cfg *config.Config) scoring.Weights {
	w := scoring.DefaultWeights()
	if len(cfg.PlatformWeights) > 0 {
		reliability := make(map[model.PlatformType]float64, len(cfg.PlatformWeights))
		for t, weight := range cfg.PlatformWeights {
			reliability[model.PlatformType(t)] = weight
		}
		w.Reliability = reliability
	}
	if cfg.DefaultPlatformWeight > 0 {
		w.DefaultReliability = cfg.DefaultPlatformWeight
	}
	return w
}

// startSystemMetricsUpdater periodically publishes memory and goroutine
// gauges.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
