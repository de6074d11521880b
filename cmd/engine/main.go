package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lintang-b-s/navsampler/docs"
	"github.com/lintang-b-s/navsampler/pkg/config"
	"github.com/lintang-b-s/navsampler/pkg/kv"
	"github.com/lintang-b-s/navsampler/pkg/logger"
	"github.com/lintang-b-s/navsampler/pkg/sampler"
	"github.com/lintang-b-s/navsampler/pkg/server/rest"
	"github.com/lintang-b-s/navsampler/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "net/http/pprof"
)

var (
	configFile   = flag.String("config", "", "path config yaml (default ./config.yaml atau ./configs/config.yaml)")
	listenAddr   = flag.String("listenaddr", "", "server listen address, override server.listen_addr")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

//	@title			navsampler lintangbs API
//	@version		1.0
//	@description	waypoint sampler: compress dense GPS traces into a bounded, turn-preserving list of waypoints

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}

	lg, err := logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	var cache service.WaypointCache
	if cfg.Cache.Enabled {
		db, err := kv.OpenBadger(cfg.Cache.Path, cfg.Cache.InMemory, lg)
		if err != nil {
			lg.Fatal("open waypoint cache", zap.Error(err))
		}
		wc := kv.NewWaypointCache(db,
			kv.WithTTL(cfg.Cache.TTL),
			kv.WithH3Resolution(cfg.Cache.H3Resolution),
			kv.WithLogger(lg),
		)
		defer wc.Close()
		cache = wc
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	reporter := sampler.MultiReporter{m, logger.NewStatsReporter(lg)}
	waypointSvc := service.NewWaypointService(cache, reporter, lg, cfg.Sampler.MaxWaypoints, cfg.Sampler.MinTurnAngle, cfg.Workers)

	r := rest.NewRouter(rest.RouterOptions{
		CorsOrigins:  cfg.Server.CorsOrigins,
		UseRateLimit: *useRateLimit || cfg.Server.RateLimit,
		RequestLog:   true,
		SwaggerURL:   fmt.Sprintf("http://localhost%s/swagger/doc.json", cfg.Server.ListenAddr),
	}, waypointSvc, m, reg, lg)

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("server started", zap.String("addr", cfg.Server.ListenAddr),
			zap.Int("max_waypoints", cfg.Sampler.MaxWaypoints), zap.Float64("min_turn_angle", cfg.Sampler.MinTurnAngle),
			zap.Bool("cache", cfg.Cache.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
