package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"battery-dispatch/internal/api/handlers"
	"battery-dispatch/internal/api/middleware"
	"battery-dispatch/internal/api/models"
	"battery-dispatch/internal/config"
	"battery-dispatch/internal/data"
	"battery-dispatch/internal/metrics"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options wires the router's collaborators.
type Options struct {
	Server  config.ServerConfig
	Logger  zerolog.Logger
	Metrics *metrics.Collector
	// Gatherer backs GET /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
	Cache    *data.ResultCache
}

// NewHandler is NewRouter with gzip compression of large responses.
func NewHandler(opts Options) http.Handler {
	return gziphandler.GzipHandler(NewRouter(opts))
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) *gin.Engine {
	if opts.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(middleware.CORS(opts.Server.AllowedOrigins()))
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.ErrorHandler(opts.Logger))

	simulationHandler := handlers.NewSimulationHandler(handlers.SimulationOptions{
		Logger:     opts.Logger,
		Metrics:    opts.Metrics,
		Cache:      opts.Cache,
		BatteryDir: opts.Server.BatteryDir,
	})
	batteryHandler := handlers.NewBatteryHandler(opts.Server.BatteryDir, opts.Logger)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", simulationHandler.RunSimulation)
		v1.GET("/simulate/:id/ledger", simulationHandler.GetLedger)
		v1.POST("/compare", simulationHandler.CompareStrategies)
		v1.POST("/sweep", simulationHandler.RunSweep)

		v1.GET("/batteries", batteryHandler.ListBatteries)
		v1.GET("/strategies", strategyHandler.ListStrategies)
	}

	serveStatic(router, opts.Server.StaticDir, opts.Logger)
	return router
}

// serveStatic serves a built web UI from dir when it exists, with
// index.html as the fallback for client-side routes.
func serveStatic(router *gin.Engine, dir string, log zerolog.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: handlers.CodeNotFound, Message: "Not found"},
		})
	}
	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(dir); err != nil {
		log.Info().Str("dir", dir).Msg("static directory not found, skipping static file serving")
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		// Don't serve index.html for API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Info().Str("dir", dir).Msg("serving static files")
}
