package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/incident-heatmap-go/internal/auth"
	"github.com/jengzang/incident-heatmap-go/internal/config"
	"github.com/jengzang/incident-heatmap-go/internal/handler"
	"github.com/jengzang/incident-heatmap-go/internal/metrics"
	"github.com/jengzang/incident-heatmap-go/internal/middleware"
	"github.com/jengzang/incident-heatmap-go/internal/overlay"
	"github.com/jengzang/incident-heatmap-go/internal/render"
	"github.com/jengzang/incident-heatmap-go/internal/repository"
	"github.com/jengzang/incident-heatmap-go/internal/service"
	"github.com/jengzang/incident-heatmap-go/internal/source"
)

// Dependencies carries everything SetupRouter wires into routes
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Gate      auth.Gate // nil disables the auth gate
	Limiter   *middleware.RateLimiter
	Heatmap   *handler.HeatmapHandler
	Incidents *handler.IncidentHandler
	Overlay   *handler.OverlayHandler
}

// NewDependencies builds services and handlers on top of db.
// Background goroutines stop when ctx is done.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger, db *sql.DB) *Dependencies {
	m := metrics.New()

	repo := repository.NewIncidentRepository(db)
	var src source.IncidentSource
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		src = source.NewHTTPSource(source.HTTPConfig{
			BaseURL:   cfg.Source.URL,
			Token:     cfg.Source.Token,
			Timeout:   cfg.Source.Timeout,
			CacheTTL:  cfg.Source.CacheTTL,
			CacheHits: m.SourceCacheHits,
		})
	default:
		src = source.NewStoreSource(repo)
	}
	logger.Info("incident source selected", zap.String("source", src.Name()))

	heatmapSvc := service.NewHeatmapService(src, m, logger, cfg.Heatmap.MaxCells)
	renderer := render.NewGeoJSONRenderer(render.DefaultStyle)
	controller := overlay.NewController(heatmapSvc, renderer, m, logger)

	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Limiter:   middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Heatmap:   handler.NewHeatmapHandler(heatmapSvc, cfg.Heatmap),
		Incidents: handler.NewIncidentHandler(service.NewIncidentService(repo)),
		Overlay:   handler.NewOverlayHandler(controller, renderer, cfg.Heatmap),
	}
	if cfg.Auth.Enabled {
		deps.Gate = auth.NewJWTGate(cfg.JWTSecret, cfg.Auth.Issuer)
	}
	return deps
}

// SetupRouter 设置路由
func SetupRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger.Named("http")))
	r.Use(middleware.Metrics(deps.Metrics))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Incident heatmap API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(deps.Limiter))
	if deps.Gate != nil {
		api.Use(middleware.RequireAuth(deps.Gate))
	}
	{
		incidents := api.Group("/incidents")
		{
			incidents.GET("", deps.Incidents.ListIncidents)
			incidents.POST("", deps.Incidents.IngestIncidents)
		}

		api.GET("/heatmap", deps.Heatmap.GetHeatmap)

		ov := api.Group("/overlay")
		{
			ov.GET("", deps.Overlay.GetState)
			ov.POST("/refresh", deps.Overlay.Refresh)
			ov.GET("/geojson", deps.Overlay.GetGeoJSON)
		}
	}

	return r
}
