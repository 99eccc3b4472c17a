package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/menara/internal/clock"
	"github.com/smallbiznis/menara/internal/config"
	"github.com/smallbiznis/menara/internal/dataset/store"
	executivedomain "github.com/smallbiznis/menara/internal/executive/domain"
	obslogger "github.com/smallbiznis/menara/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/menara/internal/observability/metrics"
	operationsdomain "github.com/smallbiznis/menara/internal/operations/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the HTTP server and its routes.
var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	log       *zap.Logger
	clock     clock.Clock
	dashboard *config.DashboardConfigHolder
	store     *store.Store

	executiveSvc  executivedomain.Service
	operationsSvc operationsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	Clock         clock.Clock
	Dashboard     *config.DashboardConfigHolder
	Store         *store.Store
	ExecutiveSvc  executivedomain.Service
	OperationsSvc operationsdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		log:           p.Log.Named("server"),
		clock:         p.Clock,
		dashboard:     p.Dashboard,
		store:         p.Store,
		executiveSvc:  p.ExecutiveSvc,
		operationsSvc: p.OperationsSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

// RegisterAPIRoutes mounts the dashboard API.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/api/v1")

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/executive", s.GetExecutiveOverview)
	dashboard.GET("/operations", s.GetOperationsOverview)
	dashboard.GET("/filters", s.GetFilterOptions)

	v1.POST("/dataset/reload", s.ReloadDataset)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
