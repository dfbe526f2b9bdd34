package http

import (
	"twitchrelay/internal/app/adapters/http/handlers"
	"twitchrelay/internal/app/adapters/http/middlewares"
	"twitchrelay/internal/app/infrastructure/config"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager, status ports.StatusSource) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, manager, status),
		middlewares: middlewares.New(),
		log:         log,
		manager:     manager,
	}
	r.router.Use(gin.Recovery())
	cfg := manager.Get()

	if cfg.HTTP.AuthToken != "" {
		guarded := r.router.Group("/", r.middlewares.Auth(cfg.HTTP.AuthToken))
		pprof.RouteRegister(guarded, "debug/pprof")
		guarded.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		r.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.router.GET("/healthz", r.handlers.HealthHandler)
	r.router.GET("/status", r.handlers.StatusHandler)

	return r
}

func (r *Router) Run() error {
	return r.router.Run(r.manager.Get().HTTP.Addr)
}
