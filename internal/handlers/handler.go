package handlers

import (
	"net/http"
	"time"

	_ "irrigation_gateway/docs" // registers the swagger spec
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// StreamConfig bounds the /ws push interval.
type StreamConfig struct {
	DefaultInterval time.Duration
	MaxInterval     time.Duration
}

const (
	defaultStreamInterval = 2 * time.Second
	maxStreamInterval     = time.Minute
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
	stream   StreamConfig
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithMetrics exposes h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(hd *Handler) { hd.metrics = h }
}

// WithStream sets the /ws interval bounds. Zero fields keep the defaults.
func WithStream(cfg StreamConfig) Option {
	return func(hd *Handler) {
		if cfg.DefaultInterval > 0 {
			hd.stream.DefaultInterval = cfg.DefaultInterval
		}
		if cfg.MaxInterval > 0 {
			hd.stream.MaxInterval = cfg.MaxInterval
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		log:      log,
		stream:   StreamConfig{DefaultInterval: defaultStreamInterval, MaxInterval: maxStreamInterval},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.stream.MaxInterval < h.stream.DefaultInterval {
		h.stream.MaxInterval = h.stream.DefaultInterval
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAPIRoutes(router)

	// Zone status stream (HTTP upgrade), same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		h.registerZoneRoutes(api)
		h.registerCatalogRoutes(api)
	}
}

func (h *Handler) registerZoneRoutes(api *gin.RouterGroup) {
	// Body example: {"zone":3,"duration":10}
	api.POST("/start-zone", h.startZone)
	// Body is optional: {"zone":3}
	api.POST("/stop-zone", h.stopZone)
	api.GET("/controller-info", h.controllerInfo)
	api.GET("/zone-status", h.zoneStatus)
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	zones := api.Group("/zones")
	{
		zones.GET("", h.listZones)
		zones.PUT("/:id", h.saveZone)
	}
}
