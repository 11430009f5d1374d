// Package api exposes the matching engine over HTTP with gin.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"soulmate/backend/internal/matching"
)

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the /api routes.
type Handler struct {
	engine *matching.Engine
	pinger Pinger
	log    *zap.Logger
}

// NewHandler creates a handler. pinger may be nil.
func NewHandler(engine *matching.Engine, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{engine: engine, pinger: pinger, log: log}
}

// NewRouter builds the gin engine with logging, recovery, CORS, health,
// metrics and the /api group.
func NewRouter(h *Handler) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(ginLogger(h.log))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/questionnaire/options", h.questionnaireOptions)

		api.POST("/users", h.register)
		api.GET("/users/:id", h.profile)
		api.PUT("/users/:id/preferences", h.recordPreferences)
		api.GET("/users/:id/preferences", h.preferences)
		api.GET("/users/:id/recommendations", h.recommendations)
		api.POST("/users/:id/likes", h.like)
		api.GET("/users/:id/matches", h.matches)
		api.GET("/users/:id/dashboard", h.dashboard)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cors is the permissive CORS policy used in development.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("HTTP Request", fields...)
			return
		}
		log.Info("HTTP Request", fields...)
	}
}
