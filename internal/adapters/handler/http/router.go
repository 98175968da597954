package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-lifesync/docs"
	"github.com/comitanigiacomo/kanso-lifesync/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDependencies struct {
	Store        *services.Store
	Stats        *services.StatsService
	TokenService *services.TokenService
	Redis        redis.Cmdable
	RateLimit    int
	Checks       map[string]HealthCheck
	StartTime    time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, time.Minute))
	}

	router.GET("/health", health(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.TokenService != nil {
		apiV1.Use(middleware.AuthMiddleware(deps.TokenService))
	}

	stats := deps.Stats
	if stats == nil {
		stats = services.NewStatsService(deps.Store)
	}

	NewSyncHandler(deps.Store).RegisterRoutes(apiV1)
	NewHabitHandler(deps.Store, stats).RegisterRoutes(apiV1)
	NewExpenseHandler(deps.Store).RegisterRoutes(apiV1)
	NewEntryHandler(deps.Store).RegisterRoutes(apiV1)
	NewQuadrantHandler(deps.Store).RegisterRoutes(apiV1)
	NewThoughtHandler(deps.Store).RegisterRoutes(apiV1)

	return router
}

func health(deps RouterDependencies) gin.HandlerFunc {
	names := make([]string, 0, len(deps.Checks))
	for name := range deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		body := gin.H{}
		for _, name := range names {
			state := "connected"
			if err := deps.Checks[name](ctx); err != nil {
				state = "unreachable"
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
			body[name] = state
		}
		if deps.Store.Closed() {
			status = "closed"
			code = http.StatusServiceUnavailable
		}

		body["status"] = status
		body["uptime"] = time.Since(deps.StartTime).String()
		c.JSON(code, body)
	}
}
