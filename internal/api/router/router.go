package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aubrey-sherman/baby-bootcamp-be/config"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/api/handler"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/api/middleware"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/jwt"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/redis"
)

// Setup builds and returns the Gin engine.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Auth routes (no token required)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		authorized.Use(middleware.Timezone())
		{
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			blocks := authorized.Group("/blocks")
			{
				blocks.POST("", h.Feeding.CreateBlock)
				blocks.GET("", h.Feeding.ListBlocks)
				blocks.GET("/:blockID/entries", h.Feeding.GetWeekEntries)
				blocks.POST("/:blockID/entries", h.Feeding.ExtendEntries)
				blocks.PATCH("/:blockID/times", h.Feeding.UpdateEntryTimes)
				blocks.PUT("/:blockID/elimination", h.Feeding.StartElimination)
				blocks.GET("/:blockID/export", h.Export.ExportBlock)
				blocks.DELETE("/:blockID", h.Feeding.DeleteBlock)
			}

			entries := authorized.Group("/entries")
			{
				entries.PATCH("/:entryID/volume", h.Feeding.UpdateEntryVolume)
				entries.DELETE("/:entryID", h.Feeding.DeleteEntry)
			}
		}
	}

	return r
}
