package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/festive-table/config"
	_ "github.com/d60-Lab/festive-table/docs"
	"github.com/d60-Lab/festive-table/internal/api/handler"
	"github.com/d60-Lab/festive-table/internal/api/middleware"
	"github.com/d60-Lab/festive-table/pkg/response"
)

// NewRouter builds the HTTP surface.
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Session(cfg.Session.CookieName, cfg.Session.TTL))

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/icons", h.ListIcons)

		posts := v1.Group("/posts")
		posts.GET("", h.ListPosts)
		posts.POST("", middleware.RateLimit(cfg.RateLimit.SubmitRPS, cfg.RateLimit.SubmitBurst), h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.DELETE("/:id", h.DeletePost)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
