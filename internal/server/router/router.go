package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/config"
	"github.com/mamadbah2/manea/internal/server/handlers"
	"github.com/mamadbah2/manea/internal/server/middleware"
)

// Handlers bundles the HTTP adapters wired into the engine.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Farms      *handlers.FarmHandler
	Animals    *handlers.AnimalHandler
	Medical    *handlers.MedicalHandler
	Production *handlers.ProductionHandler
	Alerts     *handlers.AlertHandler
	Dashboard  *handlers.DashboardHandler
	Public     *handlers.PublicHandler
}

// New wires the Gin engine with required routes and middlewares. The public
// QR lookup and the auth endpoints are the only routes outside the
// authenticated group.
func New(h Handlers, tokenParser middleware.TokenParser, corsCfg config.CORSConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(corsCfg)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	api.GET("/public/qr/:token", h.Public.Summary)

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(tokenParser))
	{
		protected.GET("/auth/me", h.Auth.Me)
		protected.GET("/users", h.Auth.ListUsers)

		protected.POST("/farms", h.Farms.Create)
		protected.GET("/farms", h.Farms.List)
		protected.GET("/farms/:id", h.Farms.Get)
		protected.PUT("/farms/:id", h.Farms.Update)
		protected.DELETE("/farms/:id", h.Farms.Delete)

		protected.POST("/pastures", h.Farms.CreatePasture)
		protected.GET("/pastures", h.Farms.ListPastures)

		protected.POST("/animals", h.Animals.Register)
		protected.GET("/animals", h.Animals.List)
		protected.GET("/animals/:id", h.Animals.Get)
		protected.PUT("/animals/:id", h.Animals.Update)
		protected.DELETE("/animals/:id", h.Animals.Delete)
		protected.GET("/animals/:id/qr.png", h.Animals.QRImage)
		protected.GET("/animals/:id/milk", h.Production.ListMilk)
		protected.GET("/animals/:id/weights", h.Production.ListWeights)

		protected.POST("/medical-events", h.Medical.Create)
		protected.GET("/medical-events", h.Medical.List)

		protected.POST("/milk-records", h.Production.CreateMilk)
		protected.POST("/weight-records", h.Production.CreateWeight)

		protected.POST("/alerts", h.Alerts.Create)
		protected.GET("/alerts", h.Alerts.List)
		protected.PUT("/alerts/:id/resolve", h.Alerts.Resolve)

		protected.GET("/dashboard/stats", h.Dashboard.Stats)
		protected.POST("/export/inventory", h.Dashboard.ExportInventory)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
