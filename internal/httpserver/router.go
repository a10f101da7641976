package httpserver

import (
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"plantshop/internal/repository/slot"
	"plantshop/internal/service/catalog"
	"plantshop/internal/service/session"
)

type Deps struct {
	Store       slot.Repository
	Catalog     *catalog.Service
	Sessions    *session.Registry
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: catalog and sessions are required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger.Named("access")).Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	api := router.Group("/api")
	api.GET("/plants", listPlantsHandler(deps.Catalog))

	scoped := api.Group("", sessionMiddleware(deps.Sessions, logger))
	scoped.GET("/catalog", catalogHandler(logger))

	scoped.GET("/cart", getCartHandler)
	scoped.DELETE("/cart", clearCartHandler)
	scoped.POST("/cart/items", addItemHandler)
	scoped.PATCH("/cart/items/:id", updateItemHandler)
	scoped.DELETE("/cart/items/:id", removeItemHandler)
	scoped.POST("/cart/checkout", checkoutHandler(logger))

	scoped.GET("/preferences", getPreferencesHandler)
	scoped.PUT("/preferences", updatePreferencesHandler)
	scoped.POST("/preferences/theme/toggle", toggleThemeHandler)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
