package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mkrogh/bridgeway/pkg/api/handlers"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine  *gin.Engine
	manager *flow.Manager
	store   db.BridgeStore
	options *flow.OptionsNegotiator
}

// NewRouter creates a new API router
func NewRouter(manager *flow.Manager, store db.BridgeStore, options *flow.OptionsNegotiator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:  engine,
		manager: manager,
		store:   store,
		options: options,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.store)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Pairing flows
		pairingHandler := handlers.NewPairingHandler(r.manager, r.store)
		pairing := v1.Group("/pairing")
		{
			pairing.POST("/flows", pairingHandler.StartFlow)
			pairing.POST("/flows/:id/steps", pairingHandler.Step)
			pairing.DELETE("/flows/:id", pairingHandler.Cancel)
			pairing.POST("/addon", pairingHandler.Addon)
		}

		// Registered bridges
		bridgesHandler := handlers.NewBridgesHandler(r.store, r.options)
		bridges := v1.Group("/bridges")
		{
			bridges.GET("", bridgesHandler.List)
			bridges.GET("/:id", bridgesHandler.Get)
			bridges.DELETE("/:id", bridgesHandler.Delete)

			bridges.GET("/:id/options", bridgesHandler.GetOptions)
			bridges.PUT("/:id/options", bridgesHandler.SetOptions)
		}
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
