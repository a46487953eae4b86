// README: HTTP router registration: public estimate, operator-guarded lots, vehicles and allocations.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parking/internal/http/handlers"
	"parking/internal/http/middleware"
	"parking/internal/infra"
)

type RouterDeps struct {
	Pricing     handlers.Estimator
	Lots        handlers.LotService
	Vehicles    handlers.VehicleService
	Allocations handlers.AllocationService

	// Verifier is ignored when AuthDisabled is set.
	Verifier     infra.TokenVerifier
	AuthDisabled bool
	CORSOrigins  []string
	Log          *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/pricing/estimate", handlers.NewPricingHandler(deps.Pricing).Estimate)

	guarded := api.Group("")
	if deps.AuthDisabled {
		guarded.Use(middleware.NoAuth())
	} else {
		guarded.Use(middleware.Auth(deps.Verifier))
	}
	operator := middleware.RequireRole(middleware.RoleOperator)

	lots := handlers.NewLotHandler(deps.Lots)
	guarded.GET("/lots", lots.List)
	guarded.GET("/lots/nearby", lots.Nearby)
	guarded.GET("/lots/:id", lots.Get)
	guarded.POST("/lots", operator, lots.Create)
	guarded.PUT("/lots/:id", operator, lots.Update)
	guarded.DELETE("/lots/:id", operator, lots.Delete)

	vehicles := handlers.NewVehicleHandler(deps.Vehicles)
	guarded.GET("/vehicles", vehicles.List)
	guarded.GET("/vehicles/:id", vehicles.Get)
	guarded.POST("/vehicles", operator, vehicles.Register)
	guarded.DELETE("/vehicles/:id", operator, vehicles.Delete)

	allocations := handlers.NewAllocationHandler(deps.Allocations)
	guarded.GET("/allocations", allocations.List)
	guarded.GET("/allocations/:id", allocations.Get)
	guarded.GET("/allocations/:id/cost", allocations.Cost)
	guarded.POST("/allocations", operator, allocations.Allocate)
	guarded.POST("/allocations/:id/close", operator, allocations.Close)

	return r
}
