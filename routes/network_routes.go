package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/controllers"
	"github.com/vectornet/vectornet_backend/middleware"
)

// RegisterNetworkRoutes sets up network management and report routes
func RegisterNetworkRoutes(e *echo.Echo, db *mongo.Client) {
	networkController := controllers.NewNetworkController(db)
	reportController := controllers.NewReportController(db)
	businessController := controllers.NewBusinessController(db)

	r := e.Group("/api/networks")
	r.Use(middleware.JWTMiddleware())

	r.GET("", networkController.GetNetworks)
	r.GET("/:id", networkController.GetNetwork)
	r.POST("", networkController.CreateNetwork, middleware.RequireUserType("admin"))
	r.PUT("/:id", networkController.UpdateNetwork, middleware.RequireUserType("admin"))

	r.GET("/:id/businesses", businessController.GetBusinesses)

	// Report routes
	r.GET("/:id/reports/tree", reportController.GetTreeReport)
	r.GET("/:id/reports/financial", reportController.GetFinancialReport)
	r.GET("/:id/reports/business", reportController.GetBusinessReport)
}
