package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/controllers"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController) {
	RegisterAuthRoutes(e, db, authController)
	RegisterNetworkRoutes(e, db)
	RegisterPartnerRoutes(e, db)
	RegisterBusinessRoutes(e, db)
}
