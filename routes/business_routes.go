package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/controllers"
	"github.com/vectornet/vectornet_backend/middleware"
)

// RegisterBusinessRoutes sets up business recording and payment routes
func RegisterBusinessRoutes(e *echo.Echo, db *mongo.Client) {
	businessController := controllers.NewBusinessController(db)
	paymentController := controllers.NewPaymentController(db)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/businesses", businessController.CreateBusiness)
	r.POST("/businesses/:id/cancel", businessController.CancelBusiness, middleware.RequireUserType("admin"))

	r.PUT("/payments/:id/pay", paymentController.MarkPaymentPaid, middleware.RequireUserType("admin"))
}
