package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/controllers"
	"github.com/vectornet/vectornet_backend/middleware"
)

// RegisterPartnerRoutes sets up partner onboarding and hierarchy routes
func RegisterPartnerRoutes(e *echo.Echo, db *mongo.Client) {
	partnerController := controllers.NewPartnerController(db)
	paymentController := controllers.NewPaymentController(db)

	r := e.Group("/api/partners")
	r.Use(middleware.JWTMiddleware())

	r.POST("", partnerController.AddPartner)
	r.GET("/:id", partnerController.GetPartner)
	r.GET("/:id/tree", partnerController.GetPartnerTree)
	r.GET("/:id/payments", paymentController.GetPartnerPayments)
	r.PUT("/:id/recommender", partnerController.UpdateRecommender, middleware.RequireUserType("admin"))
	r.PUT("/:id/status", partnerController.SetPartnerStatus, middleware.RequireUserType("admin"))
}
