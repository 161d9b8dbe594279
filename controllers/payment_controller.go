package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/models"
	"github.com/vectornet/vectornet_backend/repositories"
	"github.com/vectornet/vectornet_backend/services"
)

// PaymentController manages commission payment settlement
type PaymentController struct {
	DB           *mongo.Client
	logger       *log.Logger
	partnerRepo  *repositories.PartnerRepository
	paymentRepo  *repositories.PaymentRepository
	emailService *services.EmailService
}

func NewPaymentController(db *mongo.Client) *PaymentController {
	return &PaymentController{
		DB:           db,
		logger:       log.New(os.Stdout, "[PAYMENT] ", log.LstdFlags),
		partnerRepo:  repositories.NewPartnerRepository(db),
		paymentRepo:  repositories.NewPaymentRepository(db),
		emailService: services.NewEmailService(),
	}
}

// MarkPaymentPaid settles a pending payment and notifies the beneficiary
// by mail, best effort
func (pc *PaymentController) MarkPaymentPaid(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payment ID",
		})
	}

	payment, err := pc.paymentRepo.FindByID(id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Payment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment",
		})
	}

	updated, err := pc.paymentRepo.MarkPaid(id)
	if err != nil {
		pc.logger.Printf("Failed to settle payment %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to settle payment",
		})
	}
	if !updated {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Payment is not pending",
		})
	}

	if payment.PartnerID != nil {
		if partner, err := pc.partnerRepo.FindByID(*payment.PartnerID); err == nil {
			go pc.emailService.SendPaymentPaidNotification(partner, payment)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment settled successfully",
	})
}

// GetPartnerPayments lists the payments of one partner, newest first
func (pc *PaymentController) GetPartnerPayments(c echo.Context) error {
	partnerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	page := int64(1)
	limit := int64(20)
	if raw := c.QueryParam("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			page = v
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	payments, err := pc.paymentRepo.FindByPartner(partnerID, page, limit)
	if err != nil {
		pc.logger.Printf("Failed to list payments for %s: %v", partnerID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}
