package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/models"
	"github.com/vectornet/vectornet_backend/repositories"
	"github.com/vectornet/vectornet_backend/services"
	"github.com/vectornet/vectornet_backend/utils"
)

// BusinessController records business transactions and triggers commission
// distribution
type BusinessController struct {
	DB                *mongo.Client
	logger            *log.Logger
	partnerRepo       *repositories.PartnerRepository
	businessRepo      *repositories.BusinessRepository
	paymentRepo       *repositories.PaymentRepository
	commissionService *services.CommissionService
}

func NewBusinessController(db *mongo.Client) *BusinessController {
	return &BusinessController{
		DB:                db,
		logger:            log.New(os.Stdout, "[BUSINESS] ", log.LstdFlags),
		partnerRepo:       repositories.NewPartnerRepository(db),
		businessRepo:      repositories.NewBusinessRepository(db),
		paymentRepo:       repositories.NewPaymentRepository(db),
		commissionService: services.NewCommissionService(db),
	}
}

// CreateBusiness records a business for a partner and materializes the
// commission payments in one go
func (bc *BusinessController) CreateBusiness(c echo.Context) error {
	var req models.BusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Partner ID and a positive amount are required",
		})
	}

	partnerID, err := primitive.ObjectIDFromHex(req.PartnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}
	partner, err := bc.partnerRepo.FindByID(partnerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Partner not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve partner",
		})
	}
	if !partner.IsActive {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Partner is inactive",
		})
	}

	business := models.Business{
		Reference:   "BIZ-" + uuid.New().String(),
		NetworkID:   partner.NetworkID,
		PartnerID:   partner.ID,
		Description: utils.SanitizeInput(req.Description),
		Amount:      req.Amount,
		Status:      models.BusinessStatusRecorded,
	}
	if err := bc.businessRepo.Insert(&business); err != nil {
		bc.logger.Printf("Failed to insert business: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record business",
		})
	}

	payments, err := bc.commissionService.DistributeCommission(&business)
	if err != nil {
		bc.logger.Printf("Commission distribution failed for %s: %v", business.Reference, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Business recorded but commission distribution failed",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Business recorded successfully",
		Data: map[string]interface{}{
			"business": business,
			"payments": payments,
		},
	})
}

// CancelBusiness cancels a recorded business and its pending commission
// payments. Payments already settled are left alone.
func (bc *BusinessController) CancelBusiness(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid business ID",
		})
	}

	cancelled, err := bc.businessRepo.Cancel(id)
	if err != nil {
		bc.logger.Printf("Failed to cancel business %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to cancel business",
		})
	}
	if !cancelled {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Business is not in a cancellable state",
		})
	}

	count, err := bc.paymentRepo.CancelPendingByBusiness(id)
	if err != nil {
		bc.logger.Printf("Failed to cancel payments for business %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Business cancelled but payment cleanup failed",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business cancelled successfully",
		Data: map[string]interface{}{
			"cancelledPayments": count,
		},
	})
}

// GetBusinesses lists the businesses of a network, newest first
func (bc *BusinessController) GetBusinesses(c echo.Context) error {
	networkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
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

	businesses, err := bc.businessRepo.FindByNetwork(networkID, page, limit)
	if err != nil {
		bc.logger.Printf("Failed to list businesses: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve businesses",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Businesses retrieved successfully",
		Data:    businesses,
	})
}
