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
	"github.com/vectornet/vectornet_backend/reports"
	"github.com/vectornet/vectornet_backend/repositories"
	"github.com/vectornet/vectornet_backend/utils"
)

// PartnerController manages partner onboarding and recommender edges
type PartnerController struct {
	DB          *mongo.Client
	logger      *log.Logger
	networkRepo *repositories.NetworkRepository
	partnerRepo *repositories.PartnerRepository
	paymentRepo *repositories.PaymentRepository
}

func NewPartnerController(db *mongo.Client) *PartnerController {
	return &PartnerController{
		DB:          db,
		logger:      log.New(os.Stdout, "[PARTNER] ", log.LstdFlags),
		networkRepo: repositories.NewNetworkRepository(db),
		partnerRepo: repositories.NewPartnerRepository(db),
		paymentRepo: repositories.NewPaymentRepository(db),
	}
}

// AddPartner registers a partner in a network. The referral code picks the
// recommender: a partner code links under that partner, a network code or
// no code links directly under the network root.
func (pc *PartnerController) AddPartner(c echo.Context) error {
	var req models.PartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Network ID and full name are required",
		})
	}

	networkID, err := primitive.ObjectIDFromHex(req.NetworkID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}
	network, err := pc.networkRepo.FindByID(networkID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Network not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve network",
		})
	}

	var recommenderID *primitive.ObjectID
	if req.ReferralCode != "" && req.ReferralCode != network.ReferralCode {
		recommender, err := pc.partnerRepo.FindByReferralCode(req.ReferralCode)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Response{
					Status:  http.StatusNotFound,
					Message: "Referral code not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to resolve referral code",
			})
		}
		if recommender.NetworkID != networkID {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Referral code belongs to a different network",
			})
		}
		recommenderID = &recommender.ID
	}

	email := ""
	if req.Email != "" {
		email, err = utils.SanitizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid email format",
			})
		}
	}
	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number",
		})
	}

	referralCode, err := utils.GeneratePartnerReferralCode()
	if err != nil {
		pc.logger.Printf("Failed to generate referral code: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	partner := models.Partner{
		NetworkID:     networkID,
		RecommenderID: recommenderID,
		FullName:      utils.SanitizeInput(req.FullName),
		Email:         email,
		Phone:         phone,
		ReferralCode:  referralCode,
		IsActive:      true,
	}
	if err := pc.partnerRepo.Insert(&partner); err != nil {
		pc.logger.Printf("Failed to insert partner: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create partner",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Partner created successfully",
		Data:    partner,
	})
}

// GetPartner returns one partner by ID
func (pc *PartnerController) GetPartner(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	partner, err := pc.partnerRepo.FindByID(id)
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner retrieved successfully",
		Data:    partner,
	})
}

// UpdateRecommender moves a partner under a new recommender. The edge is
// validated against the current network snapshot; an edge that would make
// the partner its own ancestor is rejected with 409.
func (pc *PartnerController) UpdateRecommender(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	var req models.RecommenderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Recommender ID is required",
		})
	}
	recommenderID, err := primitive.ObjectIDFromHex(req.RecommenderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid recommender ID",
		})
	}

	partner, err := pc.partnerRepo.FindByID(id)
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

	// The new recommender must be the network itself or a partner of the
	// same network
	if recommenderID != partner.NetworkID {
		recommender, err := pc.partnerRepo.FindByID(recommenderID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Response{
					Status:  http.StatusNotFound,
					Message: "Recommender not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to retrieve recommender",
			})
		}
		if recommender.NetworkID != partner.NetworkID {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Recommender belongs to a different network",
			})
		}
	}

	partners, err := pc.partnerRepo.FindByNetwork(partner.NetworkID)
	if err != nil {
		pc.logger.Printf("Failed to load partner snapshot: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to validate recommender change",
		})
	}

	guard := reports.NewCycleGuard(reports.NewGraphIndex(partners), partner.NetworkID)
	cycle, err := guard.WouldCreateCycle(id, recommenderID)
	if err != nil {
		pc.logger.Printf("Cycle check failed for partner %s: %v", id.Hex(), err)
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Recommender chain is inconsistent; change rejected",
		})
	}
	if cycle {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Recommender change would create a cycle",
		})
	}

	if err := pc.partnerRepo.UpdateRecommender(id, &recommenderID); err != nil {
		pc.logger.Printf("Failed to update recommender for %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update recommender",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Recommender updated successfully",
	})
}

// SetPartnerStatus activates or deactivates a partner
func (pc *PartnerController) SetPartnerStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	if err := pc.partnerRepo.SetActive(id, req.IsActive); err != nil {
		pc.logger.Printf("Failed to update status for %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update partner status",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner status updated successfully",
	})
}

// GetPartnerTree returns the annotated descendant subtree of one partner
func (pc *PartnerController) GetPartnerTree(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid partner ID",
		})
	}

	partner, err := pc.partnerRepo.FindByID(id)
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

	network, err := pc.networkRepo.FindByID(partner.NetworkID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve network",
		})
	}

	opts, errResp := parseTreeOptions(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, *errResp)
	}

	partners, err := pc.partnerRepo.FindByNetwork(partner.NetworkID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load partners",
		})
	}
	payments, err := pc.paymentRepo.FindByNetwork(partner.NetworkID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load payments",
		})
	}

	composer := reports.NewReportComposer(*network, partners, payments)
	root, err := composer.SubtreeReport(id, opts)
	if err != nil {
		pc.logger.Printf("Subtree report failed for %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build partner tree",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner tree retrieved successfully",
		Data:    root,
	})
}

// parseTreeOptions reads the shared sort/filter query parameters
func parseTreeOptions(c echo.Context) (reports.TreeReportOptions, *models.Response) {
	sortBy, err := reports.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return reports.TreeReportOptions{}, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid sort key; use name, level, received or pending",
		}
	}
	direction, err := reports.ParseSortDirection(c.QueryParam("dir"))
	if err != nil {
		return reports.TreeReportOptions{}, &models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid sort direction; use asc or desc",
		}
	}

	maxDepth := 0
	if raw := c.QueryParam("maxDepth"); raw != "" {
		maxDepth, err = strconv.Atoi(raw)
		if err != nil || maxDepth < 0 {
			return reports.TreeReportOptions{}, &models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid maxDepth",
			}
		}
	}

	return reports.TreeReportOptions{
		ActiveOnly: c.QueryParam("activeOnly") == "true",
		SortBy:     sortBy,
		Direction:  direction,
		MaxDepth:   maxDepth,
	}, nil
}
