package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/models"
	"github.com/vectornet/vectornet_backend/repositories"
	"github.com/vectornet/vectornet_backend/utils"
)

// NetworkController manages referral networks
type NetworkController struct {
	DB          *mongo.Client
	logger      *log.Logger
	networkRepo *repositories.NetworkRepository
}

func NewNetworkController(db *mongo.Client) *NetworkController {
	return &NetworkController{
		DB:          db,
		logger:      log.New(os.Stdout, "[NETWORK] ", log.LstdFlags),
		networkRepo: repositories.NewNetworkRepository(db),
	}
}

// CreateNetwork registers a new referral network with a fresh referral code
func (nc *NetworkController) CreateNetwork(c echo.Context) error {
	var req models.NetworkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Network name is required",
		})
	}

	referralCode, err := utils.GenerateNetworkReferralCode()
	if err != nil {
		nc.logger.Printf("Failed to generate referral code: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	network := models.Network{
		Name:         utils.SanitizeInput(req.Name),
		Description:  utils.SanitizeInput(req.Description),
		ReferralCode: referralCode,
		IsActive:     true,
	}
	if err := nc.networkRepo.Insert(&network); err != nil {
		nc.logger.Printf("Failed to insert network: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create network",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Network created successfully",
		Data:    network,
	})
}

// GetNetworks lists all networks
func (nc *NetworkController) GetNetworks(c echo.Context) error {
	networks, err := nc.networkRepo.FindAll()
	if err != nil {
		nc.logger.Printf("Failed to list networks: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve networks",
		})
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Networks retrieved successfully",
		Data:    networks,
	})
}

// GetNetwork returns one network by ID
func (nc *NetworkController) GetNetwork(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}

	network, err := nc.networkRepo.FindByID(id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Network not found",
			})
		}
		nc.logger.Printf("Failed to load network %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve network",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Network retrieved successfully",
		Data:    network,
	})
}

// UpdateNetwork updates a network's basic fields
func (nc *NetworkController) UpdateNetwork(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}

	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		IsActive    *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Network name is required",
		})
	}

	network, err := nc.networkRepo.FindByID(id)
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

	isActive := network.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if err := nc.networkRepo.Update(id, utils.SanitizeInput(req.Name), utils.SanitizeInput(req.Description), isActive); err != nil {
		nc.logger.Printf("Failed to update network %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update network",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Network updated successfully",
	})
}
