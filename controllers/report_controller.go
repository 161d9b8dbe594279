package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/config"
	"github.com/vectornet/vectornet_backend/models"
	"github.com/vectornet/vectornet_backend/reports"
	"github.com/vectornet/vectornet_backend/repositories"
)

const reportCacheTTL = 60 * time.Second

// ReportController serves network reports. Responses are cached in Redis
// for a short TTL; reports are deterministic for a given snapshot, so a
// cached body is byte-identical to a fresh one.
type ReportController struct {
	DB          *mongo.Client
	logger      *log.Logger
	networkRepo *repositories.NetworkRepository
	partnerRepo *repositories.PartnerRepository
	paymentRepo *repositories.PaymentRepository
}

func NewReportController(db *mongo.Client) *ReportController {
	return &ReportController{
		DB:          db,
		logger:      log.New(os.Stdout, "[REPORT] ", log.LstdFlags),
		networkRepo: repositories.NewNetworkRepository(db),
		partnerRepo: repositories.NewPartnerRepository(db),
		paymentRepo: repositories.NewPaymentRepository(db),
	}
}

// GetTreeReport returns the full partner-hierarchy report of a network
func (rc *ReportController) GetTreeReport(c echo.Context) error {
	networkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}

	opts, errResp := parseTreeOptions(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, *errResp)
	}

	cacheKey := fmt.Sprintf("report:tree:%s:sort=%d:dir=%d:active=%t:depth=%d",
		networkID.Hex(), opts.SortBy, opts.Direction, opts.ActiveOnly, opts.MaxDepth)
	if body, ok := rc.cachedReport(cacheKey); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	composer, errResp := rc.loadComposer(networkID)
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	report, err := composer.TreeReport(opts)
	if err != nil {
		rc.logger.Printf("Tree report failed for %s: %v", networkID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build tree report",
		})
	}

	return rc.respondCached(c, cacheKey, report, "Tree report built successfully")
}

// GetFinancialReport returns the category-level financial summary
func (rc *ReportController) GetFinancialReport(c echo.Context) error {
	networkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}

	cacheKey := "report:financial:" + networkID.Hex()
	if body, ok := rc.cachedReport(cacheKey); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	composer, errResp := rc.loadComposer(networkID)
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	report, err := composer.FinancialReport()
	if err != nil {
		rc.logger.Printf("Financial report failed for %s: %v", networkID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build financial report",
		})
	}

	return rc.respondCached(c, cacheKey, report, "Financial report built successfully")
}

// GetBusinessReport returns per-partner business rows, top earners first
func (rc *ReportController) GetBusinessReport(c echo.Context) error {
	networkID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid network ID",
		})
	}

	topN := 0
	if raw := c.QueryParam("top"); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil || topN < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid top parameter",
			})
		}
	}

	cacheKey := fmt.Sprintf("report:business:%s:top=%d", networkID.Hex(), topN)
	if body, ok := rc.cachedReport(cacheKey); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	composer, errResp := rc.loadComposer(networkID)
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	report, err := composer.BusinessReport(topN)
	if err != nil {
		rc.logger.Printf("Business report failed for %s: %v", networkID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to build business report",
		})
	}

	return rc.respondCached(c, cacheKey, report, "Business report built successfully")
}

// loadComposer fetches the network snapshot and wraps it in a composer
func (rc *ReportController) loadComposer(networkID primitive.ObjectID) (*reports.ReportComposer, *models.Response) {
	network, err := rc.networkRepo.FindByID(networkID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.Response{
				Status:  http.StatusNotFound,
				Message: "Network not found",
			}
		}
		rc.logger.Printf("Failed to load network %s: %v", networkID.Hex(), err)
		return nil, &models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve network",
		}
	}

	partners, err := rc.partnerRepo.FindByNetwork(networkID)
	if err != nil {
		rc.logger.Printf("Failed to load partners for %s: %v", networkID.Hex(), err)
		return nil, &models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load partners",
		}
	}
	payments, err := rc.paymentRepo.FindByNetwork(networkID)
	if err != nil {
		rc.logger.Printf("Failed to load payments for %s: %v", networkID.Hex(), err)
		return nil, &models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load payments",
		}
	}

	return reports.NewReportComposer(*network, partners, payments), nil
}

// cachedReport looks up a cached response body in Redis
func (rc *ReportController) cachedReport(key string) ([]byte, bool) {
	client := config.GetRedisClient()
	if client == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	body, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// respondCached wraps the report in the standard envelope, caches the
// serialized body and sends it
func (rc *ReportController) respondCached(c echo.Context, key string, report interface{}, message string) error {
	envelope := models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    report,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		rc.logger.Printf("Failed to serialize report: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to serialize report",
		})
	}

	if client := config.GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Set(ctx, key, body, reportCacheTTL).Err(); err != nil {
			rc.logger.Printf("Failed to cache report %s: %v", key, err)
		}
	}

	return c.JSONBlob(http.StatusOK, body)
}
