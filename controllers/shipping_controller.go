package controllers

import (
	"net/http"
	"strconv"

	"fedex-shipping-service/models"
	"fedex-shipping-service/services"

	"github.com/gin-gonic/gin"
)

// ShippingController handles HTTP requests for shipping operations.
type ShippingController struct {
	shippingService services.ShippingService
}

// NewShippingController creates a new ShippingController.
func NewShippingController(svc services.ShippingService) *ShippingController {
	return &ShippingController{shippingService: svc}
}

// GetRates handles POST /shipping/rates
func (sc *ShippingController) GetRates(ctx *gin.Context) {
	var req models.RateQuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := sc.shippingService.GetRates(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	// Zero quotes with carrier error strings is a valid business outcome.
	ctx.JSON(http.StatusOK, result)
}

// Track handles GET /shipping/track/:tracking_number
func (sc *ShippingController) Track(ctx *gin.Context) {
	trackingNumber := ctx.Param("tracking_number")
	if trackingNumber == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tracking number is required"})
		return
	}

	result, svcErr := sc.shippingService.Track(ctx.Request.Context(), trackingNumber)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListQuotes handles GET /shipping/quotes
func (sc *ShippingController) ListQuotes(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	records, total, svcErr := sc.shippingService.ListQuotes(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"quotes": records,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limitInt = l
	}
	return pageInt, limitInt
}
