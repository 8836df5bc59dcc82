package routes

import (
	"fedex-shipping-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterShippingRoutes sets up all shipping-related routes.
func RegisterShippingRoutes(r *gin.Engine, sc *controllers.ShippingController) {
	shipping := r.Group("/shipping")

	shipping.POST("/rates", sc.GetRates)
	shipping.GET("/track/:tracking_number", sc.Track)

	// Internal/admin: quote history
	shipping.GET("/quotes", sc.ListQuotes)
}
