package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/Turki20/HallaOrder/controllers/payment"
	"github.com/Turki20/HallaOrder/middleware"
)

// SetupPaymentRoutes registers the gateway webhook. The signature middleware
// verifies (or skips in sandbox mode) before the handler runs.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payments")
	{
		payment.POST("/webhook",
			middleware.GatewayWebhookAuth(),
			paymentControllers.GatewayWebhookHandler(db),
		)
	}
}
