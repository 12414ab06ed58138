package paymentControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WebhookEvent is the gateway's signed event envelope.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"` // session id, or intent id for payment_intent events
			PaymentIntent string `json:"payment_intent,omitempty"`
			PaymentStatus string `json:"payment_status,omitempty"`
		} `json:"object"`
	} `json:"data"`
}

// POST /payments/webhook
// The gateway may deliver the same event more than once; every branch below is
// idempotent. Unknown event types are acknowledged and ignored.
func GatewayWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		var event WebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			applied, err := ApplyCheckoutCompleted(db, event.Data.Object.ID, event.Data.Object.PaymentIntent)
			if err != nil {
				log.Printf("webhook %s: completion failed for session %s: %v",
					event.ID, event.Data.Object.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply event"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"applied": applied})

		case "checkout.session.expired", "payment_intent.payment_failed":
			if err := MarkPaymentFailed(db, event.Data.Object.ID); err != nil {
				log.Printf("webhook %s: failed to mark payment failed: %v", event.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply event"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"applied": true})

		default:
			c.JSON(http.StatusOK, gin.H{"applied": false})
		}
	}
}
