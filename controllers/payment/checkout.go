package paymentControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Turki20/HallaOrder/controllers/order"
	"github.com/Turki20/HallaOrder/models"
	"github.com/Turki20/HallaOrder/session"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoGuestIdentity = errors.New("guest name and phone are required")
	ErrNoOrderMethod   = errors.New("order method is not set")
)

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"` // "cash" or "online"
	Method        string `json:"method"`                            // gateway card type: Mada/ApplePay/Visa
	Currency      string `json:"currency"`
}

// POST /s/:slug/checkout
// Cash orders are materialized immediately. Online orders only pre-create a
// Pending payment bound to the gateway session; the order itself is
// materialized on the success path.
func StorefrontCheckoutHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, err := websiteBySlug(db, c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		lines, err := carts.Cart(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}
		meta, err := carts.Meta(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmptyCart.Error()})
			return
		}
		if meta.OrderMethod == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrNoOrderMethod.Error()})
			return
		}

		total := session.Total(lines)

		if req.PaymentMethod == "cash" {
			order, err := MaterializeOrder(db, website, meta, lines, models.PaymentCash)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			payment := models.Payment{
				OrderID: &order.ID,
				Method:  models.GatewayCash,
				Status:  models.PaymentPending,
			}
			if err := db.Create(&payment).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
				return
			}
			if err := ensureInvoice(db, order); err != nil {
				log.Printf("invoice creation failed for order %d: %v", order.ID, err)
			}

			meta.LastOrderID = order.ID
			meta.CheckoutSession = ""
			_ = carts.SaveMeta(ctx, sid, website.ID, meta)
			_ = carts.ClearCart(ctx, sid, website.ID)

			orderControllers.BroadcastOrderUpdate(order)

			c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "total": total, "status": order.Status})
			return
		}

		currency := req.Currency
		if currency == "" {
			currency = os.Getenv("PAY_DEFAULT_CURRENCY")
		}
		if currency == "" {
			currency = "sar"
		}
		description := fmt.Sprintf("%s – Order for session %s", website.Slug, sid)

		gwSession, err := CreateCheckoutSession(models.ToHalalah(total), currency, description)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		method := models.GatewayVisa
		switch models.GatewayMethod(req.Method) {
		case models.GatewayMada, models.GatewayApplePay, models.GatewayVisa:
			method = models.GatewayMethod(req.Method)
		}

		payment := models.Payment{
			Method:        method,
			Status:        models.PaymentPending,
			TransactionID: gwSession.ID,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}

		meta.CheckoutSession = gwSession.ID
		meta.LastOrderID = 0
		if err := carts.SaveMeta(ctx, sid, website.ID, meta); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save checkout state"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session_id": gwSession.ID, "payment_url": gwSession.URL})
	}
}

// GET /s/:slug/checkout/success?session_id=...
// Polls the gateway; on "paid" materializes the order from the session cart
// (first time only, guarded by last_order_id) and runs the shared completion
// routine. Safe to hit more than once.
func CheckoutSuccessHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, err := websiteBySlug(db, c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
			return
		}

		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		gwSession, err := RetrieveCheckoutSession(sessionID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if gwSession.PaymentStatus != "paid" {
			c.JSON(http.StatusOK, gin.H{"paid": false, "message": "payment not completed yet"})
			return
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		meta, err := carts.Meta(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load checkout state"})
			return
		}

		orderID := meta.LastOrderID
		if orderID == 0 && meta.CheckoutSession == sessionID {
			lines, err := carts.Cart(ctx, sid, website.ID)
			if err != nil || len(lines) == 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "cart for this checkout is gone"})
				return
			}

			order, err := MaterializeOrder(db, website, meta, lines, models.PaymentOnline)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			orderID = order.ID

			// attach the pending payment to the freshly created order
			if err := db.Model(&models.Payment{}).
				Where("transaction_id = ?", sessionID).
				Update("order_id", order.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach payment"})
				return
			}

			meta.LastOrderID = order.ID
			_ = carts.SaveMeta(ctx, sid, website.ID, meta)
			_ = carts.ClearCart(ctx, sid, website.ID)

			orderControllers.BroadcastOrderUpdate(order)
		}

		if _, err := ApplyCheckoutCompleted(db, sessionID, gwSession.PaymentIntent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"paid": true, "order_id": orderID})
	}
}

// GET /s/:slug/checkout/cancel
func CheckoutCancelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "checkout cancelled"})
	}
}

func websiteBySlug(db *gorm.DB, slug string) (*models.Website, error) {
	var website models.Website
	if err := db.Where("slug = ?", slug).First(&website).Error; err != nil {
		return nil, err
	}
	return &website, nil
}

// MaterializeOrder turns the session cart into a persisted Order: item lines
// priced from their snapshots, the fulfillment sub-record for the chosen order
// method, and the guest identity from the cart meta. Runs in one transaction;
// products are re-checked inside it so a product deleted after carting fails
// the whole checkout.
func MaterializeOrder(db *gorm.DB, website *models.Website, meta session.CartMeta, lines []session.CartLine, payMethod models.PaymentMethod) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if meta.GuestName == "" || meta.GuestPhone == "" {
		return nil, ErrNoGuestIdentity
	}

	var branch models.Branch
	if err := db.Where("id = ? AND restaurant_id = ?", meta.BranchID, website.RestaurantID).
		First(&branch).Error; err != nil {
		return nil, errors.New("branch does not belong to this storefront")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		total := session.Total(lines)

		var items []models.OrderItem
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				return fmt.Errorf("product %d is no longer available", line.ProductID)
			}

			options := line.Options
			if options == "" && len(line.OptionIDs) > 0 {
				raw, _ := json.Marshal(line.OptionIDs)
				options = string(raw)
			}

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Options:   options,
			})
		}

		order = models.Order{
			BranchID:      branch.ID,
			GuestName:     meta.GuestName,
			GuestPhone:    meta.GuestPhone,
			Status:        models.OrderStatusNew,
			TotalPrice:    total,
			PaymentMethod: payMethod,
			OrderMethod:   models.OrderMethod(meta.OrderMethod),
			Items:         items,
		}
		if !order.HasIdentity() {
			return ErrNoGuestIdentity
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		switch order.OrderMethod {
		case models.MethodDelivery:
			return tx.Create(&models.DeliveryDetails{
				OrderID: order.ID,
				Address: meta.Address,
				Phone:   meta.GuestPhone,
				Notes:   meta.Notes,
			}).Error
		case models.MethodPickup:
			return tx.Create(&models.PickupDetails{
				OrderID:    order.ID,
				PickupTime: meta.PickupTime,
				Notes:      meta.Notes,
			}).Error
		case models.MethodDineIn:
			return tx.Create(&models.DineInDetails{
				OrderID:     order.ID,
				TableNumber: meta.TableNumber,
			}).Error
		default:
			return ErrNoOrderMethod
		}
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
