package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

// statusFlow is the linear "advance" edge set. States absent from the map
// (OutForDelivery, Delivered, Cancelled) have no advance transition.
var statusFlow = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusNew:       models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusDelivered,
}

// -------- Core Logic --------

// AdvanceOrder moves an order one step along the board flow. Advancing a state
// with no outgoing edge is a no-op, reported via advanced=false rather than an
// error. The status write is a single-field update with no version check;
// concurrent advance/cancel race last-write-wins.
func AdvanceOrder(db *gorm.DB, orderID uint) (*models.Order, bool, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, false, err
	}

	next, ok := statusFlow[order.Status]
	if !ok {
		return &order, false, nil
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", next).Error; err != nil {
		return nil, false, err
	}
	order.Status = next
	return &order, true, nil
}

// CancelOrder cancels any pre-terminal order. Cancelling a Delivered or
// Cancelled order is rejected informationally, leaving the state unchanged.
func CancelOrder(db *gorm.DB, orderID uint) (*models.Order, bool, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, false, err
	}

	if order.Status.Terminal() {
		return &order, false, nil
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, false, err
	}
	order.Status = models.OrderStatusCancelled
	return &order, true, nil
}

// allowedBranches scopes board visibility by role. A nil slice with ok=true
// means "all branches" (admin).
func allowedBranches(db *gorm.DB, userID uint, role string) ([]uint, bool, error) {
	switch models.Role(role) {
	case models.RoleAdmin:
		return nil, true, nil
	case models.RoleRestaurantOwner:
		var ids []uint
		err := db.Model(&models.Branch{}).
			Joins("JOIN restaurants ON restaurants.id = branches.restaurant_id").
			Where("restaurants.owner_id = ?", userID).
			Pluck("branches.id", &ids).Error
		return ids, false, err
	case models.RoleStaff:
		var ids []uint
		err := db.Model(&models.Employee{}).
			Where("user_id = ?", userID).
			Distinct().
			Pluck("branch_id", &ids).Error
		return ids, false, err
	default:
		return []uint{}, false, nil
	}
}

// -------- Handlers --------

type orderIDUri struct {
	OrderID uint `uri:"orderID" binding:"required"`
}

// POST /orders/:orderID/advance
func AdvanceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri orderIDUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, advanced, err := AdvanceOrder(db, uri.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to advance order"})
			return
		}
		if !advanced {
			c.JSON(http.StatusOK, gin.H{
				"advanced": false,
				"status":   order.Status,
				"message":  "order cannot be advanced from its current status",
			})
			return
		}

		BroadcastOrderUpdate(order)
		c.JSON(http.StatusOK, gin.H{"advanced": true, "status": order.Status})
	}
}

// POST /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri orderIDUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, cancelled, err := CancelOrder(db, uri.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			return
		}
		if !cancelled {
			c.JSON(http.StatusOK, gin.H{
				"cancelled": false,
				"status":    order.Status,
				"message":   "order can no longer be cancelled",
			})
			return
		}

		BroadcastOrderUpdate(order)
		c.JSON(http.StatusOK, gin.H{"cancelled": true, "status": order.Status})
	}
}

// GET /orders/board?branch=N — orders for the caller's branches grouped by
// board column.
func OrderBoardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")

		branchIDs, all, err := allowedBranches(db, userID, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve branches"})
			return
		}

		q := db.Preload("Items").Preload("Customer").Order("created_at DESC")
		if !all {
			q = q.Where("branch_id IN ?", branchIDs)
		}
		if branch := c.Query("branch"); branch != "" {
			q = q.Where("branch_id = ?", branch)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		board := gin.H{
			"new":       filterStatus(orders, models.OrderStatusNew),
			"preparing": filterStatus(orders, models.OrderStatusPreparing),
			"ready":     filterStatus(orders, models.OrderStatusReady),
		}
		c.JSON(http.StatusOK, board)
	}
}

func filterStatus(orders []models.Order, status models.OrderStatus) []models.Order {
	out := []models.Order{}
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// GET /orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri orderIDUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Preload("Items.Product").
			Preload("Delivery").
			Preload("Pickup").
			Preload("DineIn").
			First(&order, uri.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /track/:orderID — public, unauthenticated status lookup.
func PublicOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri orderIDUri
		if err := c.ShouldBindUri(&uri); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.Select("id", "status", "updated_at").First(&order, uri.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":         order.ID,
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		})
	}
}
