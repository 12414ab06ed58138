package reportControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

// Only delivered orders count as revenue.
var revenueStatuses = []models.OrderStatus{models.OrderStatusDelivered}

// authorizedRestaurant resolves the :restaurantID param and rejects callers
// who neither own the restaurant nor hold the admin role.
func authorizedRestaurant(db *gorm.DB, c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("restaurantID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantID is required"})
		return 0, false
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return 0, false
	}
	if c.GetString("role") != string(models.RoleAdmin) && restaurant.OwnerID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your restaurant"})
		return 0, false
	}
	return restaurant.ID, true
}

// parseRange reads start/end ISO dates from the query, defaulting to the
// trailing 30 days.
func parseRange(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -29)

	if s := c.Query("start"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			start = t
		}
	}
	if e := c.Query("end"); e != "" {
		if t, err := time.Parse("2006-01-02", e); err == nil {
			end = t
		}
	}
	// make the end bound inclusive of the whole day
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return start, end
}

// baseOrders scopes orders to the restaurant and range, with optional branch
// and order-method filters from the query string.
func baseOrders(db *gorm.DB, c *gin.Context, restaurantID uint) *gorm.DB {
	start, end := parseRange(c)

	q := db.Model(&models.Order{}).
		Joins("JOIN branches ON branches.id = orders.branch_id").
		Where("branches.restaurant_id = ?", restaurantID).
		Where("orders.created_at BETWEEN ? AND ?", start, end)

	if branch := c.Query("branch"); branch != "" {
		q = q.Where("orders.branch_id = ?", branch)
	}
	if otype := c.Query("otype"); otype != "" {
		q = q.Where("orders.order_method = ?", otype)
	}
	return q
}
