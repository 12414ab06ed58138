package reportControllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// customerRow aggregates one customer: registered users keyed by customer id,
// guests grouped by phone.
type customerRow struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	OrderCount int64   `json:"order_count"`
	Total      float64 `json:"total"`
	Guest      bool    `json:"guest"`
}

func customerRows(db *gorm.DB, c *gin.Context, restaurantID uint) ([]customerRow, error) {
	var registered []customerRow
	if err := baseOrders(db, c, restaurantID).
		Joins("JOIN users ON users.id = orders.customer_id").
		Where("orders.customer_id IS NOT NULL").
		Select("users.name AS name, users.phone AS phone, COUNT(*) AS order_count, COALESCE(SUM(orders.total_price), 0) AS total").
		Group("users.id, users.name, users.phone").
		Scan(&registered).Error; err != nil {
		return nil, err
	}

	var guests []customerRow
	if err := baseOrders(db, c, restaurantID).
		Where("orders.customer_id IS NULL AND orders.guest_phone <> ''").
		Select("MAX(orders.guest_name) AS name, orders.guest_phone AS phone, COUNT(*) AS order_count, COALESCE(SUM(orders.total_price), 0) AS total").
		Group("orders.guest_phone").
		Scan(&guests).Error; err != nil {
		return nil, err
	}
	for i := range guests {
		guests[i].Guest = true
	}

	return append(registered, guests...), nil
}

// GET /reports/:restaurantID/customers
func CustomersReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		rows, err := customerRows(db, c, restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": rows, "count": len(rows)})
	}
}

// GET /reports/:restaurantID/customers/export
func CustomersCSVHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		rows, err := customerRows(db, c, restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=customers.csv")
		c.Header("Content-Type", "text/csv")

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"name", "phone", "order_count", "total", "guest"})
		for _, r := range rows {
			_ = w.Write([]string{
				r.Name,
				r.Phone,
				strconv.FormatInt(r.OrderCount, 10),
				fmt.Sprintf("%.2f", r.Total),
				strconv.FormatBool(r.Guest),
			})
		}
		w.Flush()
	}
}
