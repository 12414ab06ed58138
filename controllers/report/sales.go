package reportControllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type salesSummary struct {
	Revenue       float64 `json:"revenue"`
	OrderCount    int64   `json:"order_count"`
	AverageTicket float64 `json:"average_ticket"`
}

type branchRow struct {
	BranchID   uint    `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

type dayRow struct {
	Day        string  `json:"day"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

// GET /reports/:restaurantID/sales
func SalesReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		delivered := baseOrders(db, c, restaurantID).
			Where("orders.status IN ?", revenueStatuses)

		var summary salesSummary
		if err := delivered.Session(&gorm.Session{}).
			Select("COALESCE(SUM(orders.total_price), 0) AS revenue, COUNT(*) AS order_count").
			Scan(&summary).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if summary.OrderCount > 0 {
			summary.AverageTicket = summary.Revenue / float64(summary.OrderCount)
		}

		var byBranch []branchRow
		if err := delivered.Session(&gorm.Session{}).
			Select("orders.branch_id, branches.name AS branch_name, COALESCE(SUM(orders.total_price), 0) AS revenue, COUNT(*) AS order_count").
			Group("orders.branch_id, branches.name").
			Order("revenue DESC").
			Scan(&byBranch).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var byDay []dayRow
		if err := delivered.Session(&gorm.Session{}).
			Select("DATE(orders.created_at) AS day, COALESCE(SUM(orders.total_price), 0) AS revenue, COUNT(*) AS order_count").
			Group("DATE(orders.created_at)").
			Order("day").
			Scan(&byDay).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"summary":   summary,
			"by_branch": byBranch,
			"by_day":    byDay,
		})
	}
}

// GET /reports/:restaurantID/sales/export — CSV of the per-day rows.
func SalesCSVHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		var rows []dayRow
		if err := baseOrders(db, c, restaurantID).
			Where("orders.status IN ?", revenueStatuses).
			Select("DATE(orders.created_at) AS day, COALESCE(SUM(orders.total_price), 0) AS revenue, COUNT(*) AS order_count").
			Group("DATE(orders.created_at)").
			Order("day").
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=sales.csv")
		c.Header("Content-Type", "text/csv")

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"day", "revenue", "order_count"})
		for _, r := range rows {
			_ = w.Write([]string{
				r.Day,
				fmt.Sprintf("%.2f", r.Revenue),
				strconv.FormatInt(r.OrderCount, 10),
			})
		}
		w.Flush()
	}
}
