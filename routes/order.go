package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Turki20/HallaOrder/controllers/order"
	"github.com/Turki20/HallaOrder/middleware"
	"github.com/Turki20/HallaOrder/models"
)

// SetupOrderRoutes registers the staff order board. Requires JWT middleware;
// board visibility is further scoped by role inside the handlers.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	orders.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleRestaurantOwner, models.RoleStaff))
	{
		orders.GET("/board", orderControllers.OrderBoardHandler(db))
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		orders.POST("/:orderID/advance", orderControllers.AdvanceOrderHandler(db))
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}
}
