package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/session"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts session.Store) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront: menu, cart, checkout, order tracking
	SetupStorefrontRoutes(r, db, carts)

	// Staff order board (JWT-protected)
	SetupOrderRoutes(r, db)

	// Payment gateway webhook
	SetupPaymentRoutes(r, db)

	// Owner/admin management: restaurants, menu, wallet, reports, websites
	SetupManagementRoutes(r, db)
}
