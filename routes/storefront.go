package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Turki20/HallaOrder/controllers/cart"
	orderControllers "github.com/Turki20/HallaOrder/controllers/order"
	paymentControllers "github.com/Turki20/HallaOrder/controllers/payment"
	websiteControllers "github.com/Turki20/HallaOrder/controllers/website"
	"github.com/Turki20/HallaOrder/session"
)

// SetupStorefrontRoutes registers the public "/s/:slug/*" endpoints plus the
// unauthenticated order tracker.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, carts session.Store) {
	site := r.Group("/s/:slug")
	{
		site.GET("/menu", websiteControllers.StorefrontMenuHandler(db))
		site.GET("/p/:id", websiteControllers.StorefrontProductHandler(db))

		site.GET("/cart", cartControllers.GetCartHandler(db, carts))
		site.POST("/cart", cartControllers.AddCartItemHandler(db, carts))
		site.PUT("/cart", cartControllers.UpdateCartItemHandler(db, carts))
		site.DELETE("/cart", cartControllers.ClearCartHandler(db, carts))
		site.PUT("/cart/meta", cartControllers.SetCartMetaHandler(db, carts))

		site.POST("/checkout", paymentControllers.StorefrontCheckoutHandler(db, carts))
		site.GET("/checkout/success", paymentControllers.CheckoutSuccessHandler(db, carts))
		site.GET("/checkout/cancel", paymentControllers.CheckoutCancelHandler())
	}

	// Public status lookup by order id
	r.GET("/track/:orderID", orderControllers.PublicOrderStatusHandler(db))
}
