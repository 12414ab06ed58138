package cartControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
	"github.com/Turki20/HallaOrder/session"
)

type addItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	OptionIDs []uint `json:"option_ids"`
}

func storefront(db *gorm.DB, c *gin.Context) (*models.Website, bool) {
	var website models.Website
	if err := db.Where("slug = ?", c.Param("slug")).First(&website).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
		return nil, false
	}
	return &website, true
}

// POST /s/:slug/cart
// Adds a line; the unit price snapshots product price plus option adjustments.
func AddCartItemHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, ok := storefront(db, c)
		if !ok {
			return
		}

		var input addItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// product must belong to this storefront's restaurant and be available
		var product models.Product
		err := db.Joins("JOIN categories ON categories.id = products.category_id").
			Where("products.id = ? AND categories.restaurant_id = ?", input.ProductID, website.RestaurantID).
			First(&product).Error
		if err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}
		if !product.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			return
		}

		unitPrice := product.Price
		var optionNames []string
		if len(input.OptionIDs) > 0 {
			var options []models.Option
			if err := db.Where("id IN ?", input.OptionIDs).Find(&options).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load options"})
				return
			}
			if len(options) != len(input.OptionIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown option selected"})
				return
			}
			for _, opt := range options {
				unitPrice = unitPrice.Add(opt.PriceAdjustment)
				optionNames = append(optionNames, opt.Name)
			}
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		lines, err := carts.Cart(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		// same product with the same options collapses into one line
		merged := false
		newLine := session.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: unitPrice,
			Quantity:  input.Quantity,
			OptionIDs: input.OptionIDs,
			Options:   strings.Join(optionNames, ", "),
		}
		for i, line := range lines {
			if line.ProductID == newLine.ProductID && line.Options == newLine.Options {
				lines[i].Quantity += input.Quantity
				merged = true
				break
			}
		}
		if !merged {
			lines = append(lines, newLine)
		}

		if err := carts.SaveCart(ctx, sid, website.ID, lines); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"items": lines, "total": session.Total(lines)})
	}
}

// GET /s/:slug/cart
func GetCartHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, ok := storefront(db, c)
		if !ok {
			return
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		lines, err := carts.Cart(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		meta, err := carts.Meta(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		count := 0
		for _, l := range lines {
			count += l.Quantity
		}
		c.JSON(http.StatusOK, gin.H{
			"items": lines,
			"meta":  meta,
			"count": count,
			"total": session.Total(lines),
		})
	}
}

type updateItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Options   string `json:"options"`
	Quantity  int    `json:"quantity"` // 0 removes the line
}

// PUT /s/:slug/cart
func UpdateCartItemHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, ok := storefront(db, c)
		if !ok {
			return
		}

		var input updateItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot be negative"})
			return
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		lines, err := carts.Cart(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		found := false
		updated := lines[:0]
		for _, line := range lines {
			if line.ProductID == input.ProductID && line.Options == input.Options {
				found = true
				if input.Quantity == 0 {
					continue
				}
				line.Quantity = input.Quantity
			}
			updated = append(updated, line)
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if err := carts.SaveCart(ctx, sid, website.ID, updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": updated, "total": session.Total(updated)})
	}
}

// DELETE /s/:slug/cart
func ClearCartHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, ok := storefront(db, c)
		if !ok {
			return
		}

		sid := session.SID(c)
		if err := carts.ClearCart(c.Request.Context(), sid, website.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "total": decimal.Zero})
	}
}

type metaRequest struct {
	OrderMethod string `json:"order_method" binding:"required,oneof=delivery pickup dine_in"`
	BranchID    uint   `json:"branch_id" binding:"required"`
	GuestName   string `json:"guest_name" binding:"required"`
	GuestPhone  string `json:"guest_phone" binding:"required"`
	Address     string `json:"address"`
	PickupTime  string `json:"pickup_time"`
	TableNumber string `json:"table_number"`
	Notes       string `json:"notes"`
}

// PUT /s/:slug/cart/meta
// Captures fulfillment details and guest identity ahead of checkout.
func SetCartMetaHandler(db *gorm.DB, carts session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		website, ok := storefront(db, c)
		if !ok {
			return
		}

		var input metaRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var branch models.Branch
		if err := db.Where("id = ? AND restaurant_id = ?", input.BranchID, website.RestaurantID).
			First(&branch).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "branch does not belong to this storefront"})
			return
		}

		switch models.OrderMethod(input.OrderMethod) {
		case models.MethodDelivery:
			if input.Address == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "address is required for delivery"})
				return
			}
		case models.MethodDineIn:
			if input.TableNumber == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "table number is required for dine-in"})
				return
			}
		}

		sid := session.SID(c)
		ctx := c.Request.Context()
		meta, err := carts.Meta(ctx, sid, website.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		meta.OrderMethod = input.OrderMethod
		meta.BranchID = input.BranchID
		meta.GuestName = input.GuestName
		meta.GuestPhone = input.GuestPhone
		meta.Address = input.Address
		meta.PickupTime = input.PickupTime
		meta.TableNumber = input.TableNumber
		meta.Notes = input.Notes

		if err := carts.SaveMeta(ctx, sid, website.ID, meta); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, meta)
	}
}
