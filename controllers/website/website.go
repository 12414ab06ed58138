package websiteControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

// GET /s/:slug/menu — the public storefront menu: categories with their
// available products, in display order.
func StorefrontMenuHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var website models.Website
		if err := db.Preload("Restaurant").Where("slug = ?", c.Param("slug")).
			First(&website).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
			return
		}

		var categories []models.Category
		if err := db.Where("restaurant_id = ?", website.RestaurantID).
			Preload("Products", func(db *gorm.DB) *gorm.DB {
				return db.Where("available = ?", true).Order("position")
			}).
			Order("position").
			Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var branches []models.Branch
		if err := db.Where("restaurant_id = ?", website.RestaurantID).
			Order("id").Find(&branches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"website":    website,
			"name":       website.Restaurant.Name,
			"categories": categories,
			"branches":   branches,
		})
	}
}

// GET /s/:slug/p/:id — product detail with its option groups.
func StorefrontProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var website models.Website
		if err := db.Where("slug = ?", c.Param("slug")).First(&website).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "storefront not found"})
			return
		}

		var product models.Product
		err := db.Preload("OptionGroups.Options").
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("products.id = ? AND categories.restaurant_id = ?", c.Param("id"), website.RestaurantID).
			First(&product).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// ownedRestaurant resolves the :restaurantID param and rejects callers who
// neither own the restaurant nor hold the admin role.
func ownedRestaurant(db *gorm.DB, c *gin.Context) (*models.Restaurant, bool) {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, c.Param("restaurantID")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return nil, false
	}
	if c.GetString("role") != string(models.RoleAdmin) && restaurant.OwnerID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your restaurant"})
		return nil, false
	}
	return &restaurant, true
}

type websiteRequest struct {
	Theme          string `json:"theme"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Logo           string `json:"logo"`
	Subdomain      string `json:"subdomain"`
	Domain         string `json:"domain"`
}

// GET /websites/:restaurantID — owner view, creates the site if missing.
func GetWebsiteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, ok := ownedRestaurant(db, c)
		if !ok {
			return
		}

		site, err := models.EnsureWebsite(db, restaurant)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load website"})
			return
		}
		c.JSON(http.StatusOK, site)
	}
}

// PUT /websites/:restaurantID
func UpdateWebsiteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, ok := ownedRestaurant(db, c)
		if !ok {
			return
		}

		site, err := models.EnsureWebsite(db, restaurant)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load website"})
			return
		}

		var req websiteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Theme != "" {
			site.Theme = req.Theme
		}
		site.PrimaryColor = req.PrimaryColor
		site.SecondaryColor = req.SecondaryColor
		site.Logo = req.Logo
		site.Subdomain = req.Subdomain
		site.Domain = req.Domain

		if err := db.Save(site).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update website"})
			return
		}
		c.JSON(http.StatusOK, site)
	}
}
