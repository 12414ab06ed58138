package menuControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

// -------- Categories --------

type categoryRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Position     int    `json:"position"`
}

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category := models.Category{
			RestaurantID: req.RestaurantID,
			Name:         req.Name,
			Description:  req.Description,
			Position:     req.Position,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).Order("position")
		if rid := c.Query("restaurant_id"); rid != "" {
			q = q.Where("restaurant_id = ?", rid)
		}
		var categories []models.Category
		if err := q.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category.Name = req.Name
		category.Description = req.Description
		category.Position = req.Position
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Category{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

// -------- Products --------

type productRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Available   *bool           `json:"available"`
	Position    int             `json:"position"`
	GroupIDs    []uint          `json:"option_group_ids"`
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Available:   true,
			Position:    req.Position,
		}
		if req.Available != nil {
			product.Available = *req.Available
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			if len(req.GroupIDs) > 0 {
				var groups []models.OptionGroup
				if err := tx.Find(&groups, req.GroupIDs).Error; err != nil {
					return err
				}
				return tx.Model(&product).Association("OptionGroups").Replace(groups)
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("OptionGroups.Options").Order("position")
		if cid := c.Query("category_id"); cid != "" {
			q = q.Where("category_id = ?", cid)
		}
		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("OptionGroups.Options").First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product.CategoryID = req.CategoryID
		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.Position = req.Position
		if req.Available != nil {
			product.Available = *req.Available
		}
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct refuses to remove a product referenced by any order line;
// order history must keep resolving.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.Model(&models.OrderItem{}).
			Where("product_id = ?", c.Param("id")).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "product is referenced by existing orders"})
			return
		}

		result := db.Delete(&models.Product{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// -------- Option groups --------

type optionGroupRequest struct {
	RestaurantID  uint                 `json:"restaurant_id" binding:"required"`
	Name          string               `json:"name" binding:"required"`
	SelectionType models.SelectionType `json:"selection_type"`
	IsRequired    bool                 `json:"is_required"`
	MinSelection  int                  `json:"min_selection"`
	MaxSelection  int                  `json:"max_selection"`
	Options       []struct {
		Name            string          `json:"name" binding:"required"`
		PriceAdjustment decimal.Decimal `json:"price_adjustment"`
		Position        int             `json:"position"`
	} `json:"options"`
}

func CreateOptionGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req optionGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		group := models.OptionGroup{
			RestaurantID:  req.RestaurantID,
			Name:          req.Name,
			SelectionType: models.SelectionSingle,
			IsRequired:    req.IsRequired,
			MinSelection:  req.MinSelection,
			MaxSelection:  req.MaxSelection,
		}
		if req.SelectionType == models.SelectionMultiple {
			group.SelectionType = models.SelectionMultiple
		}
		if group.MaxSelection < 1 {
			group.MaxSelection = 1
		}
		for _, opt := range req.Options {
			group.Options = append(group.Options, models.Option{
				Name:            opt.Name,
				PriceAdjustment: opt.PriceAdjustment,
				Position:        opt.Position,
			})
		}

		if err := db.Create(&group).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to create option group"})
			return
		}
		c.JSON(http.StatusCreated, group)
	}
}

func GetOptionGroups(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Options").Order("name")
		if rid := c.Query("restaurant_id"); rid != "" {
			q = q.Where("restaurant_id = ?", rid)
		}
		var groups []models.OptionGroup
		if err := q.Find(&groups).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, groups)
	}
}

func DeleteOptionGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.OptionGroup{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete option group"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "option group not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Option group deleted"})
	}
}
