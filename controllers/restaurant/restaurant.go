package restaurantControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

type restaurantRequest struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	SubscriptionPlanID *uint  `json:"subscription_plan_id"`
}

// POST /restaurants — creating a restaurant also provisions its storefront
// website with a unique slug.
func CreateRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req restaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		restaurant := models.Restaurant{
			Name:               req.Name,
			Description:        req.Description,
			OwnerID:            c.GetUint("user_id"),
			SubscriptionPlanID: req.SubscriptionPlanID,
		}
		if err := db.Create(&restaurant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
			return
		}

		site, err := models.EnsureWebsite(db, &restaurant)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create storefront"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant, "website": site})
	}
}

// GET /restaurants — owners see their own, admins see all.
func GetRestaurants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Branches").Preload("SubscriptionPlan")
		if c.GetString("role") != string(models.RoleAdmin) {
			q = q.Where("owner_id = ?", c.GetUint("user_id"))
		}
		var restaurants []models.Restaurant
		if err := q.Find(&restaurants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, restaurants)
	}
}

func UpdateRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var restaurant models.Restaurant
		if err := db.First(&restaurant, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if c.GetString("role") != string(models.RoleAdmin) && restaurant.OwnerID != c.GetUint("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your restaurant"})
			return
		}

		var req restaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		restaurant.Name = req.Name
		restaurant.Description = req.Description
		restaurant.SubscriptionPlanID = req.SubscriptionPlanID
		if err := db.Save(&restaurant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

// -------- Branches --------

type branchRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	QRCode       string `json:"qr_code"`
}

func CreateBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req branchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		branch := models.Branch{
			RestaurantID: req.RestaurantID,
			Name:         req.Name,
			Address:      req.Address,
			QRCode:       req.QRCode,
		}
		if err := db.Create(&branch).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
			return
		}
		c.JSON(http.StatusCreated, branch)
	}
}

func GetBranches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Order("id")
		if rid := c.Query("restaurant_id"); rid != "" {
			q = q.Where("restaurant_id = ?", rid)
		}
		var branches []models.Branch
		if err := q.Find(&branches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, branches)
	}
}

func DeleteBranch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Branch{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
	}
}

// -------- Employees --------

type employeeRequest struct {
	UserID   uint                `json:"user_id" binding:"required"`
	BranchID uint                `json:"branch_id" binding:"required"`
	Role     models.EmployeeRole `json:"role" binding:"required,oneof=Cashier KitchenStaff"`
}

func AddEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		employee := models.Employee{
			UserID:   req.UserID,
			BranchID: req.BranchID,
			Role:     req.Role,
		}
		if err := db.Create(&employee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add employee"})
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

func GetEmployees(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("User")
		if bid := c.Query("branch_id"); bid != "" {
			q = q.Where("branch_id = ?", bid)
		}
		var employees []models.Employee
		if err := q.Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, employees)
	}
}
