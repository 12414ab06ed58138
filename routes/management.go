package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	menuControllers "github.com/Turki20/HallaOrder/controllers/menu"
	reportControllers "github.com/Turki20/HallaOrder/controllers/report"
	restaurantControllers "github.com/Turki20/HallaOrder/controllers/restaurant"
	walletControllers "github.com/Turki20/HallaOrder/controllers/wallet"
	websiteControllers "github.com/Turki20/HallaOrder/controllers/website"
	"github.com/Turki20/HallaOrder/middleware"
	"github.com/Turki20/HallaOrder/models"
)

// SetupManagementRoutes registers the owner/admin console endpoints.
func SetupManagementRoutes(r *gin.Engine, db *gorm.DB) {
	owner := r.Group("/")
	owner.Use(middleware.ValidateToken)
	owner.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleRestaurantOwner))
	{
		restaurants := owner.Group("/restaurants")
		{
			restaurants.POST("", restaurantControllers.CreateRestaurant(db))
			restaurants.GET("", restaurantControllers.GetRestaurants(db))
			restaurants.PUT("/:id", restaurantControllers.UpdateRestaurant(db))
		}

		branches := owner.Group("/branches")
		{
			branches.POST("", restaurantControllers.CreateBranch(db))
			branches.GET("", restaurantControllers.GetBranches(db))
			branches.DELETE("/:id", restaurantControllers.DeleteBranch(db))
		}

		employees := owner.Group("/employees")
		{
			employees.POST("", restaurantControllers.AddEmployee(db))
			employees.GET("", restaurantControllers.GetEmployees(db))
		}

		categories := owner.Group("/categories")
		{
			categories.POST("", menuControllers.CreateCategory(db))
			categories.GET("", menuControllers.GetCategories(db))
			categories.PUT("/:id", menuControllers.UpdateCategory(db))
			categories.DELETE("/:id", menuControllers.DeleteCategory(db))
		}

		products := owner.Group("/products")
		{
			products.POST("", menuControllers.CreateProduct(db))
			products.GET("", menuControllers.GetProducts(db))
			products.GET("/:id", menuControllers.GetProductByID(db))
			products.PUT("/:id", menuControllers.UpdateProduct(db))
			products.DELETE("/:id", menuControllers.DeleteProduct(db))
		}

		optionGroups := owner.Group("/option-groups")
		{
			optionGroups.POST("", menuControllers.CreateOptionGroup(db))
			optionGroups.GET("", menuControllers.GetOptionGroups(db))
			optionGroups.DELETE("/:id", menuControllers.DeleteOptionGroup(db))
		}

		wallet := owner.Group("/wallet")
		{
			wallet.GET("/:restaurantID", walletControllers.GetWalletHandler(db))
			wallet.POST("/:restaurantID/withdraw", walletControllers.WithdrawHandler(db))
		}

		reports := owner.Group("/reports")
		{
			reports.GET("/:restaurantID/sales", reportControllers.SalesReportHandler(db))
			reports.GET("/:restaurantID/sales/export", reportControllers.SalesCSVHandler(db))
			reports.GET("/:restaurantID/customers", reportControllers.CustomersReportHandler(db))
			reports.GET("/:restaurantID/customers/export", reportControllers.CustomersCSVHandler(db))
			reports.GET("/:restaurantID/orders/export-excel", reportControllers.ExportOrdersToExcel(db))
		}

		websites := owner.Group("/websites")
		{
			websites.GET("/:restaurantID", websiteControllers.GetWebsiteHandler(db))
			websites.PUT("/:restaurantID", websiteControllers.UpdateWebsiteHandler(db))
		}
	}
}
