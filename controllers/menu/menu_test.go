package menuControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Turki20/HallaOrder/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Branch{},
		&models.Category{},
		&models.Product{},
		&models.OptionGroup{},
		&models.Option{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func menuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/categories", CreateCategory(db))
	r.GET("/categories", GetCategories(db))
	r.POST("/products", CreateProduct(db))
	r.GET("/products/:id", GetProductByID(db))
	r.DELETE("/products/:id", DeleteProduct(db))
	r.POST("/option-groups", CreateOptionGroup(db))
	return r
}

func seedRestaurant(t *testing.T, db *gorm.DB) *models.Restaurant {
	t.Helper()
	owner := models.User{Email: "owner@example.com", PasswordHash: "x", Role: models.RoleRestaurantOwner}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	restaurant := models.Restaurant{Name: "Test Kitchen", OwnerID: owner.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return &restaurant
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductWithOptionGroups(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	r := menuRouter(db)

	w := do(r, http.MethodPost, "/categories",
		fmt.Sprintf(`{"restaurant_id": %d, "name": "Mains"}`, restaurant.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: status %d, body %s", w.Code, w.Body.String())
	}
	var category models.Category
	_ = json.Unmarshal(w.Body.Bytes(), &category)

	w = do(r, http.MethodPost, "/option-groups",
		fmt.Sprintf(`{"restaurant_id": %d, "name": "Size", "selection_type": "SINGLE", "options": [
			{"name": "Regular", "price_adjustment": "0"},
			{"name": "Large", "price_adjustment": "4.00"}
		]}`, restaurant.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create option group: status %d, body %s", w.Code, w.Body.String())
	}
	var group models.OptionGroup
	_ = json.Unmarshal(w.Body.Bytes(), &group)
	if len(group.Options) != 2 {
		t.Fatalf("nested options = %d, want 2", len(group.Options))
	}

	w = do(r, http.MethodPost, "/products",
		fmt.Sprintf(`{"category_id": %d, "name": "Shawarma Plate", "price": "18.50", "option_group_ids": [%d]}`,
			category.ID, group.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: status %d, body %s", w.Code, w.Body.String())
	}
	var product models.Product
	_ = json.Unmarshal(w.Body.Bytes(), &product)
	if !product.Available {
		t.Fatal("product must default to available")
	}

	w = do(r, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get product: status %d", w.Code)
	}
	var loaded models.Product
	_ = json.Unmarshal(w.Body.Bytes(), &loaded)
	if len(loaded.OptionGroups) != 1 || len(loaded.OptionGroups[0].Options) != 2 {
		t.Fatalf("option groups not attached: %+v", loaded.OptionGroups)
	}
	if !loaded.Price.Equal(decimal.RequireFromString("18.50")) {
		t.Fatalf("price = %s, want 18.50", loaded.Price)
	}
}

func TestDeleteProductReferencedByOrders(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	r := menuRouter(db)

	category := models.Category{RestaurantID: restaurant.ID, Name: "Mains"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := models.Product{CategoryID: category.ID, Name: "Shawarma Plate", Price: decimal.RequireFromString("18.50"), Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	branch := models.Branch{RestaurantID: restaurant.ID, Name: "Main"}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}
	order := models.Order{
		BranchID:    branch.ID,
		GuestName:   "Sara",
		GuestPhone:  "0551234567",
		Status:      models.OrderStatusDelivered,
		TotalPrice:  decimal.RequireFromString("18.50"),
		OrderMethod: models.MethodPickup,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("18.50"),
		}},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	// history must keep resolving, so the delete is refused
	w := do(r, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("delete referenced product: status %d, want 409", w.Code)
	}
	var still models.Product
	if err := db.First(&still, product.ID).Error; err != nil {
		t.Fatalf("product gone despite conflict: %v", err)
	}

	// an unreferenced product deletes fine
	spare := models.Product{CategoryID: category.ID, Name: "Fries", Price: decimal.RequireFromString("9.00"), Available: true}
	if err := db.Create(&spare).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	w = do(r, http.MethodDelete, fmt.Sprintf("/products/%d", spare.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete spare product: status %d, body %s", w.Code, w.Body.String())
	}

	// deleting what does not exist
	w = do(r, http.MethodDelete, "/products/9999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing product: status %d, want 404", w.Code)
	}
}
