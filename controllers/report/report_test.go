package reportControllers

import (
	"encoding/json"
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

type fixture struct {
	db         *gorm.DB
	router     *gin.Engine
	owner      models.User
	restaurant models.Restaurant
	branchA    models.Branch
	branchB    models.Branch
}

// reportRouter mounts the report handlers behind a stub identity, the way the
// JWT middleware would populate the context in production.
func reportRouter(db *gorm.DB, userID uint, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
	})
	r.GET("/reports/:restaurantID/sales", SalesReportHandler(db))
	r.GET("/reports/:restaurantID/sales/export", SalesCSVHandler(db))
	r.GET("/reports/:restaurantID/customers", CustomersReportHandler(db))
	r.GET("/reports/:restaurantID/customers/export", CustomersCSVHandler(db))
	r.GET("/reports/:restaurantID/orders/export-excel", ExportOrdersToExcel(db))
	return r
}

func newFixture(t *testing.T) *fixture {
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
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	owner := models.User{Email: "owner@example.com", PasswordHash: "x", Role: models.RoleRestaurantOwner}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	restaurant := models.Restaurant{Name: "Test Kitchen", OwnerID: owner.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	branchA := models.Branch{RestaurantID: restaurant.ID, Name: "Downtown"}
	branchB := models.Branch{RestaurantID: restaurant.ID, Name: "Mall"}
	if err := db.Create(&branchA).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if err := db.Create(&branchB).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}

	r := reportRouter(db, owner.ID, models.RoleRestaurantOwner)

	return &fixture{db: db, router: r, owner: owner, restaurant: restaurant, branchA: branchA, branchB: branchB}
}

func (fx *fixture) order(t *testing.T, branchID uint, status models.OrderStatus, total string, customerID *uint, guestName, guestPhone string) {
	t.Helper()
	order := models.Order{
		BranchID:    branchID,
		CustomerID:  customerID,
		GuestName:   guestName,
		GuestPhone:  guestPhone,
		Status:      status,
		TotalPrice:  decimal.RequireFromString(total),
		OrderMethod: models.MethodPickup,
	}
	if err := fx.db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
}

func (fx *fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func TestSalesReportCountsOnlyDelivered(t *testing.T) {
	fx := newFixture(t)

	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "100.00", nil, "Sara", "0551111111")
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "50.00", nil, "Sara", "0551111111")
	fx.order(t, fx.branchB.ID, models.OrderStatusDelivered, "30.00", nil, "Omar", "0552222222")
	// none of these count as revenue
	fx.order(t, fx.branchA.ID, models.OrderStatusNew, "999.00", nil, "Sara", "0551111111")
	fx.order(t, fx.branchA.ID, models.OrderStatusCancelled, "999.00", nil, "Sara", "0551111111")
	fx.order(t, fx.branchA.ID, models.OrderStatusPreparing, "999.00", nil, "Sara", "0551111111")

	w := fx.get("/reports/1/sales")
	if w.Code != http.StatusOK {
		t.Fatalf("sales report: status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Summary struct {
			Revenue       float64 `json:"revenue"`
			OrderCount    int64   `json:"order_count"`
			AverageTicket float64 `json:"average_ticket"`
		} `json:"summary"`
		ByBranch []struct {
			BranchID uint    `json:"branch_id"`
			Revenue  float64 `json:"revenue"`
		} `json:"by_branch"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.Revenue != 180.0 || resp.Summary.OrderCount != 3 {
		t.Fatalf("summary = %+v, want revenue 180 over 3 orders", resp.Summary)
	}
	if resp.Summary.AverageTicket != 60.0 {
		t.Fatalf("average ticket = %v, want 60", resp.Summary.AverageTicket)
	}
	if len(resp.ByBranch) != 2 {
		t.Fatalf("by_branch rows = %d, want 2", len(resp.ByBranch))
	}
	// sorted by revenue, branch A first
	if resp.ByBranch[0].BranchID != fx.branchA.ID || resp.ByBranch[0].Revenue != 150.0 {
		t.Fatalf("top branch = %+v", resp.ByBranch[0])
	}
}

func TestSalesReportBranchFilter(t *testing.T) {
	fx := newFixture(t)
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "100.00", nil, "Sara", "0551111111")
	fx.order(t, fx.branchB.ID, models.OrderStatusDelivered, "30.00", nil, "Omar", "0552222222")

	w := fx.get("/reports/1/sales?branch=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Summary struct {
			Revenue    float64 `json:"revenue"`
			OrderCount int64   `json:"order_count"`
		} `json:"summary"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Summary.Revenue != 30.0 || resp.Summary.OrderCount != 1 {
		t.Fatalf("filtered summary = %+v", resp.Summary)
	}
}

func TestSalesReportDateRangeExcludesOutside(t *testing.T) {
	fx := newFixture(t)
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "100.00", nil, "Sara", "0551111111")

	// a window long before any order existed
	w := fx.get("/reports/1/sales?start=2001-01-01&end=2001-01-31")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Summary struct {
			Revenue    float64 `json:"revenue"`
			OrderCount int64   `json:"order_count"`
		} `json:"summary"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Summary.OrderCount != 0 || resp.Summary.Revenue != 0 {
		t.Fatalf("out-of-range summary = %+v", resp.Summary)
	}
}

func TestSalesCSVExport(t *testing.T) {
	fx := newFixture(t)
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "100.00", nil, "Sara", "0551111111")

	w := fx.get("/reports/1/sales/export")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sales.csv") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "day,revenue,order_count") {
		t.Fatalf("missing csv header: %q", body)
	}
	if !strings.Contains(body, "100.00,1") {
		t.Fatalf("missing data row: %q", body)
	}
}

func TestCustomersReportGroupsGuestsByPhone(t *testing.T) {
	fx := newFixture(t)

	registered := models.User{Email: "sara@example.com", PasswordHash: "x", Name: "Sara R", Phone: "0559999999", Role: models.RoleCustomer}
	if err := fx.db.Create(&registered).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}

	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "100.00", &registered.ID, "", "")
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "20.00", &registered.ID, "", "")
	// two guest orders from the same phone collapse into one row
	fx.order(t, fx.branchA.ID, models.OrderStatusDelivered, "30.00", nil, "Omar", "0552222222")
	fx.order(t, fx.branchB.ID, models.OrderStatusNew, "15.00", nil, "Omar", "0552222222")

	w := fx.get("/reports/1/customers")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Customers []struct {
			Name       string  `json:"name"`
			Phone      string  `json:"phone"`
			OrderCount int64   `json:"order_count"`
			Total      float64 `json:"total"`
			Guest      bool    `json:"guest"`
		} `json:"customers"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("customer count = %d, want 2", resp.Count)
	}

	var sawRegistered, sawGuest bool
	for _, row := range resp.Customers {
		switch row.Phone {
		case "0559999999":
			sawRegistered = true
			if row.Guest || row.OrderCount != 2 || row.Total != 120.0 {
				t.Fatalf("registered row wrong: %+v", row)
			}
		case "0552222222":
			sawGuest = true
			if !row.Guest || row.OrderCount != 2 || row.Total != 45.0 || row.Name != "Omar" {
				t.Fatalf("guest row wrong: %+v", row)
			}
		}
	}
	if !sawRegistered || !sawGuest {
		t.Fatalf("rows missing: %+v", resp.Customers)
	}
}

func TestReportsScopedToRestaurant(t *testing.T) {
	fx := newFixture(t)

	// another restaurant with its own delivered order
	otherOwner := models.User{Email: "other@example.com", PasswordHash: "x", Role: models.RoleRestaurantOwner}
	if err := fx.db.Create(&otherOwner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	otherRestaurant := models.Restaurant{Name: "Other", OwnerID: otherOwner.ID}
	if err := fx.db.Create(&otherRestaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	otherBranch := models.Branch{RestaurantID: otherRestaurant.ID, Name: "Elsewhere"}
	if err := fx.db.Create(&otherBranch).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}
	fx.order(t, otherBranch.ID, models.OrderStatusDelivered, "500.00", nil, "Zed", "0553333333")

	w := fx.get("/reports/1/sales")
	var resp struct {
		Summary struct {
			Revenue float64 `json:"revenue"`
		} `json:"summary"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Summary.Revenue != 0 {
		t.Fatalf("revenue leaked across restaurants: %v", resp.Summary.Revenue)
	}

	// the other owner cannot read restaurant 1's reports at all
	foreign := reportRouter(fx.db, otherOwner.ID, models.RoleRestaurantOwner)
	for _, path := range []string{
		"/reports/1/sales",
		"/reports/1/sales/export",
		"/reports/1/customers",
		"/reports/1/customers/export",
		"/reports/1/orders/export-excel",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		foreign.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("GET %s as foreign owner: status %d, want 403", path, w.Code)
		}
	}

	// an admin token is allowed through
	admin := reportRouter(fx.db, 999, models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/reports/1/sales", nil)
	rec := httptest.NewRecorder()
	admin.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin sales report: status %d", rec.Code)
	}
}
