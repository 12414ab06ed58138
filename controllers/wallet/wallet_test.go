package walletControllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
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
	if err := db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.WalletTransaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, email string) *models.Restaurant {
	t.Helper()
	owner := models.User{Email: email, PasswordHash: "x", Role: models.RoleRestaurantOwner}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	restaurant := models.Restaurant{Name: "Test Kitchen", OwnerID: owner.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return &restaurant
}

func credit(t *testing.T, db *gorm.DB, restaurantID uint, amount int64) {
	t.Helper()
	err := db.Create(&models.WalletTransaction{
		RestaurantID:  restaurantID,
		Kind:          models.WalletCredit,
		AmountHalalah: amount,
	}).Error
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
}

func TestBalanceIsDerivedFromLedger(t *testing.T) {
	db := newTestDB(t)
	mine := seedRestaurant(t, db, "mine@example.com")
	other := seedRestaurant(t, db, "other@example.com")

	// empty ledger
	balance, err := Balance(db, mine.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("empty balance = %d, want 0", balance)
	}

	credit(t, db, mine.ID, 10000)
	credit(t, db, mine.ID, 5000)
	credit(t, db, other.ID, 77777)
	if err := db.Create(&models.WalletTransaction{
		RestaurantID:  mine.ID,
		Kind:          models.WalletRefund,
		AmountHalalah: 3000,
	}).Error; err != nil {
		t.Fatalf("refund: %v", err)
	}

	balance, err = Balance(db, mine.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 12000 {
		t.Fatalf("balance = %d, want 12000", balance)
	}

	// the other restaurant's ledger is untouched
	balance, _ = Balance(db, other.ID)
	if balance != 77777 {
		t.Fatalf("other balance = %d, want 77777", balance)
	}
}

func TestWithdraw(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db, "owner@example.com")
	credit(t, db, restaurant.ID, 10000)

	withdrawal, err := Withdraw(db, restaurant.ID, 4000, "weekly payout")
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if withdrawal.Kind != models.WalletRefund || withdrawal.AmountHalalah != 4000 {
		t.Fatalf("withdrawal row wrong: %+v", withdrawal)
	}

	balance, _ := Balance(db, restaurant.ID)
	if balance != 6000 {
		t.Fatalf("balance after withdraw = %d, want 6000", balance)
	}

	// withdrawing the full remainder is allowed
	if _, err := Withdraw(db, restaurant.ID, 6000, ""); err != nil {
		t.Fatalf("full withdraw: %v", err)
	}
	balance, _ = Balance(db, restaurant.ID)
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}
}

func TestWithdrawOverBalanceRejected(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db, "owner@example.com")
	credit(t, db, restaurant.ID, 10000)

	_, err := Withdraw(db, restaurant.ID, 10001, "")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	// the rejected withdrawal must not reach the ledger
	var rows int64
	db.Model(&models.WalletTransaction{}).
		Where("restaurant_id = ? AND kind = ?", restaurant.ID, models.WalletRefund).
		Count(&rows)
	if rows != 0 {
		t.Fatalf("refund rows = %d, want 0", rows)
	}
}

func walletRouter(db *gorm.DB, userID uint, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
	})
	r.GET("/wallet/:restaurantID", GetWalletHandler(db))
	r.POST("/wallet/:restaurantID/withdraw", WithdrawHandler(db))
	return r
}

func doWallet(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWalletHandlersScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	mine := seedRestaurant(t, db, "mine@example.com")
	other := seedRestaurant(t, db, "other@example.com")
	credit(t, db, mine.ID, 10000)

	// another owner's token must not read or drain this wallet
	intruder := walletRouter(db, other.OwnerID, models.RoleRestaurantOwner)
	if w := doWallet(intruder, http.MethodGet, fmt.Sprintf("/wallet/%d", mine.ID), ""); w.Code != http.StatusForbidden {
		t.Fatalf("foreign read: status %d, want 403", w.Code)
	}
	w := doWallet(intruder, http.MethodPost, fmt.Sprintf("/wallet/%d/withdraw", mine.ID), `{"amount_halalah": 5000}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign withdraw: status %d, want 403", w.Code)
	}
	var refunds int64
	db.Model(&models.WalletTransaction{}).
		Where("restaurant_id = ? AND kind = ?", mine.ID, models.WalletRefund).
		Count(&refunds)
	if refunds != 0 {
		t.Fatalf("foreign withdraw reached the ledger: %d rows", refunds)
	}

	// the owner and an admin both get through
	owner := walletRouter(db, mine.OwnerID, models.RoleRestaurantOwner)
	if w := doWallet(owner, http.MethodGet, fmt.Sprintf("/wallet/%d", mine.ID), ""); w.Code != http.StatusOK {
		t.Fatalf("owner read: status %d, body %s", w.Code, w.Body.String())
	}
	if w := doWallet(owner, http.MethodPost, fmt.Sprintf("/wallet/%d/withdraw", mine.ID), `{"amount_halalah": 4000}`); w.Code != http.StatusCreated {
		t.Fatalf("owner withdraw: status %d, body %s", w.Code, w.Body.String())
	}

	admin := walletRouter(db, 999, models.RoleAdmin)
	if w := doWallet(admin, http.MethodGet, fmt.Sprintf("/wallet/%d", mine.ID), ""); w.Code != http.StatusOK {
		t.Fatalf("admin read: status %d", w.Code)
	}

	// unknown restaurant
	if w := doWallet(owner, http.MethodGet, "/wallet/9999", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing restaurant: status %d, want 404", w.Code)
	}
}

func TestWithdrawNonPositiveRejected(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db, "owner@example.com")
	credit(t, db, restaurant.ID, 10000)

	for _, amount := range []int64{0, -500} {
		if _, err := Withdraw(db, restaurant.ID, amount, ""); err == nil {
			t.Fatalf("Withdraw(%d) accepted", amount)
		}
	}
}
