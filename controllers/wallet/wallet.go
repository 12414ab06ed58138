package walletControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
)

var ErrInsufficientBalance = errors.New("withdrawal exceeds wallet balance")

// Balance derives the restaurant's balance from the ledger: sum of credits
// minus sum of refunds, in halalah.
func Balance(db *gorm.DB, restaurantID uint) (int64, error) {
	var balance int64
	err := db.Model(&models.WalletTransaction{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN amount_halalah ELSE -amount_halalah END), 0)",
			models.WalletCredit).
		Scan(&balance).Error
	return balance, err
}

// Withdraw appends a REFUND row after checking the balance. The check and the
// append are not one atomic unit: two concurrent withdrawals can both pass
// the check.
func Withdraw(db *gorm.DB, restaurantID uint, amountHalalah int64, note string) (*models.WalletTransaction, error) {
	if amountHalalah <= 0 {
		return nil, errors.New("amount must be positive")
	}

	balance, err := Balance(db, restaurantID)
	if err != nil {
		return nil, err
	}
	if amountHalalah > balance {
		return nil, ErrInsufficientBalance
	}

	withdrawal := models.WalletTransaction{
		RestaurantID:  restaurantID,
		Kind:          models.WalletRefund,
		AmountHalalah: amountHalalah,
		Note:          note,
	}
	if err := db.Create(&withdrawal).Error; err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// -------- Handlers --------

// authorizedRestaurant resolves the :restaurantID param and rejects callers
// who neither own the restaurant nor hold the admin role.
func authorizedRestaurant(db *gorm.DB, c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("restaurantID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurantID is required"})
		return 0, false
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return 0, false
	}
	if c.GetString("role") != string(models.RoleAdmin) && restaurant.OwnerID != c.GetUint("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your restaurant"})
		return 0, false
	}
	return restaurant.ID, true
}

// GET /wallet/:restaurantID
func GetWalletHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		balance, err := Balance(db, restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
			return
		}

		var transactions []models.WalletTransaction
		if err := db.Where("restaurant_id = ?", restaurantID).
			Order("created_at DESC").
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"balance_halalah": balance,
			"transactions":    transactions,
		})
	}
}

type withdrawRequest struct {
	AmountHalalah int64  `json:"amount_halalah" binding:"required"`
	Note          string `json:"note"`
}

// POST /wallet/:restaurantID/withdraw
func WithdrawHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, ok := authorizedRestaurant(db, c)
		if !ok {
			return
		}

		var req withdrawRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		withdrawal, err := Withdraw(db, restaurantID, req.AmountHalalah, req.Note)
		if err != nil {
			if errors.Is(err, ErrInsufficientBalance) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, withdrawal)
	}
}
