package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletKind string

const (
	WalletCredit WalletKind = "CREDIT" // successful online payment
	WalletRefund WalletKind = "REFUND" // manual withdrawal by the owner
)

// WalletTransaction is an append-only ledger row. The restaurant balance is
// always derived as sum(CREDIT) - sum(REFUND); it is never stored.
type WalletTransaction struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RestaurantID  uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	OrderID       *uint      `gorm:"index" json:"order_id,omitempty"`
	Kind          WalletKind `gorm:"type:VARCHAR(10);not null" json:"kind"`
	AmountHalalah int64      `gorm:"not null" json:"amount_halalah"`
	Note          string     `json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToHalalah converts a riyal amount to integer minor units (1 SAR = 100
// halalah), e.g. 100.00 -> 10000.
func ToHalalah(amount decimal.Decimal) int64 {
	return amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
