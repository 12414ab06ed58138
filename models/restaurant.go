package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPlan struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Features  string          `gorm:"type:text" json:"features"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Restaurant struct {
	ID                 uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string            `gorm:"not null" json:"name"`
	Description        string            `gorm:"type:text" json:"description"`
	OwnerID            uint              `gorm:"not null;index" json:"owner_id"`
	Owner              User              `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	SubscriptionPlanID *uint             `json:"subscription_plan_id,omitempty"`
	SubscriptionPlan   *SubscriptionPlan `gorm:"foreignKey:SubscriptionPlanID;constraint:OnDelete:SET NULL" json:"subscription_plan,omitempty"`
	Branches           []Branch          `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"branches,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type Branch struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Address      string     `json:"address"`
	QRCode       string     `json:"qr_code"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
