package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SelectionType string

const (
	SelectionSingle   SelectionType = "SINGLE"
	SelectionMultiple SelectionType = "MULTIPLE"
)

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Position     int       `gorm:"default:0" json:"position"`
	Products     []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID   uint            `gorm:"not null;index" json:"category_id"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available    bool            `gorm:"default:true" json:"available"`
	Position     int             `gorm:"default:0" json:"position"`
	OptionGroups []OptionGroup   `gorm:"many2many:product_option_groups" json:"option_groups,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OptionGroup is a reusable set of choices a restaurant attaches to products,
// e.g. "Size" (single) or "Extras" (multiple).
type OptionGroup struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID  uint          `gorm:"not null;index:idx_group_rest_name,unique" json:"restaurant_id"`
	Name          string        `gorm:"not null;index:idx_group_rest_name,unique" json:"name"`
	SelectionType SelectionType `gorm:"type:VARCHAR(10);default:'SINGLE'" json:"selection_type"`
	IsRequired    bool          `gorm:"default:false" json:"is_required"`
	MinSelection  int           `gorm:"default:0" json:"min_selection"`
	MaxSelection  int           `gorm:"default:1" json:"max_selection"`
	Options       []Option      `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID         uint            `gorm:"not null;index" json:"group_id"`
	Name            string          `gorm:"not null" json:"name"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price_adjustment"`
	Position        int             `gorm:"default:0" json:"position"`
}
