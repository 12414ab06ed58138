package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type OrderMethod string
type PaymentMethod string

const (
	// Order statuses (kitchen board flow)
	OrderStatusNew            OrderStatus = "New"            // just placed
	OrderStatusPreparing      OrderStatus = "Preparing"      // kitchen working on it
	OrderStatusReady          OrderStatus = "Ready"          // ready for handover
	OrderStatusOutForDelivery OrderStatus = "OutForDelivery" // courier on the way
	OrderStatusDelivered      OrderStatus = "Delivered"      // terminal
	OrderStatusCancelled      OrderStatus = "Cancelled"      // terminal

	// How the customer pays
	PaymentCash   PaymentMethod = "Cash"
	PaymentOnline PaymentMethod = "Online"

	// How the order is fulfilled
	MethodDelivery OrderMethod = "delivery"
	MethodPickup   OrderMethod = "pickup"
	MethodDineIn   OrderMethod = "dine_in"
)

type Order struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	BranchID      uint             `gorm:"not null;index:idx_orders_branch_status" json:"branch_id"`
	Branch        Branch           `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE" json:"branch"`
	CustomerID    *uint            `json:"customer_id,omitempty"`
	Customer      *User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	GuestName     string           `json:"guest_name,omitempty"`
	GuestPhone    string           `json:"guest_phone,omitempty"`
	Status        OrderStatus      `gorm:"type:VARCHAR(20);default:'New';index:idx_orders_branch_status" json:"status"`
	TotalPrice    decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"total_price"`
	PaymentMethod PaymentMethod    `gorm:"type:VARCHAR(10);default:'Cash'" json:"payment_method"`
	OrderMethod   OrderMethod      `gorm:"type:VARCHAR(10)" json:"order_method"`
	Items         []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Delivery      *DeliveryDetails `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"delivery,omitempty"`
	Pickup        *PickupDetails   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"pickup,omitempty"`
	DineIn        *DineInDetails   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"dine_in,omitempty"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// HasIdentity reports whether exactly one of the authenticated customer or the
// guest name+phone pair is populated.
func (o *Order) HasIdentity() bool {
	guest := o.GuestName != "" && o.GuestPhone != ""
	if o.CustomerID != nil {
		return !guest
	}
	return guest
}

// Terminal reports whether the order can no longer change status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	Options   string          `gorm:"type:text" json:"options"` // JSON snapshot of selected options
	Addons    string          `gorm:"type:text" json:"addons"`
}

// Fulfillment sub-records: one-to-one with Order, selected by OrderMethod.
// Each is created at most once per order.

type DeliveryDetails struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type PickupDetails struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	PickupTime string    `json:"pickup_time"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

type DineInDetails struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	TableNumber string    `gorm:"not null" json:"table_number"`
	Guests      int       `gorm:"default:1" json:"guests"`
	CreatedAt   time.Time `json:"created_at"`
}
