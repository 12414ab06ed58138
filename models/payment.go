package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GatewayMethod string
type PaymentStatus string
type InvoiceSentVia string

const (
	GatewayMada     GatewayMethod = "Mada"
	GatewayApplePay GatewayMethod = "ApplePay"
	GatewayVisa     GatewayMethod = "Visa"
	GatewayCash     GatewayMethod = "Cash"

	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"

	SentViaEmail InvoiceSentVia = "Email"
	SentViaSMS   InvoiceSentVia = "SMS"
)

// Payment is one row per gateway checkout session. TransactionID holds the
// gateway session id until it is swapped for the durable payment-intent id on
// confirmation; it is the join key for webhook events. No DB unique constraint
// backs it; idempotent completion relies on the id swap and the status guard.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       *uint         `json:"order_id,omitempty"`
	Order         *Order        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order,omitempty"`
	Method        GatewayMethod `gorm:"type:VARCHAR(16);default:'Visa'" json:"method"`
	Status        PaymentStatus `gorm:"type:VARCHAR(16);default:'Pending'" json:"status"`
	TransactionID string        `gorm:"index" json:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Invoice snapshots the order total and customer contact at billing time.
// At most one per order, enforced by get-or-create rather than a unique
// constraint.
type Invoice struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	Order            Order           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	CustomerEmail    string          `json:"customer_email"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	ComplianceStatus bool            `gorm:"default:false" json:"compliance_status"`
	SentVia          InvoiceSentVia  `gorm:"type:VARCHAR(10);default:'Email'" json:"sent_via"`
	CreatedAt        time.Time       `json:"created_at"`
}
