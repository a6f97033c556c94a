package models

import "time"

// Mode pengambilan order.
const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Jenis diskon order.
const (
	DiscountNone    = "none"
	DiscountAmount  = "amount"  // potongan nominal tetap
	DiscountPercent = "percent" // persentase dari subtotal
)

type Order struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	CustomerID        uint             `gorm:"not null;index" json:"customer_id"`
	Customer          Customer         `gorm:"foreignKey:CustomerID" json:"customer"`
	OrderType         string           `gorm:"type:varchar(20);not null;default:'pickup'" json:"order_type"`
	DeliveryAddressID *uint            `gorm:"index" json:"delivery_address_id,omitempty"`
	DeliveryAddress   *DeliveryAddress `gorm:"foreignKey:DeliveryAddressID" json:"delivery_address,omitempty"`
	DeliveryFee       float64          `gorm:"type:decimal(12,2);not null;default:0" json:"delivery_fee"`
	PaymentMethod     string           `gorm:"type:varchar(30);not null;default:'cash'" json:"payment_method"`
	DiscountKind      string           `gorm:"type:varchar(20);not null;default:'none'" json:"discount_kind"`
	DiscountValue     float64          `gorm:"type:decimal(12,2);not null;default:0" json:"discount_value"`
	DiscountTotal     float64          `gorm:"type:decimal(12,2);not null;default:0" json:"discount_total"`
	Subtotal          float64          `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TotalAmount       float64          `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Status            string           `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Items             []OrderItem      `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}
