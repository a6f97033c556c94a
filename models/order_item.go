package models

import "time"

// OrderItem adalah satu baris order yang sudah dinormalisasi. Tepat satu dari
// MenuID / BundleID / AddOnID yang terisi. Name dan UnitPrice adalah snapshot
// historis dari katalog saat order dibuat; edit katalog di kemudian hari tidak
// boleh mengubah harga order yang sudah jadi.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	Order    Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID   *uint   `gorm:"index" json:"menu_id,omitempty"`
	BundleID *uint   `gorm:"index" json:"bundle_id,omitempty"`
	AddOnID  *uint   `gorm:"index" json:"add_on_id,omitempty"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	// UnitPrice adalah harga dasar per unit; Subtotal sudah termasuk
	// penyesuaian dan add-on sesuai payload konfigurasi.
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	// Configuration menyimpan payload konfigurasi lengkap (JSON) untuk
	// reload/edit; nullable untuk item tanpa kustomisasi.
	Configuration *string          `gorm:"type:text" json:"configuration,omitempty"`
	AddOns        []OrderItemAddOn `gorm:"foreignKey:OrderItemID" json:"add_ons"`
	CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}

// OrderItemAddOn adalah baris add-on datar untuk kebutuhan reporting,
// denormalisasi dari payload konfigurasi. Add-on di dalam paket tidak dibuat
// barisnya; mereka hanya hidup di payload.
type OrderItemAddOn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`
	OrderItem   OrderItem `gorm:"-" json:"-"`
	AddOnID     uint      `gorm:"not null" json:"add_on_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal    float64   `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
