package models

import "time"

// Kategori add-on yang dikenal sistem.
const (
	AddOnCategoryExtra = "extra" // tambahan umum (telur, keju, dll)
	AddOnCategoryDrink = "drink"
	AddOnCategoryFries = "fries"
	AddOnCategorySide  = "side" // bisa dipesan berdiri sendiri
)

// AddOn adalah item pelengkap di katalog. Add-on kategori "side" juga bisa
// dijual sebagai item tersendiri di order.
type AddOn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Category  string    `gorm:"type:varchar(20);not null;default:'extra'" json:"category"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
