package models

import (
	"encoding/json"
	"time"
)

// Menu adalah item standalone dari katalog (burger, ayam geprek, dll).
// DefaultMeatQty dan DefaultFriesQty adalah jumlah default yang bisa
// disesuaikan customer; selisihnya dihargai lewat add-on penyesuai.
type Menu struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	CategoryID      uint         `gorm:"not null" json:"category_id"`
	Category        MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name            string       `gorm:"type:varchar(255);not null" json:"name"`
	Price           float64      `gorm:"type:decimal(12,2);not null" json:"price"`
	DefaultMeatQty  int          `gorm:"not null;default:1" json:"default_meat_qty"`
	DefaultFriesQty int          `gorm:"not null;default:0" json:"default_fries_qty"`
	// Ingredients disimpan sebagai JSON array of string (bahan yang bisa dihapus)
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// IngredientList parses the Ingredients JSON column. Malformed or empty
// text yields an empty list.
func (m *Menu) IngredientList() []string {
	if m.Ingredients == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(m.Ingredients), &names); err != nil {
		return nil
	}
	return names
}

// SetIngredientList serializes names into the Ingredients column.
func (m *Menu) SetIngredientList(names []string) {
	if len(names) == 0 {
		m.Ingredients = ""
		return
	}
	raw, err := json.Marshal(names)
	if err != nil {
		m.Ingredients = ""
		return
	}
	m.Ingredients = string(raw)
}
