package models

import (
	"encoding/json"
	"time"
)

// Jenis slot di dalam paket.
const (
	SlotKindItem   = "item"   // diisi satu atau lebih item menu
	SlotKindChoice = "choice" // diisi satu pilihan add-on (minuman/side)
)

// Bundle adalah paket dengan harga tetap yang slotnya diisi customer
// (contoh: Paket Keluarga = 4 burger + 2 minuman).
type Bundle struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64      `gorm:"type:decimal(12,2);not null" json:"price"`
	Available bool         `gorm:"not null;default:true" json:"available"`
	Slots     []BundleSlot `gorm:"foreignKey:BundleID" json:"slots"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// BundleSlot adalah template satu slot dalam paket. Capacity membatasi total
// qty item di slot, MinRequired menentukan kapan slot dianggap terpenuhi.
// DefaultMeatQty 0 berarti slot tidak menetapkan default sendiri.
type BundleSlot struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	BundleID       uint   `gorm:"not null;index" json:"bundle_id"`
	Position       int    `gorm:"not null;default:0" json:"position"`
	Kind           string `gorm:"type:varchar(20);not null;default:'item'" json:"kind"`
	Capacity       int    `gorm:"not null;default:1" json:"capacity"`
	MinRequired    int    `gorm:"not null;default:0" json:"min_required"`
	DefaultMeatQty int    `gorm:"not null;default:0" json:"default_meat_qty"`
	// AllowedMeatQty membatasi item yang boleh masuk slot berdasarkan
	// default jumlah dagingnya; JSON array of int, kosong = tanpa batasan.
	AllowedMeatQty string    `gorm:"type:text" json:"allowed_meat_qty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// AllowedMeatQtyList parses the allow-list column. Empty or malformed
// text means the slot accepts any item.
func (s *BundleSlot) AllowedMeatQtyList() []int {
	if s.AllowedMeatQty == "" {
		return nil
	}
	var allowed []int
	if err := json.Unmarshal([]byte(s.AllowedMeatQty), &allowed); err != nil {
		return nil
	}
	return allowed
}

// SetAllowedMeatQtyList serializes the allow-list column.
func (s *BundleSlot) SetAllowedMeatQtyList(allowed []int) {
	if len(allowed) == 0 {
		s.AllowedMeatQty = ""
		return
	}
	raw, err := json.Marshal(allowed)
	if err != nil {
		s.AllowedMeatQty = ""
		return
	}
	s.AllowedMeatQty = string(raw)
}
