// Package catalog menyediakan snapshot katalog read-only untuk mesin
// komposisi: map ber-key id untuk menu, add-on, dan paket, plus dua add-on
// penyesuai yang harganya dipakai menghitung selisih jumlah daging/kentang.
package catalog

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

// Snapshot adalah potret katalog pada satu titik waktu. Field map-nya tidak
// boleh dimutasi setelah Load; mesin komposisi hanya membaca.
type Snapshot struct {
	Menus   map[uint]models.Menu
	AddOns  map[uint]models.AddOn
	Bundles map[uint]models.Bundle

	// ID add-on penyesuai untuk jumlah daging dan jumlah kentang.
	MeatAddOnID  uint
	FriesAddOnID uint
}

// Load membangun snapshot dari database. meatAddOnID dan friesAddOnID
// menunjuk add-on penyesuai; id 0 atau tidak dikenal membuat harga
// penyesuaian dianggap 0.
func Load(db *gorm.DB, meatAddOnID, friesAddOnID uint) (*Snapshot, error) {
	snap := &Snapshot{
		Menus:        make(map[uint]models.Menu),
		AddOns:       make(map[uint]models.AddOn),
		Bundles:      make(map[uint]models.Bundle),
		MeatAddOnID:  meatAddOnID,
		FriesAddOnID: friesAddOnID,
	}

	var menus []models.Menu
	if err := db.Find(&menus).Error; err != nil {
		return nil, err
	}
	for _, m := range menus {
		snap.Menus[m.ID] = m
	}

	var addOns []models.AddOn
	if err := db.Find(&addOns).Error; err != nil {
		return nil, err
	}
	for _, a := range addOns {
		snap.AddOns[a.ID] = a
	}

	var bundles []models.Bundle
	if err := db.Preload("Slots", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Find(&bundles).Error; err != nil {
		return nil, err
	}
	for _, b := range bundles {
		snap.Bundles[b.ID] = b
	}

	return snap, nil
}

// Menu mencari item menu berdasarkan id.
func (s *Snapshot) Menu(id uint) (models.Menu, bool) {
	m, ok := s.Menus[id]
	return m, ok
}

// AddOn mencari add-on berdasarkan id.
func (s *Snapshot) AddOn(id uint) (models.AddOn, bool) {
	a, ok := s.AddOns[id]
	return a, ok
}

// Bundle mencari paket berdasarkan id.
func (s *Snapshot) Bundle(id uint) (models.Bundle, bool) {
	b, ok := s.Bundles[id]
	return b, ok
}

// MeatUnitPrice adalah harga per unit selisih jumlah daging.
func (s *Snapshot) MeatUnitPrice() float64 {
	if a, ok := s.AddOns[s.MeatAddOnID]; ok {
		return a.Price
	}
	return 0
}

// FriesUnitPrice adalah harga per unit selisih jumlah kentang.
func (s *Snapshot) FriesUnitPrice() float64 {
	if a, ok := s.AddOns[s.FriesAddOnID]; ok {
		return a.Price
	}
	return 0
}
