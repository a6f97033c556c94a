package catalog

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

type seedMenu struct {
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"`
	Price           float64  `yaml:"price"`
	DefaultMeatQty  int      `yaml:"default_meat_qty"`
	DefaultFriesQty int      `yaml:"default_fries_qty"`
	Ingredients     []string `yaml:"ingredients"`
}

type seedAddOn struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Category string  `yaml:"category"`
}

type seedSlot struct {
	Kind           string `yaml:"kind"`
	Capacity       int    `yaml:"capacity"`
	MinRequired    int    `yaml:"min_required"`
	DefaultMeatQty int    `yaml:"default_meat_qty"`
	AllowedMeatQty []int  `yaml:"allowed_meat_qty"`
}

type seedBundle struct {
	Name  string     `yaml:"name"`
	Price float64    `yaml:"price"`
	Slots []seedSlot `yaml:"slots"`
}

type seedFile struct {
	Menus   []seedMenu  `yaml:"menus"`
	AddOns  []seedAddOn `yaml:"add_ons"`
	Bundles []seedBundle `yaml:"bundles"`
}

// SeedFromYAML mengisi katalog dari file YAML bila tabel menu masih kosong.
// Dipanggil sekali saat startup; katalog yang sudah terisi tidak disentuh.
func SeedFromYAML(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&models.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return err
	}

	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uint)
		for _, sm := range seed.Menus {
			catID, ok := categories[sm.Category]
			if !ok {
				cat := models.MenuCategory{Name: sm.Category, CreatedAt: now, UpdatedAt: now}
				if err := tx.Create(&cat).Error; err != nil {
					return err
				}
				catID = cat.ID
				categories[sm.Category] = catID
			}

			menu := models.Menu{
				CategoryID:      catID,
				Name:            sm.Name,
				Price:           sm.Price,
				DefaultMeatQty:  sm.DefaultMeatQty,
				DefaultFriesQty: sm.DefaultFriesQty,
				Available:       true,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			menu.SetIngredientList(sm.Ingredients)
			if err := tx.Create(&menu).Error; err != nil {
				return err
			}
		}

		for _, sa := range seed.AddOns {
			category := sa.Category
			if category == "" {
				category = models.AddOnCategoryExtra
			}
			addOn := models.AddOn{
				Name:      sa.Name,
				Price:     sa.Price,
				Category:  category,
				Available: true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&addOn).Error; err != nil {
				return err
			}
		}

		for _, sb := range seed.Bundles {
			bundle := models.Bundle{
				Name:      sb.Name,
				Price:     sb.Price,
				Available: true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&bundle).Error; err != nil {
				return err
			}
			for pos, ss := range sb.Slots {
				kind := ss.Kind
				if kind == "" {
					kind = models.SlotKindItem
				}
				capacity := ss.Capacity
				if capacity < 1 {
					capacity = 1
				}
				slot := models.BundleSlot{
					BundleID:       bundle.ID,
					Position:       pos,
					Kind:           kind,
					Capacity:       capacity,
					MinRequired:    ss.MinRequired,
					DefaultMeatQty: ss.DefaultMeatQty,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				slot.SetAllowedMeatQtyList(ss.AllowedMeatQty)
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
