package composer_test

import (
	"github.com/yeremiapane/restaurant-order-engine/catalog"
	"github.com/yeremiapane/restaurant-order-engine/models"
)

// Fixture katalog kecil yang dipakai lintas file test.

func burgerMenu() models.Menu {
	m := models.Menu{
		ID:              1,
		CategoryID:      1,
		Name:            "Burger Daging",
		Price:           8000,
		DefaultMeatQty:  2,
		DefaultFriesQty: 1,
		Available:       true,
	}
	m.SetIngredientList([]string{"bawang", "timun", "selada"})
	return m
}

func geprekMenu() models.Menu {
	return models.Menu{
		ID:              2,
		CategoryID:      1,
		Name:            "Ayam Geprek",
		Price:           12000,
		DefaultMeatQty:  1,
		DefaultFriesQty: 0,
		Available:       true,
	}
}

func extraMeatAddOn() models.AddOn {
	return models.AddOn{ID: 10, Name: "Extra Daging", Price: 1500, Category: models.AddOnCategoryExtra, Available: true}
}

func extraFriesAddOn() models.AddOn {
	return models.AddOn{ID: 11, Name: "Extra Kentang", Price: 1200, Category: models.AddOnCategoryFries, Available: true}
}

func cheeseAddOn() models.AddOn {
	return models.AddOn{ID: 12, Name: "Keju", Price: 2000, Category: models.AddOnCategoryExtra, Available: true}
}

func colaAddOn() models.AddOn {
	return models.AddOn{ID: 13, Name: "Cola", Price: 5000, Category: models.AddOnCategoryDrink, Available: true}
}

func saladSide() models.AddOn {
	return models.AddOn{ID: 14, Name: "Salad", Price: 7000, Category: models.AddOnCategorySide, Available: true}
}

// familyBundle: satu slot item (kapasitas 2, minimum 2) dan satu slot pilihan
// minuman (minimum 1).
func familyBundle() models.Bundle {
	return models.Bundle{
		ID:        20,
		Name:      "Paket Keluarga",
		Price:     30000,
		Available: true,
		Slots: []models.BundleSlot{
			{ID: 100, BundleID: 20, Position: 0, Kind: models.SlotKindItem, Capacity: 2, MinRequired: 2, DefaultMeatQty: 1},
			{ID: 101, BundleID: 20, Position: 1, Kind: models.SlotKindChoice, Capacity: 1, MinRequired: 1},
		},
	}
}

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Menus: map[uint]models.Menu{
			1: burgerMenu(),
			2: geprekMenu(),
		},
		AddOns: map[uint]models.AddOn{
			10: extraMeatAddOn(),
			11: extraFriesAddOn(),
			12: cheeseAddOn(),
			13: colaAddOn(),
			14: saladSide(),
		},
		Bundles: map[uint]models.Bundle{
			20: familyBundle(),
		},
		MeatAddOnID:  10,
		FriesAddOnID: 11,
	}
}

func emptySnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Menus:        map[uint]models.Menu{},
		AddOns:       map[uint]models.AddOn{},
		Bundles:      map[uint]models.Bundle{},
		MeatAddOnID:  10,
		FriesAddOnID: 11,
	}
}
