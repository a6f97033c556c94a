package composer

import (
	"errors"

	"github.com/yeremiapane/restaurant-order-engine/catalog"
	"github.com/yeremiapane/restaurant-order-engine/models"
)

// ErrDanglingRecord menandakan baris order tanpa satu pun referensi katalog;
// data seperti ini korup dan tidak bisa direkonstruksi.
var ErrDanglingRecord = errors.New("baris order tidak memiliki referensi katalog")

// Deserializer merekonstruksi snapshot Selection dari baris order tersimpan
// plus katalog saat ini. Lookup katalog yang gagal (entitas sudah dihapus
// atau berubah) tidak pernah jadi error: entitas placeholder disintesis dari
// payload historis sehingga harga dan label tetap akurat secara historis.
// Harga dan nama dari katalog saat ini tidak pernah menimpa order yang sudah
// dihargai.
type Deserializer struct {
	Catalog *catalog.Snapshot
}

// NewDeserializer membuat deserializer di atas snapshot katalog saat ini.
func NewDeserializer(snap *catalog.Snapshot) Deserializer {
	return Deserializer{Catalog: snap}
}

// Deserialize membangun ulang Selection dari baris order. Entitas hasil
// rekonstruksi adalah objek baru yang ekuivalen nilai, bukan objek sesi asal.
func (d Deserializer) Deserialize(records []models.OrderItem) (*Selection, error) {
	sel := NewSelection()
	for _, rec := range records {
		switch {
		case rec.MenuID != nil:
			sel.Items = append(sel.Items, d.restoreItem(rec))
		case rec.BundleID != nil:
			sel.Bundles = append(sel.Bundles, d.restoreBundle(rec))
		case rec.AddOnID != nil:
			sel.Sides = append(sel.Sides, d.restoreSide(rec))
		default:
			return nil, ErrDanglingRecord
		}
	}
	sel.reindex()
	return sel, nil
}

func decodePayload(rec models.OrderItem) (Configuration, bool) {
	if rec.Configuration == nil || *rec.Configuration == "" {
		return Configuration{}, false
	}
	cfg, err := DecodeConfiguration(*rec.Configuration)
	if err != nil {
		// Payload rusak direlakan: entri tetap bisa dimuat tanpa kustomisasi.
		return Configuration{}, false
	}
	return cfg, true
}

func restoreQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// restoreAddOnLines membangun ulang pasangan add-on dari payload; add-on yang
// hilang dari katalog disintesis dengan kategori yang disimpulkan dari
// konteks pemakaiannya.
func (d Deserializer) restoreAddOnLines(configs []AddOnConfig, fallbackCategory string) []AddOnLine {
	if len(configs) == 0 {
		return nil
	}
	lines := make([]AddOnLine, 0, len(configs))
	for _, ac := range configs {
		addOn, ok := d.Catalog.AddOn(ac.ID)
		if !ok {
			addOn = models.AddOn{ID: ac.ID, Category: fallbackCategory}
		}
		// Snapshot historis menang atas katalog saat ini.
		addOn.Name = ac.Name
		addOn.Price = ac.Price
		lines = append(lines, AddOnLine{AddOn: addOn, Quantity: restoreQty(ac.Quantity)})
	}
	return lines
}

// restoreMenu membangun ulang entitas menu untuk satu item: data tambahan
// (bahan, kategori) dari katalog saat ini bila masih ada, nama/harga/default
// selalu dari snapshot historis.
func (d Deserializer) restoreMenu(menuID uint, name string, price float64, cfg *ItemConfig) models.Menu {
	menu, ok := d.Catalog.Menu(menuID)
	if !ok {
		menu = models.Menu{ID: menuID, DefaultMeatQty: 1}
	}
	menu.Name = name
	menu.Price = price
	if cfg != nil {
		menu.DefaultMeatQty = cfg.DefaultMeatQty
		menu.DefaultFriesQty = cfg.DefaultFriesQty
	}
	return menu
}

func (d Deserializer) restoreItem(rec models.OrderItem) SelectedItem {
	payload, hasPayload := decodePayload(rec)
	var cfg *ItemConfig
	if hasPayload && payload.Item != nil {
		cfg = payload.Item
	}

	menu := d.restoreMenu(*rec.MenuID, rec.Name, rec.UnitPrice, cfg)
	item := SelectedItem{
		Key:      newKey(),
		Menu:     menu,
		Quantity: restoreQty(rec.Quantity),
		MeatQty:  restoreQty(menu.DefaultMeatQty),
		FriesQty: menu.DefaultFriesQty,
	}
	if cfg != nil {
		delta := cfg.FriesPriceDelta
		item.MeatQty = restoreQty(cfg.MeatQty)
		item.FriesQty = cfg.FriesQty
		item.FriesPriceDelta = &delta
		item.Removed = cloneStrings(cfg.Removed)
		item.AddOns = d.restoreAddOnLines(cfg.AddOns, models.AddOnCategoryExtra)
	}
	return item
}

func (d Deserializer) restoreBundle(rec models.OrderItem) SelectedBundle {
	payload, hasPayload := decodePayload(rec)

	bundle, templateFound := d.Catalog.Bundle(*rec.BundleID)
	if !templateFound {
		bundle = models.Bundle{ID: *rec.BundleID}
	}
	bundle.Name = rec.Name
	bundle.Price = rec.UnitPrice

	// Slot dari template bila masih ada; payload lalu mengisi ulang isinya.
	slots := make([]FilledSlot, 0, len(bundle.Slots))
	byID := make(map[uint]int)
	for _, tpl := range bundle.Slots {
		byID[tpl.ID] = len(slots)
		slots = append(slots, FilledSlot{
			SlotID:         tpl.ID,
			Kind:           tpl.Kind,
			Capacity:       tpl.Capacity,
			MinRequired:    tpl.MinRequired,
			DefaultMeatQty: tpl.DefaultMeatQty,
			AllowedMeatQty: tpl.AllowedMeatQtyList(),
		})
	}

	if hasPayload && payload.Bundle != nil {
		for _, slotCfg := range payload.Bundle.Slots {
			idx, ok := byID[slotCfg.SlotID]
			if !ok {
				// Template slot sudah hilang: default permisif, paket tetap
				// bisa dimuat walau tidak sepenuhnya tervalidasi ulang.
				byID[slotCfg.SlotID] = len(slots)
				idx = len(slots)
				slots = append(slots, FilledSlot{
					SlotID:      slotCfg.SlotID,
					Kind:        slotCfg.Kind,
					Capacity:    1,
					MinRequired: 0,
				})
			}
			slot := &slots[idx]
			for _, itemCfg := range slotCfg.Items {
				cfg := itemCfg.ItemConfig
				delta := cfg.FriesPriceDelta
				menu := d.restoreMenu(itemCfg.MenuID, itemCfg.Name, itemCfg.Price, &cfg)
				slot.Items = append(slot.Items, SelectedItem{
					Key:             newKey(),
					Menu:            menu,
					Quantity:        restoreQty(itemCfg.Quantity),
					MeatQty:         restoreQty(cfg.MeatQty),
					FriesQty:        cfg.FriesQty,
					FriesPriceDelta: &delta,
					Removed:         cloneStrings(cfg.Removed),
					AddOns:          d.restoreAddOnLines(cfg.AddOns, models.AddOnCategoryExtra),
				})
			}
			if slotCfg.Choice != nil {
				chosen, ok := d.Catalog.AddOn(slotCfg.Choice.ID)
				if !ok {
					chosen = models.AddOn{ID: slotCfg.Choice.ID, Category: models.AddOnCategoryDrink}
				}
				chosen.Name = slotCfg.Choice.Name
				chosen.Price = slotCfg.Choice.Price
				slot.Choice = &chosen
			}
		}
	}

	return SelectedBundle{
		Key:      newKey(),
		Bundle:   bundle,
		Quantity: restoreQty(rec.Quantity),
		Slots:    slots,
	}
}

func (d Deserializer) restoreSide(rec models.OrderItem) SelectedSide {
	payload, hasPayload := decodePayload(rec)

	addOn, ok := d.Catalog.AddOn(*rec.AddOnID)
	if !ok {
		addOn = models.AddOn{ID: *rec.AddOnID, Category: models.AddOnCategorySide}
	}
	addOn.Name = rec.Name
	addOn.Price = rec.UnitPrice

	side := SelectedSide{
		Key:      newKey(),
		AddOn:    addOn,
		Quantity: restoreQty(rec.Quantity),
	}
	if hasPayload && payload.Item != nil {
		side.Extras = d.restoreAddOnLines(payload.Item.AddOns, models.AddOnCategoryExtra)
	}
	return side
}
