package composer

import (
	"errors"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

// ErrEmptyOrder dikembalikan saat snapshot tidak menghasilkan satu pun baris
// order; komposisi kosong tidak bisa disubmit.
var ErrEmptyOrder = errors.New("order tidak memiliki item")

// Serializer mengubah snapshot Selection menjadi baris OrderItem yang
// dinormalisasi, termasuk payload konfigurasi historis dan baris add-on datar
// untuk reporting.
type Serializer struct {
	Calc Calculator
}

// Serialize mengubah ketiga koleksi menjadi daftar OrderItem, berurutan:
// item standalone, paket, lalu side.
func (s Serializer) Serialize(sel *Selection) ([]models.OrderItem, error) {
	records := make([]models.OrderItem, 0, len(sel.Items)+len(sel.Bundles)+len(sel.Sides))

	for _, it := range sel.Items {
		rec, err := s.serializeItem(it)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	for _, b := range sel.Bundles {
		rec, err := s.serializeBundle(b)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	for _, sd := range sel.Sides {
		rec, err := s.serializeSide(sd)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyOrder
	}
	return records, nil
}

func (s Serializer) itemConfig(it SelectedItem, defaultMeat int) ItemConfig {
	cfg := ItemConfig{
		MeatQty:         it.MeatQty,
		DefaultMeatQty:  defaultMeat,
		FriesQty:        it.FriesQty,
		DefaultFriesQty: it.Menu.DefaultFriesQty,
		Removed:         cloneStrings(it.Removed),
	}
	cfg.FriesPriceDelta = finite(s.Calc.friesAdjustment(it))
	for _, line := range it.AddOns {
		cfg.AddOns = append(cfg.AddOns, AddOnConfig{
			ID:       line.AddOn.ID,
			Name:     line.AddOn.Name,
			Quantity: line.Quantity,
			Price:    line.AddOn.Price,
		})
	}
	return cfg
}

// addOnRows membuat baris add-on datar; subtotal baris sudah dikali kuantitas
// induknya agar cocok dengan kontribusi add-on di harga item.
func addOnRows(lines []AddOnLine, parentQty int) []models.OrderItemAddOn {
	rows := make([]models.OrderItemAddOn, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.OrderItemAddOn{
			AddOnID:   line.AddOn.ID,
			Name:      line.AddOn.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.AddOn.Price,
			Subtotal:  finite(line.AddOn.Price * float64(line.Quantity) * float64(parentQty)),
		})
	}
	return rows
}

func (s Serializer) serializeItem(it SelectedItem) (models.OrderItem, error) {
	menuID := it.Menu.ID
	rec := models.OrderItem{
		MenuID:    &menuID,
		Name:      it.Menu.Name,
		Quantity:  it.Quantity,
		UnitPrice: it.Menu.Price,
		Subtotal:  s.Calc.ItemTotal(it),
		AddOns:    addOnRows(it.AddOns, it.Quantity),
	}

	cfg := s.itemConfig(it, it.Menu.DefaultMeatQty)
	if !cfg.isZero() {
		raw, err := Configuration{Kind: ConfigKindItem, Item: &cfg}.Encode()
		if err != nil {
			return models.OrderItem{}, err
		}
		rec.Configuration = &raw
	}
	return rec, nil
}

// serializeBundle selalu menulis payload yang mencerminkan setiap slot secara
// berurutan. Add-on di dalam paket hanya hidup di payload, tidak dibuat baris
// datarnya.
func (s Serializer) serializeBundle(b SelectedBundle) (models.OrderItem, error) {
	cfg := BundleConfig{Slots: make([]SlotConfig, 0, len(b.Slots))}
	for _, slot := range b.Slots {
		slotCfg := SlotConfig{SlotID: slot.SlotID, Kind: slot.Kind}
		for _, it := range slot.Items {
			defaultMeat := slot.DefaultMeatQty
			if defaultMeat <= 0 {
				defaultMeat = it.Menu.DefaultMeatQty
			}
			slotCfg.Items = append(slotCfg.Items, SlotItemConfig{
				MenuID:     it.Menu.ID,
				Name:       it.Menu.Name,
				Price:      it.Menu.Price,
				Quantity:   it.Quantity,
				ItemConfig: s.itemConfig(it, defaultMeat),
			})
		}
		if slot.Choice != nil {
			slotCfg.Choice = &AddOnConfig{
				ID:       slot.Choice.ID,
				Name:     slot.Choice.Name,
				Quantity: 1,
				Price:    slot.Choice.Price,
			}
		}
		cfg.Slots = append(cfg.Slots, slotCfg)
	}

	raw, err := Configuration{Kind: ConfigKindBundle, Bundle: &cfg}.Encode()
	if err != nil {
		return models.OrderItem{}, err
	}

	bundleID := b.Bundle.ID
	return models.OrderItem{
		BundleID:      &bundleID,
		Name:          b.Bundle.Name,
		Quantity:      b.Quantity,
		UnitPrice:     b.Bundle.Price,
		Subtotal:      s.Calc.BundleTotal(b),
		Configuration: &raw,
	}, nil
}

func (s Serializer) serializeSide(sd SelectedSide) (models.OrderItem, error) {
	addOnID := sd.AddOn.ID
	rec := models.OrderItem{
		AddOnID:   &addOnID,
		Name:      sd.AddOn.Name,
		Quantity:  sd.Quantity,
		UnitPrice: sd.AddOn.Price,
		Subtotal:  s.Calc.SideTotal(sd),
		AddOns:    addOnRows(sd.Extras, 1),
	}

	if len(sd.Extras) > 0 {
		cfg := ItemConfig{}
		for _, line := range sd.Extras {
			cfg.AddOns = append(cfg.AddOns, AddOnConfig{
				ID:       line.AddOn.ID,
				Name:     line.AddOn.Name,
				Quantity: line.Quantity,
				Price:    line.AddOn.Price,
			})
		}
		raw, err := Configuration{Kind: ConfigKindSide, Item: &cfg}.Encode()
		if err != nil {
			return models.OrderItem{}, err
		}
		rec.Configuration = &raw
	}
	return rec, nil
}
