// Package composer menampung mesin komposisi order: state pemilihan
// in-memory, aturan slot paket, kalkulator harga, dan (de)serialisasi ke
// record order. Semua operasi sinkron dan bebas I/O; katalog diberikan dari
// luar sebagai snapshot read-only.
package composer

import (
	"sort"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

// AddOnLine adalah pasangan add-on terpilih dengan jumlahnya.
type AddOnLine struct {
	AddOn    models.AddOn `json:"add_on"`
	Quantity int          `json:"quantity"`
}

// SelectedItem adalah satu item standalone yang sedang dikomposisi, atau item
// pengisi slot paket. Menu disimpan sebagai salinan nilai sehingga perubahan
// katalog di tengah sesi tidak menggeser harga.
type SelectedItem struct {
	Key      string      `json:"key"`
	Menu     models.Menu `json:"menu"`
	Quantity int         `json:"quantity"`
	MeatQty  int         `json:"meat_qty"`
	FriesQty int         `json:"fries_qty"`
	// FriesPriceDelta, bila terisi, adalah harga selisih kentang historis per
	// unit item dari payload order lama; menggantikan harga unit katalog saat
	// ini sampai jumlah kentangnya diubah lagi.
	FriesPriceDelta *float64    `json:"fries_price_delta,omitempty"`
	Removed         []string    `json:"removed_ingredients,omitempty"`
	AddOns          []AddOnLine `json:"add_ons,omitempty"`
}

// FilledSlot adalah satu slot paket beserta isinya. Record slot tetap hidup
// selama instance paketnya ada, meski semua itemnya dihapus.
type FilledSlot struct {
	SlotID         uint           `json:"slot_id"`
	Kind           string         `json:"kind"`
	Capacity       int            `json:"capacity"`
	MinRequired    int            `json:"min_required"`
	DefaultMeatQty int            `json:"default_meat_qty"`
	AllowedMeatQty []int          `json:"allowed_meat_qty,omitempty"`
	Items          []SelectedItem `json:"items,omitempty"`
	Choice         *models.AddOn  `json:"choice,omitempty"`
}

// SelectedBundle adalah satu instance paket yang sedang dikomposisi.
type SelectedBundle struct {
	Key      string        `json:"key"`
	Bundle   models.Bundle `json:"bundle"`
	Quantity int           `json:"quantity"`
	Slots    []FilledSlot  `json:"slots"`
}

// SelectedSide adalah add-on kategori side yang dipesan berdiri sendiri.
type SelectedSide struct {
	Key      string       `json:"key"`
	AddOn    models.AddOn `json:"add_on"`
	Quantity int          `json:"quantity"`
	Extras   []AddOnLine  `json:"extras,omitempty"`
}

// Selection adalah snapshot lengkap order yang sedang dikomposisi. Setiap
// operasi mutasi mengembalikan *Selection baru; snapshot lama tetap valid.
// Urutan insert setiap koleksi dipertahankan; akses per-key lewat index
// internal.
type Selection struct {
	Items   []SelectedItem   `json:"items"`
	Bundles []SelectedBundle `json:"bundles"`
	Sides   []SelectedSide   `json:"sides"`

	itemIndex   map[string]int
	bundleIndex map[string]int
	sideIndex   map[string]int
}

// NewSelection membuat snapshot kosong.
func NewSelection() *Selection {
	s := &Selection{}
	s.reindex()
	return s
}

func newKey() string {
	return uuid.NewString()
}

func (s *Selection) reindex() {
	s.itemIndex = make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		s.itemIndex[it.Key] = i
	}
	s.bundleIndex = make(map[string]int, len(s.Bundles))
	for i, b := range s.Bundles {
		s.bundleIndex[b.Key] = i
	}
	s.sideIndex = make(map[string]int, len(s.Sides))
	for i, sd := range s.Sides {
		s.sideIndex[sd.Key] = i
	}
}

// clone menyalin koleksi level atas; entri yang akan dimutasi harus disalin
// dalam oleh pemanggil sebelum diubah.
func (s *Selection) clone() *Selection {
	next := &Selection{
		Items:   make([]SelectedItem, len(s.Items)),
		Bundles: make([]SelectedBundle, len(s.Bundles)),
		Sides:   make([]SelectedSide, len(s.Sides)),
	}
	copy(next.Items, s.Items)
	copy(next.Bundles, s.Bundles)
	copy(next.Sides, s.Sides)
	next.reindex()
	return next
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneAddOnLines(in []AddOnLine) []AddOnLine {
	if len(in) == 0 {
		return nil
	}
	out := make([]AddOnLine, len(in))
	copy(out, in)
	return out
}

func (it SelectedItem) deepCopy() SelectedItem {
	it.Removed = cloneStrings(it.Removed)
	it.AddOns = cloneAddOnLines(it.AddOns)
	if it.FriesPriceDelta != nil {
		v := *it.FriesPriceDelta
		it.FriesPriceDelta = &v
	}
	return it
}

// Item mengembalikan item standalone berdasarkan key.
func (s *Selection) Item(key string) (SelectedItem, bool) {
	idx, ok := s.itemIndex[key]
	if !ok {
		return SelectedItem{}, false
	}
	return s.Items[idx], true
}

// BundleByKey mengembalikan instance paket berdasarkan key.
func (s *Selection) BundleByKey(key string) (SelectedBundle, bool) {
	idx, ok := s.bundleIndex[key]
	if !ok {
		return SelectedBundle{}, false
	}
	return s.Bundles[idx], true
}

// Side mengembalikan side berdasarkan key.
func (s *Selection) Side(key string) (SelectedSide, bool) {
	idx, ok := s.sideIndex[key]
	if !ok {
		return SelectedSide{}, false
	}
	return s.Sides[idx], true
}

// IsEmpty true jika tidak ada satu pun entri di ketiga koleksi.
func (s *Selection) IsEmpty() bool {
	return len(s.Items) == 0 && len(s.Bundles) == 0 && len(s.Sides) == 0
}

/*
========================================
 ITEM STANDALONE
========================================
*/

// AddItem menambah item standalone baru dengan kuantitas 1 dan nilai
// penyesuaian mengikuti default katalog.
func (s *Selection) AddItem(menu models.Menu) *Selection {
	next := s.clone()
	next.Items = append(next.Items, SelectedItem{
		Key:      newKey(),
		Menu:     menu,
		Quantity: 1,
		MeatQty:  menu.DefaultMeatQty,
		FriesQty: menu.DefaultFriesQty,
	})
	next.reindex()
	return next
}

// RemoveItem menghapus item standalone.
func (s *Selection) RemoveItem(key string) *Selection {
	idx, ok := s.itemIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	next.reindex()
	return next
}

// mutateItem menjalankan fn pada salinan item; fn mengembalikan false untuk
// menghapus entri (kuantitas habis).
func (s *Selection) mutateItem(key string, fn func(*SelectedItem) bool) *Selection {
	idx, ok := s.itemIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	item := next.Items[idx].deepCopy()
	if keep := fn(&item); !keep {
		next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
		next.reindex()
		return next
	}
	next.Items[idx] = item
	return next
}

// UpdateItemQty menggeser kuantitas item; mencapai 0 menghapus entri.
func (s *Selection) UpdateItemQty(key string, delta int) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		it.Quantity += delta
		return it.Quantity >= 1
	})
}

// ToggleIngredient menandai/membatalkan bahan yang dihapus. Nama di luar
// daftar bahan menu diabaikan.
func (s *Selection) ToggleIngredient(key, name string) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		toggleIngredient(it, name)
		return true
	})
}

// UpdateMeatQty menggeser jumlah daging; tidak bisa turun di bawah 1.
func (s *Selection) UpdateMeatQty(key string, delta int) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		bumpMeat(it, delta)
		return true
	})
}

// UpdateFriesQty menggeser jumlah kentang; bisa turun sampai 0.
func (s *Selection) UpdateFriesQty(key string, delta int) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		bumpFries(it, delta)
		return true
	})
}

// ToggleAddOn menambah add-on (qty 1) atau menghapusnya jika sudah dipilih.
func (s *Selection) ToggleAddOn(key string, addOn models.AddOn) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		toggleAddOn(it, addOn)
		return true
	})
}

// UpdateAddOnQty menggeser kuantitas satu add-on; mencapai 0 menghapus
// pasangan add-on tersebut.
func (s *Selection) UpdateAddOnQty(key string, addOnID uint, delta int) *Selection {
	return s.mutateItem(key, func(it *SelectedItem) bool {
		bumpAddOn(it, addOnID, delta)
		return true
	})
}

/*
========================================
 PAKET (BUNDLE)
========================================
*/

// AddBundle menambah instance paket baru; slot dibangun dari template dengan
// urutan Position.
func (s *Selection) AddBundle(bundle models.Bundle) *Selection {
	slots := make([]models.BundleSlot, len(bundle.Slots))
	copy(slots, bundle.Slots)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Position < slots[j].Position })

	filled := make([]FilledSlot, 0, len(slots))
	for _, tpl := range slots {
		filled = append(filled, FilledSlot{
			SlotID:         tpl.ID,
			Kind:           tpl.Kind,
			Capacity:       tpl.Capacity,
			MinRequired:    tpl.MinRequired,
			DefaultMeatQty: tpl.DefaultMeatQty,
			AllowedMeatQty: tpl.AllowedMeatQtyList(),
		})
	}

	next := s.clone()
	next.Bundles = append(next.Bundles, SelectedBundle{
		Key:      newKey(),
		Bundle:   bundle,
		Quantity: 1,
		Slots:    filled,
	})
	next.reindex()
	return next
}

// RemoveBundle menghapus instance paket.
func (s *Selection) RemoveBundle(key string) *Selection {
	idx, ok := s.bundleIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	next.Bundles = append(next.Bundles[:idx], next.Bundles[idx+1:]...)
	next.reindex()
	return next
}

func (s *Selection) mutateBundle(key string, fn func(*SelectedBundle) bool) *Selection {
	idx, ok := s.bundleIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	b := next.Bundles[idx]
	b.Slots = make([]FilledSlot, len(next.Bundles[idx].Slots))
	copy(b.Slots, next.Bundles[idx].Slots)
	if keep := fn(&b); !keep {
		next.Bundles = append(next.Bundles[:idx], next.Bundles[idx+1:]...)
		next.reindex()
		return next
	}
	next.Bundles[idx] = b
	return next
}

// UpdateBundleQty menggeser kuantitas paket; mencapai 0 menghapus instance.
func (s *Selection) UpdateBundleQty(key string, delta int) *Selection {
	return s.mutateBundle(key, func(b *SelectedBundle) bool {
		b.Quantity += delta
		return b.Quantity >= 1
	})
}

// FillSlot memasukkan satu unit item menu ke slot item. Gagal jika slot
// penuh, bukan slot item, atau item tertolak allow-list.
func (s *Selection) FillSlot(bundleKey string, slotID uint, menu models.Menu) (*Selection, error) {
	var fillErr error
	next := s.mutateBundle(bundleKey, func(b *SelectedBundle) bool {
		slot := findSlot(b, slotID)
		if slot == nil {
			fillErr = ErrSlotNotFound
			return true
		}
		if slot.Kind != models.SlotKindItem {
			fillErr = ErrNotItemSlot
			return true
		}
		if !slot.CanFill(menu) {
			fillErr = ErrSlotRejectsItem
			return true
		}
		meat := slot.DefaultMeatQty
		if meat <= 0 {
			meat = menu.DefaultMeatQty
		}
		items := make([]SelectedItem, len(slot.Items))
		copy(items, slot.Items)
		slot.Items = append(items, SelectedItem{
			Key:      newKey(),
			Menu:     menu,
			Quantity: 1,
			MeatQty:  meat,
			FriesQty: menu.DefaultFriesQty,
		})
		return true
	})
	if fillErr != nil {
		return s, fillErr
	}
	return next, nil
}

// mutateSlotItem menjalankan fn pada salinan satu item pengisi slot; fn
// mengembalikan false untuk mengeluarkan item dari slot. Slotnya sendiri
// tidak pernah ikut terhapus.
func (s *Selection) mutateSlotItem(bundleKey string, slotID uint, itemKey string, fn func(*FilledSlot, *SelectedItem) bool) *Selection {
	return s.mutateBundle(bundleKey, func(b *SelectedBundle) bool {
		slot := findSlot(b, slotID)
		if slot == nil {
			return true
		}
		items := make([]SelectedItem, len(slot.Items))
		copy(items, slot.Items)
		slot.Items = items
		for i := range slot.Items {
			if slot.Items[i].Key != itemKey {
				continue
			}
			item := slot.Items[i].deepCopy()
			if keep := fn(slot, &item); !keep {
				slot.Items = append(slot.Items[:i], slot.Items[i+1:]...)
				return true
			}
			slot.Items[i] = item
			return true
		}
		return true
	})
}

// UpdateSlotItemQty menggeser kuantitas item di slot. Kenaikan dibatasi sisa
// kapasitas slot; mencapai 0 mengeluarkan item dari slot.
func (s *Selection) UpdateSlotItemQty(bundleKey string, slotID uint, itemKey string, delta int) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(slot *FilledSlot, it *SelectedItem) bool {
		if delta > 0 {
			remaining := slot.RemainingCapacity()
			if delta > remaining {
				delta = remaining
			}
		}
		it.Quantity += delta
		return it.Quantity >= 1
	})
}

// ToggleSlotItemIngredient menandai/membatalkan bahan yang dihapus pada item slot.
func (s *Selection) ToggleSlotItemIngredient(bundleKey string, slotID uint, itemKey, name string) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(_ *FilledSlot, it *SelectedItem) bool {
		toggleIngredient(it, name)
		return true
	})
}

// UpdateSlotItemMeatQty menggeser jumlah daging item slot; floor 1.
func (s *Selection) UpdateSlotItemMeatQty(bundleKey string, slotID uint, itemKey string, delta int) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(_ *FilledSlot, it *SelectedItem) bool {
		bumpMeat(it, delta)
		return true
	})
}

// UpdateSlotItemFriesQty menggeser jumlah kentang item slot; floor 0.
func (s *Selection) UpdateSlotItemFriesQty(bundleKey string, slotID uint, itemKey string, delta int) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(_ *FilledSlot, it *SelectedItem) bool {
		bumpFries(it, delta)
		return true
	})
}

// ToggleSlotItemAddOn menambah/menghapus add-on pada item slot.
func (s *Selection) ToggleSlotItemAddOn(bundleKey string, slotID uint, itemKey string, addOn models.AddOn) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(_ *FilledSlot, it *SelectedItem) bool {
		toggleAddOn(it, addOn)
		return true
	})
}

// UpdateSlotItemAddOnQty menggeser kuantitas add-on pada item slot.
func (s *Selection) UpdateSlotItemAddOnQty(bundleKey string, slotID uint, itemKey string, addOnID uint, delta int) *Selection {
	return s.mutateSlotItem(bundleKey, slotID, itemKey, func(_ *FilledSlot, it *SelectedItem) bool {
		bumpAddOn(it, addOnID, delta)
		return true
	})
}

// ChooseSlotOption mengisi slot pilihan tunggal; pilihan lama diganti.
func (s *Selection) ChooseSlotOption(bundleKey string, slotID uint, addOn models.AddOn) *Selection {
	return s.mutateBundle(bundleKey, func(b *SelectedBundle) bool {
		slot := findSlot(b, slotID)
		if slot == nil || slot.Kind != models.SlotKindChoice {
			return true
		}
		chosen := addOn
		slot.Choice = &chosen
		return true
	})
}

// ClearSlotChoice mengosongkan pilihan slot pilihan tunggal.
func (s *Selection) ClearSlotChoice(bundleKey string, slotID uint) *Selection {
	return s.mutateBundle(bundleKey, func(b *SelectedBundle) bool {
		slot := findSlot(b, slotID)
		if slot == nil || slot.Kind != models.SlotKindChoice {
			return true
		}
		slot.Choice = nil
		return true
	})
}

/*
========================================
 SIDE
========================================
*/

// AddSide menambah side baru dengan kuantitas 1.
func (s *Selection) AddSide(addOn models.AddOn) *Selection {
	next := s.clone()
	next.Sides = append(next.Sides, SelectedSide{
		Key:      newKey(),
		AddOn:    addOn,
		Quantity: 1,
	})
	next.reindex()
	return next
}

// RemoveSide menghapus side.
func (s *Selection) RemoveSide(key string) *Selection {
	idx, ok := s.sideIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	next.Sides = append(next.Sides[:idx], next.Sides[idx+1:]...)
	next.reindex()
	return next
}

func (s *Selection) mutateSide(key string, fn func(*SelectedSide) bool) *Selection {
	idx, ok := s.sideIndex[key]
	if !ok {
		return s
	}
	next := s.clone()
	side := next.Sides[idx]
	side.Extras = cloneAddOnLines(side.Extras)
	if keep := fn(&side); !keep {
		next.Sides = append(next.Sides[:idx], next.Sides[idx+1:]...)
		next.reindex()
		return next
	}
	next.Sides[idx] = side
	return next
}

// UpdateSideQty menggeser kuantitas side; mencapai 0 menghapus entri.
func (s *Selection) UpdateSideQty(key string, delta int) *Selection {
	return s.mutateSide(key, func(sd *SelectedSide) bool {
		sd.Quantity += delta
		return sd.Quantity >= 1
	})
}

// ToggleSideExtra menambah/menghapus add-on bersarang pada side.
func (s *Selection) ToggleSideExtra(key string, addOn models.AddOn) *Selection {
	return s.mutateSide(key, func(sd *SelectedSide) bool {
		for i, line := range sd.Extras {
			if line.AddOn.ID == addOn.ID {
				sd.Extras = append(sd.Extras[:i], sd.Extras[i+1:]...)
				return true
			}
		}
		sd.Extras = append(sd.Extras, AddOnLine{AddOn: addOn, Quantity: 1})
		return true
	})
}

// UpdateSideExtraQty menggeser kuantitas add-on bersarang pada side.
func (s *Selection) UpdateSideExtraQty(key string, addOnID uint, delta int) *Selection {
	return s.mutateSide(key, func(sd *SelectedSide) bool {
		for i := range sd.Extras {
			if sd.Extras[i].AddOn.ID != addOnID {
				continue
			}
			sd.Extras[i].Quantity += delta
			if sd.Extras[i].Quantity <= 0 {
				sd.Extras = append(sd.Extras[:i], sd.Extras[i+1:]...)
			}
			return true
		}
		return true
	})
}

/*
========================================
 HELPER KUSTOMISASI BERSAMA
========================================
*/

func findSlot(b *SelectedBundle, slotID uint) *FilledSlot {
	for i := range b.Slots {
		if b.Slots[i].SlotID == slotID {
			return &b.Slots[i]
		}
	}
	return nil
}

func toggleIngredient(it *SelectedItem, name string) {
	known := false
	for _, ing := range it.Menu.IngredientList() {
		if ing == name {
			known = true
			break
		}
	}
	if !known {
		return
	}
	for i, removed := range it.Removed {
		if removed == name {
			it.Removed = append(it.Removed[:i], it.Removed[i+1:]...)
			return
		}
	}
	it.Removed = append(it.Removed, name)
}

func bumpMeat(it *SelectedItem, delta int) {
	it.MeatQty += delta
	if it.MeatQty < 1 {
		it.MeatQty = 1
	}
}

func bumpFries(it *SelectedItem, delta int) {
	it.FriesQty += delta
	if it.FriesQty < 0 {
		it.FriesQty = 0
	}
	// Penyesuaian baru dihargai ulang dengan harga unit katalog saat ini.
	it.FriesPriceDelta = nil
}

func toggleAddOn(it *SelectedItem, addOn models.AddOn) {
	for i, line := range it.AddOns {
		if line.AddOn.ID == addOn.ID {
			it.AddOns = append(it.AddOns[:i], it.AddOns[i+1:]...)
			return
		}
	}
	it.AddOns = append(it.AddOns, AddOnLine{AddOn: addOn, Quantity: 1})
}

func bumpAddOn(it *SelectedItem, addOnID uint, delta int) {
	for i := range it.AddOns {
		if it.AddOns[i].AddOn.ID != addOnID {
			continue
		}
		it.AddOns[i].Quantity += delta
		if it.AddOns[i].Quantity <= 0 {
			it.AddOns = append(it.AddOns[:i], it.AddOns[i+1:]...)
		}
		return
	}
}
