package composer

import (
	"errors"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

var (
	ErrSlotNotFound    = errors.New("slot tidak ditemukan di paket")
	ErrNotItemSlot     = errors.New("slot bukan slot item")
	ErrSlotRejectsItem = errors.New("slot penuh atau item tidak diizinkan mengisi slot")
)

// RemainingCapacity adalah sisa kapasitas slot setelah dikurangi total
// kuantitas item pengisi. Slot pilihan tunggal tidak memakai kapasitas.
func (fs *FilledSlot) RemainingCapacity() int {
	used := 0
	for _, it := range fs.Items {
		used += it.Quantity
	}
	return fs.Capacity - used
}

// CanFill true jika satu unit menu masih boleh masuk slot: masih ada
// kapasitas, dan (bila slot ber-allow-list) default jumlah daging menu ada di
// daftar. Slot tanpa sisa kapasitas menolak apa pun, allow-list tidak dicek lagi.
func (fs *FilledSlot) CanFill(menu models.Menu) bool {
	if fs.RemainingCapacity() <= 0 {
		return false
	}
	if len(fs.AllowedMeatQty) == 0 {
		return true
	}
	for _, allowed := range fs.AllowedMeatQty {
		if allowed == menu.DefaultMeatQty {
			return true
		}
	}
	return false
}

// Satisfied true jika slot sudah memenuhi minimum pengisiannya. Slot dengan
// MinRequired 0 selalu terpenuhi.
func (fs *FilledSlot) Satisfied() bool {
	if fs.MinRequired <= 0 {
		return true
	}
	if fs.Kind == models.SlotKindChoice {
		return fs.Choice != nil
	}
	filled := 0
	for _, it := range fs.Items {
		filled += it.Quantity
	}
	return filled >= fs.MinRequired
}

// SubmitReady true jika semua slot paket terpenuhi.
func (b *SelectedBundle) SubmitReady() bool {
	for i := range b.Slots {
		if !b.Slots[i].Satisfied() {
			return false
		}
	}
	return true
}

// SubmitReady true jika semua paket di snapshot siap disubmit. Snapshot
// tanpa paket dianggap siap.
func (s *Selection) SubmitReady() bool {
	for i := range s.Bundles {
		if !s.Bundles[i].SubmitReady() {
			return false
		}
	}
	return true
}
