package composer

import (
	"math"

	"github.com/yeremiapane/restaurant-order-engine/models"
)

// Calculator menghitung harga dari snapshot Selection. Stateless dan murni:
// aman dipanggil ulang setelah setiap mutasi. Dua harga unit di bawah adalah
// harga add-on penyesuai yang ditunjuk katalog; selisih jumlah daging/kentang
// dari default dihargai per unit selisih (bisa negatif, mengurangi harga).
type Calculator struct {
	MeatUnitPrice  float64
	FriesUnitPrice float64
}

// NewCalculator membuat kalkulator dari harga dua add-on penyesuai.
func NewCalculator(meatUnitPrice, friesUnitPrice float64) Calculator {
	return Calculator{MeatUnitPrice: meatUnitPrice, FriesUnitPrice: friesUnitPrice}
}

// finite memaksa hasil non-finite (NaN/Inf dari input rusak) menjadi 0 agar
// tidak merambat ke tampilan atau penyimpanan.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// friesAdjustment menghitung selisih harga kentang per unit item. Delta
// historis dari payload order lama menang atas harga unit katalog saat ini.
func (c Calculator) friesAdjustment(it SelectedItem) float64 {
	if it.FriesPriceDelta != nil {
		return *it.FriesPriceDelta
	}
	return float64(it.FriesQty-it.Menu.DefaultFriesQty) * c.FriesUnitPrice
}

func addOnLinesTotal(lines []AddOnLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.AddOn.Price * float64(line.Quantity)
	}
	return total
}

// ItemTotal menghitung harga satu item standalone: harga dasar, penyesuaian
// daging/kentang terhadap default katalog, dan add-on, semuanya dikali
// kuantitas item.
func (c Calculator) ItemTotal(it SelectedItem) float64 {
	qty := float64(it.Quantity)
	base := it.Menu.Price * qty
	adjMeat := float64(it.MeatQty-it.Menu.DefaultMeatQty) * c.MeatUnitPrice * qty
	adjFries := c.friesAdjustment(it) * qty
	return finite(base + adjMeat + adjFries + addOnLinesTotal(it.AddOns)*qty)
}

// ItemsTotal menjumlahkan seluruh item standalone.
func (c Calculator) ItemsTotal(items []SelectedItem) float64 {
	total := 0.0
	for _, it := range items {
		total += c.ItemTotal(it)
	}
	return finite(total)
}

// slotItemExtra menghitung tambahan harga satu item pengisi slot: add-on dan
// penyesuaian daging/kentang, dikali kuantitas item. Referensi default daging
// diambil dari default slot; default katalog item hanya dipakai bila slot
// tidak menetapkan default sendiri.
func (c Calculator) slotItemExtra(slot FilledSlot, it SelectedItem) float64 {
	defaultMeat := slot.DefaultMeatQty
	if defaultMeat <= 0 {
		defaultMeat = it.Menu.DefaultMeatQty
	}
	adjMeat := float64(it.MeatQty-defaultMeat) * c.MeatUnitPrice
	adjFries := c.friesAdjustment(it)
	return (addOnLinesTotal(it.AddOns) + adjMeat + adjFries) * float64(it.Quantity)
}

// BundleTotal menghitung harga satu instance paket: harga paket dikali
// kuantitas, tambahan per item pengisi slot, dan pilihan slot tunggal
// berbayar dikali kuantitas paket.
func (c Calculator) BundleTotal(b SelectedBundle) float64 {
	total := b.Bundle.Price * float64(b.Quantity)
	for _, slot := range b.Slots {
		for _, it := range slot.Items {
			total += c.slotItemExtra(slot, it)
		}
		if slot.Kind == models.SlotKindChoice && slot.Choice != nil && slot.Choice.Price != 0 {
			total += slot.Choice.Price * float64(b.Quantity)
		}
	}
	return finite(total)
}

// BundlesTotal menjumlahkan seluruh paket.
func (c Calculator) BundlesTotal(bundles []SelectedBundle) float64 {
	total := 0.0
	for _, b := range bundles {
		total += c.BundleTotal(b)
	}
	return finite(total)
}

// SideTotal menghitung harga satu side: harga dikali kuantitas plus add-on
// bersarang.
func (c Calculator) SideTotal(sd SelectedSide) float64 {
	return finite(sd.AddOn.Price*float64(sd.Quantity) + addOnLinesTotal(sd.Extras))
}

// SidesTotal menjumlahkan seluruh side.
func (c Calculator) SidesTotal(sides []SelectedSide) float64 {
	total := 0.0
	for _, sd := range sides {
		total += c.SideTotal(sd)
	}
	return finite(total)
}

// Subtotal adalah jumlah ketiga koleksi.
func (c Calculator) Subtotal(sel *Selection) float64 {
	return finite(c.ItemsTotal(sel.Items) + c.BundlesTotal(sel.Bundles) + c.SidesTotal(sel.Sides))
}

// DiscountTotal menghitung potongan dari subtotal. Potongan nominal dipotong
// maksimal sebesar subtotal; persentase dibatasi 0-100.
func DiscountTotal(subtotal float64, kind string, value float64) float64 {
	if value <= 0 {
		return 0
	}
	switch kind {
	case models.DiscountAmount:
		return finite(math.Min(value, subtotal))
	case models.DiscountPercent:
		return finite(subtotal * math.Min(value, 100) / 100)
	default:
		return 0
	}
}

// OrderTotal menghitung total akhir: subtotal dikurangi diskon, ditambah
// ongkos kirim bila mode delivery.
func (c Calculator) OrderTotal(sel *Selection, discountKind string, discountValue float64, orderType string, deliveryFee float64) float64 {
	subtotal := c.Subtotal(sel)
	total := subtotal - DiscountTotal(subtotal, discountKind, discountValue)
	if orderType == models.OrderTypeDelivery {
		total += deliveryFee
	}
	return finite(total)
}
