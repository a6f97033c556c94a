package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-order-engine/composer"
	"github.com/yeremiapane/restaurant-order-engine/models"
)

// buildFullSelection menyusun komposisi dengan ketiga jenis entri,
// masing-masing dikustomisasi.
func buildFullSelection(t *testing.T) *composer.Selection {
	t.Helper()

	sel := composer.NewSelection().AddItem(burgerMenu())
	itemKey := sel.Items[0].Key
	sel = sel.UpdateItemQty(itemKey, 1) // qty 2
	sel = sel.UpdateMeatQty(itemKey, 1)
	sel = sel.UpdateFriesQty(itemKey, -1)
	sel = sel.ToggleIngredient(itemKey, "bawang")
	sel = sel.ToggleAddOn(itemKey, cheeseAddOn())

	sel = sel.AddBundle(familyBundle())
	bKey := sel.Bundles[0].Key
	var err error
	sel, err = sel.FillSlot(bKey, 100, burgerMenu())
	require.NoError(t, err)
	slotItemKey := sel.Bundles[0].Slots[0].Items[0].Key
	sel = sel.UpdateSlotItemQty(bKey, 100, slotItemKey, 1) // qty 2
	sel = sel.UpdateSlotItemMeatQty(bKey, 100, slotItemKey, 1)
	sel = sel.ToggleSlotItemIngredient(bKey, 100, slotItemKey, "timun")
	sel = sel.ToggleSlotItemAddOn(bKey, 100, slotItemKey, cheeseAddOn())
	sel = sel.ChooseSlotOption(bKey, 101, colaAddOn())

	sel = sel.AddSide(saladSide())
	sideKey := sel.Sides[0].Key
	sel = sel.UpdateSideQty(sideKey, 1) // qty 2
	sel = sel.ToggleSideExtra(sideKey, cheeseAddOn())

	return sel
}

func serializeAll(t *testing.T, sel *composer.Selection) []models.OrderItem {
	t.Helper()
	records, err := composer.Serializer{Calc: testCalc()}.Serialize(sel)
	require.NoError(t, err)
	return records
}

func TestSerializeEmptyOrder(t *testing.T) {
	_, err := composer.Serializer{Calc: testCalc()}.Serialize(composer.NewSelection())
	assert.ErrorIs(t, err, composer.ErrEmptyOrder)
}

func TestSerializeRecordShape(t *testing.T) {
	records := serializeAll(t, buildFullSelection(t))
	require.Len(t, records, 3)

	// Tepat satu referensi katalog per baris
	for _, rec := range records {
		refs := 0
		if rec.MenuID != nil {
			refs++
		}
		if rec.BundleID != nil {
			refs++
		}
		if rec.AddOnID != nil {
			refs++
		}
		assert.Equal(t, 1, refs)
	}

	item, bundle, side := records[0], records[1], records[2]

	assert.Equal(t, "Burger Daging", item.Name)
	assert.Equal(t, 8000.0, item.UnitPrice)
	require.Len(t, item.AddOns, 1)
	// Baris add-on datar ikut kuantitas induk: 2000 x 1 x 2
	assert.Equal(t, 4000.0, item.AddOns[0].Subtotal)
	require.NotNil(t, item.Configuration)

	// Add-on di dalam paket hanya hidup di payload
	assert.Empty(t, bundle.AddOns)
	require.NotNil(t, bundle.Configuration)
	cfg, err := composer.DecodeConfiguration(*bundle.Configuration)
	require.NoError(t, err)
	assert.Equal(t, composer.ConfigKindBundle, cfg.Kind)
	require.NotNil(t, cfg.Bundle)
	require.Len(t, cfg.Bundle.Slots, 2)
	assert.Equal(t, uint(100), cfg.Bundle.Slots[0].SlotID)
	require.Len(t, cfg.Bundle.Slots[0].Items, 1)
	require.NotNil(t, cfg.Bundle.Slots[1].Choice)
	assert.Equal(t, "Cola", cfg.Bundle.Slots[1].Choice.Name)

	assert.Equal(t, "Salad", side.Name)
	require.Len(t, side.AddOns, 1)
	assert.Equal(t, 2000.0, side.AddOns[0].Subtotal)
}

func TestUncustomizedItemHasNilPayload(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	records := serializeAll(t, sel)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].Configuration)
}

func assertSameTotals(t *testing.T, original, reloaded *composer.Selection) {
	t.Helper()
	calc := testCalc()

	assert.Equal(t, calc.Subtotal(original), calc.Subtotal(reloaded))
	assert.Equal(t,
		calc.OrderTotal(original, models.DiscountPercent, 10, models.OrderTypeDelivery, 8000),
		calc.OrderTotal(reloaded, models.DiscountPercent, 10, models.OrderTypeDelivery, 8000))

	origRecords := serializeAll(t, original)
	reloadedRecords := serializeAll(t, reloaded)
	require.Equal(t, len(origRecords), len(reloadedRecords))
	for i := range origRecords {
		assert.Equal(t, origRecords[i].Subtotal, reloadedRecords[i].Subtotal)
		assert.Equal(t, origRecords[i].UnitPrice, reloadedRecords[i].UnitPrice)
		assert.Equal(t, origRecords[i].Name, reloadedRecords[i].Name)
		assert.Equal(t, origRecords[i].Quantity, reloadedRecords[i].Quantity)
	}
}

func TestRoundTripItemsOnly(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key
	sel = sel.UpdateMeatQty(key, 1)
	sel = sel.ToggleAddOn(key, cheeseAddOn())

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	require.NoError(t, err)

	assertSameTotals(t, sel, reloaded)
	assert.Equal(t, []string(nil), reloaded.Items[0].Removed)
	assert.Equal(t, 3, reloaded.Items[0].MeatQty)
}

func TestRoundTripBundlesOnly(t *testing.T) {
	sel := composer.NewSelection().AddBundle(familyBundle())
	bKey := sel.Bundles[0].Key
	var err error
	sel, err = sel.FillSlot(bKey, 100, burgerMenu())
	require.NoError(t, err)
	sel = sel.ChooseSlotOption(bKey, 101, colaAddOn())

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	require.NoError(t, err)

	assertSameTotals(t, sel, reloaded)

	// Template masih ada: kapasitas/minimum slot dari katalog
	b := reloaded.Bundles[0]
	require.Len(t, b.Slots, 2)
	assert.Equal(t, 2, b.Slots[0].Capacity)
	assert.Equal(t, 2, b.Slots[0].MinRequired)
	require.NotNil(t, b.Slots[1].Choice)
	assert.Equal(t, 5000.0, b.Slots[1].Choice.Price)
}

func TestRoundTripSidesOnly(t *testing.T) {
	sel := composer.NewSelection().AddSide(saladSide())
	key := sel.Sides[0].Key
	sel = sel.UpdateSideQty(key, 2)
	sel = sel.ToggleSideExtra(key, cheeseAddOn())

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	require.NoError(t, err)

	assertSameTotals(t, sel, reloaded)
}

func TestRoundTripCombined(t *testing.T) {
	sel := buildFullSelection(t)

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	require.NoError(t, err)

	assertSameTotals(t, sel, reloaded)
}

// Katalog sudah dikosongkan sama sekali: placeholder disintesis dari payload
// dan harga historis tetap dipertahankan.
func TestRoundTripAfterCatalogDeleted(t *testing.T) {
	sel := buildFullSelection(t)

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(emptySnapshot()).Deserialize(records)
	require.NoError(t, err)

	assertSameTotals(t, sel, reloaded)

	// Placeholder membawa nama dan harga historis
	assert.Equal(t, "Burger Daging", reloaded.Items[0].Menu.Name)
	assert.Equal(t, 8000.0, reloaded.Items[0].Menu.Price)
	assert.Equal(t, "Paket Keluarga", reloaded.Bundles[0].Bundle.Name)
	assert.Equal(t, 30000.0, reloaded.Bundles[0].Bundle.Price)

	// Template paket hilang: slot direkonstruksi permisif
	b := reloaded.Bundles[0]
	require.Len(t, b.Slots, 2)
	assert.Equal(t, 1, b.Slots[0].Capacity)
	assert.Equal(t, 0, b.Slots[0].MinRequired)
}

// Harga katalog berubah setelah order dibuat: harga historis menang.
func TestSnapshotPriceWinsOverCurrentCatalog(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	records := serializeAll(t, sel)

	snap := testSnapshot()
	repriced := snap.Menus[1]
	repriced.Price = 99000
	repriced.Name = "Burger Daging Baru"
	snap.Menus[1] = repriced

	reloaded, err := composer.NewDeserializer(snap).Deserialize(records)
	require.NoError(t, err)

	assert.Equal(t, 8000.0, reloaded.Items[0].Menu.Price)
	assert.Equal(t, "Burger Daging", reloaded.Items[0].Menu.Name)
	assertSameTotals(t, sel, reloaded)
}

// Add-on penyesuai kentang berganti harga setelah order dibuat: selisih harga
// historis dari payload menang; mengubah jumlah kentang lagi baru memakai
// harga katalog saat ini.
func TestFriesRepriceKeepsHistoricalAdjustment(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	sel = sel.UpdateFriesQty(sel.Items[0].Key, 1) // 2, default 1

	records := serializeAll(t, sel) // kentang 1200/unit
	require.Len(t, records, 1)
	assert.Equal(t, 9200.0, records[0].Subtotal)

	snap := testSnapshot()
	repriced := snap.AddOns[11]
	repriced.Price = 2000
	snap.AddOns[11] = repriced

	reloaded, err := composer.NewDeserializer(snap).Deserialize(records)
	require.NoError(t, err)

	driftedCalc := composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice())
	assert.Equal(t, 9200.0, driftedCalc.Subtotal(reloaded))

	// Add-on penyesuainya malah sudah dihapus: delta historis tetap dipakai
	gone, err := composer.NewDeserializer(emptySnapshot()).Deserialize(records)
	require.NoError(t, err)
	assert.Equal(t, 9200.0, composer.NewCalculator(0, 0).Subtotal(gone))

	// Edit jumlah kentang menghargai ulang dengan harga baru: 8000 + 2 x 2000
	edited := reloaded.UpdateFriesQty(reloaded.Items[0].Key, 1)
	assert.Equal(t, 12000.0, driftedCalc.Subtotal(edited))
}

// Item pengisi slot membawa delta kentang historisnya sendiri di payload paket.
func TestBundleSlotItemKeepsHistoricalFriesDelta(t *testing.T) {
	sel := composer.NewSelection().AddBundle(familyBundle())
	bKey := sel.Bundles[0].Key
	var err error
	sel, err = sel.FillSlot(bKey, 100, burgerMenu())
	require.NoError(t, err)
	slotItemKey := sel.Bundles[0].Slots[0].Items[0].Key
	sel = sel.UpdateSlotItemFriesQty(bKey, 100, slotItemKey, 2) // 3, default 1
	sel = sel.ChooseSlotOption(bKey, 101, colaAddOn())

	records := serializeAll(t, sel)
	// 30000 + 2 x 1200 + cola 5000
	assert.Equal(t, 37400.0, records[0].Subtotal)

	snap := testSnapshot()
	repriced := snap.AddOns[11]
	repriced.Price = 500
	snap.AddOns[11] = repriced

	reloaded, err := composer.NewDeserializer(snap).Deserialize(records)
	require.NoError(t, err)
	assert.Equal(t, 37400.0,
		composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice()).Subtotal(reloaded))
}

// Menu sudah dihapus dan barisnya tidak membawa payload: jumlah daging hasil
// rekonstruksi tetap di lantai 1 dan harga historis tidak bergeser.
func TestRestoreUncustomizedItemAfterMenuDeleted(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	records := serializeAll(t, sel)
	require.Nil(t, records[0].Configuration)

	reloaded, err := composer.NewDeserializer(emptySnapshot()).Deserialize(records)
	require.NoError(t, err)

	assert.Equal(t, 1, reloaded.Items[0].MeatQty)
	assert.Equal(t, 1, reloaded.Items[0].Menu.DefaultMeatQty)
	assert.Equal(t, 8000.0, testCalc().Subtotal(reloaded))
}

func TestDeserializeDanglingRecord(t *testing.T) {
	records := []models.OrderItem{{Name: "???", Quantity: 1}}
	_, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	assert.ErrorIs(t, err, composer.ErrDanglingRecord)
}

func TestDeserializePreservesRemovedIngredients(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key
	sel = sel.ToggleIngredient(key, "bawang")
	sel = sel.ToggleIngredient(key, "timun")

	records := serializeAll(t, sel)
	reloaded, err := composer.NewDeserializer(testSnapshot()).Deserialize(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"bawang", "timun"}, reloaded.Items[0].Removed)
}
