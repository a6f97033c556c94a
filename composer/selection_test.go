package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-order-engine/composer"
)

func TestAddItemUsesCatalogDefaults(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())

	require.Len(t, sel.Items, 1)
	it := sel.Items[0]
	assert.NotEmpty(t, it.Key)
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, 2, it.MeatQty)
	assert.Equal(t, 1, it.FriesQty)
	assert.Empty(t, it.Removed)
	assert.Empty(t, it.AddOns)
}

func TestUpdateItemQtyRemovesAtZero(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key

	sel = sel.UpdateItemQty(key, 2)
	assert.Equal(t, 3, sel.Items[0].Quantity)

	// Turunkan bertahap; kuantitas tidak pernah < 1 di snapshot yang ada
	for i := 0; i < 2; i++ {
		sel = sel.UpdateItemQty(key, -1)
		require.Len(t, sel.Items, 1)
		assert.GreaterOrEqual(t, sel.Items[0].Quantity, 1)
	}

	// Mencapai 0 menghapus entri
	sel = sel.UpdateItemQty(key, -1)
	assert.Empty(t, sel.Items)
	_, ok := sel.Item(key)
	assert.False(t, ok)
}

func TestMeatQtyFloorsAtOne(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key

	sel = sel.UpdateMeatQty(key, -10)
	assert.Equal(t, 1, sel.Items[0].MeatQty)

	sel = sel.UpdateMeatQty(key, 3)
	assert.Equal(t, 4, sel.Items[0].MeatQty)
}

func TestFriesQtyFloorsAtZero(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key

	sel = sel.UpdateFriesQty(key, -5)
	assert.Equal(t, 0, sel.Items[0].FriesQty)

	sel = sel.UpdateFriesQty(key, 2)
	assert.Equal(t, 2, sel.Items[0].FriesQty)
}

func TestToggleIngredient(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key

	sel = sel.ToggleIngredient(key, "bawang")
	assert.Equal(t, []string{"bawang"}, sel.Items[0].Removed)

	// Toggle kedua membatalkan
	sel = sel.ToggleIngredient(key, "bawang")
	assert.Empty(t, sel.Items[0].Removed)

	// Nama di luar daftar bahan menu diabaikan
	sel = sel.ToggleIngredient(key, "nanas")
	assert.Empty(t, sel.Items[0].Removed)
}

func TestToggleAndBumpAddOn(t *testing.T) {
	sel := composer.NewSelection().AddItem(burgerMenu())
	key := sel.Items[0].Key

	sel = sel.ToggleAddOn(key, cheeseAddOn())
	require.Len(t, sel.Items[0].AddOns, 1)
	assert.Equal(t, 1, sel.Items[0].AddOns[0].Quantity)

	sel = sel.UpdateAddOnQty(key, cheeseAddOn().ID, 2)
	assert.Equal(t, 3, sel.Items[0].AddOns[0].Quantity)

	// Turun ke 0 menghapus pasangan add-on
	sel = sel.UpdateAddOnQty(key, cheeseAddOn().ID, -3)
	assert.Empty(t, sel.Items[0].AddOns)

	// Toggle kedua kali juga menghapus
	sel = sel.ToggleAddOn(key, cheeseAddOn())
	sel = sel.ToggleAddOn(key, cheeseAddOn())
	assert.Empty(t, sel.Items[0].AddOns)
}

func TestMutationReturnsNewSnapshot(t *testing.T) {
	before := composer.NewSelection().AddItem(burgerMenu())
	key := before.Items[0].Key

	after := before.UpdateItemQty(key, 4)

	// Snapshot lama tidak berubah
	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 5, after.Items[0].Quantity)
}

func TestInsertionOrderPreserved(t *testing.T) {
	sel := composer.NewSelection().
		AddItem(burgerMenu()).
		AddItem(geprekMenu()).
		AddItem(burgerMenu())

	middle := sel.Items[1].Key
	sel = sel.UpdateItemQty(middle, 1)

	require.Len(t, sel.Items, 3)
	assert.Equal(t, uint(1), sel.Items[0].Menu.ID)
	assert.Equal(t, uint(2), sel.Items[1].Menu.ID)
	assert.Equal(t, uint(1), sel.Items[2].Menu.ID)

	// Menghapus entri tengah mempertahankan urutan sisanya
	sel = sel.RemoveItem(middle)
	require.Len(t, sel.Items, 2)
	assert.Equal(t, uint(1), sel.Items[0].Menu.ID)
	assert.Equal(t, uint(1), sel.Items[1].Menu.ID)
}

func TestSideLifecycle(t *testing.T) {
	sel := composer.NewSelection().AddSide(saladSide())
	key := sel.Sides[0].Key

	sel = sel.UpdateSideQty(key, 1)
	assert.Equal(t, 2, sel.Sides[0].Quantity)

	sel = sel.ToggleSideExtra(key, cheeseAddOn())
	require.Len(t, sel.Sides[0].Extras, 1)

	sel = sel.UpdateSideExtraQty(key, cheeseAddOn().ID, -1)
	assert.Empty(t, sel.Sides[0].Extras)

	sel = sel.UpdateSideQty(key, -2)
	assert.Empty(t, sel.Sides)
}

func TestBundleLifecycle(t *testing.T) {
	sel := composer.NewSelection().AddBundle(familyBundle())
	require.Len(t, sel.Bundles, 1)

	b := sel.Bundles[0]
	assert.Equal(t, 1, b.Quantity)
	require.Len(t, b.Slots, 2)
	assert.Equal(t, uint(100), b.Slots[0].SlotID)
	assert.Equal(t, uint(101), b.Slots[1].SlotID)

	sel = sel.UpdateBundleQty(b.Key, -1)
	assert.Empty(t, sel.Bundles)
}

func TestIsEmpty(t *testing.T) {
	sel := composer.NewSelection()
	assert.True(t, sel.IsEmpty())

	sel = sel.AddSide(saladSide())
	assert.False(t, sel.IsEmpty())
}
