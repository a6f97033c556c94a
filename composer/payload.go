package composer

import (
	"encoding/json"
	"errors"
)

// Jenis payload konfigurasi.
const (
	ConfigKindItem   = "item"
	ConfigKindBundle = "bundle"
	ConfigKindSide   = "side"
)

var ErrUnknownConfigKind = errors.New("jenis payload konfigurasi tidak dikenal")

// AddOnConfig adalah snapshot historis satu add-on terpilih di dalam payload.
type AddOnConfig struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ItemConfig merekam kustomisasi satu item beserta default historisnya.
// Default ikut direkam supaya selisih penyesuaian tetap bisa dihitung ulang
// meski katalog sudah berubah atau entitasnya dihapus.
type ItemConfig struct {
	MeatQty         int `json:"meat_qty"`
	DefaultMeatQty  int `json:"default_meat_qty"`
	FriesQty        int `json:"fries_qty"`
	DefaultFriesQty int `json:"default_fries_qty"`
	// FriesPriceDelta adalah harga selisih kentang per unit item saat order
	// dibuat; saat rekonstruksi nilai ini menang atas harga add-on penyesuai
	// di katalog saat ini.
	FriesPriceDelta float64       `json:"fries_price_delta"`
	Removed         []string      `json:"removed_ingredients,omitempty"`
	AddOns          []AddOnConfig `json:"add_ons,omitempty"`
}

// isZero true bila tidak ada kustomisasi sama sekali (payload boleh null).
func (c ItemConfig) isZero() bool {
	return c.MeatQty == c.DefaultMeatQty &&
		c.FriesQty == c.DefaultFriesQty &&
		len(c.Removed) == 0 &&
		len(c.AddOns) == 0
}

// SlotItemConfig adalah snapshot satu item pengisi slot: identitas dan harga
// historis menu plus kustomisasinya.
type SlotItemConfig struct {
	MenuID   uint    `json:"menu_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ItemConfig
}

// SlotConfig mencerminkan satu FilledSlot dalam urutan aslinya.
type SlotConfig struct {
	SlotID uint             `json:"slot_id"`
	Kind   string           `json:"kind"`
	Items  []SlotItemConfig `json:"items,omitempty"`
	Choice *AddOnConfig     `json:"choice,omitempty"`
}

// BundleConfig merekam seluruh isi slot satu instance paket.
type BundleConfig struct {
	Slots []SlotConfig `json:"slots"`
}

// Configuration adalah tagged union payload konfigurasi yang disimpan di
// OrderItem. Kind item dan side memakai field Item; kind bundle memakai
// field Bundle.
type Configuration struct {
	Kind   string        `json:"kind"`
	Item   *ItemConfig   `json:"item,omitempty"`
	Bundle *BundleConfig `json:"bundle,omitempty"`
}

// Encode menyerialisasi payload ke string JSON.
func (c Configuration) Encode() (string, error) {
	switch c.Kind {
	case ConfigKindItem, ConfigKindSide:
		if c.Item == nil {
			return "", ErrUnknownConfigKind
		}
	case ConfigKindBundle:
		if c.Bundle == nil {
			return "", ErrUnknownConfigKind
		}
	default:
		return "", ErrUnknownConfigKind
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeConfiguration membaca kembali payload dari string JSON.
func DecodeConfiguration(raw string) (Configuration, error) {
	var c Configuration
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Configuration{}, err
	}
	switch c.Kind {
	case ConfigKindItem, ConfigKindSide:
		if c.Item == nil {
			return Configuration{}, ErrUnknownConfigKind
		}
	case ConfigKindBundle:
		if c.Bundle == nil {
			return Configuration{}, ErrUnknownConfigKind
		}
	default:
		return Configuration{}, ErrUnknownConfigKind
	}
	return c, nil
}
