package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/catalog"
	"github.com/yeremiapane/restaurant-order-engine/composer"
	"github.com/yeremiapane/restaurant-order-engine/config"
	"github.com/yeremiapane/restaurant-order-engine/models"
	"github.com/yeremiapane/restaurant-order-engine/services"
	"github.com/yeremiapane/restaurant-order-engine/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		Orders: services.NewOrderService(db, services.LogPrinter{}),
	}
}

/*
========================================
 REQUEST DTO KOMPOSISI
========================================
*/

type addOnReq struct {
	AddOnID  uint `json:"add_on_id"`
	Quantity int  `json:"quantity"`
}

type itemReq struct {
	MenuID             uint       `json:"menu_id"`
	Quantity           int        `json:"quantity"`
	MeatQty            *int       `json:"meat_qty,omitempty"`
	FriesQty           *int       `json:"fries_qty,omitempty"`
	RemovedIngredients []string   `json:"removed_ingredients,omitempty"`
	AddOns             []addOnReq `json:"add_ons,omitempty"`
}

type slotReq struct {
	SlotID        uint      `json:"slot_id"`
	Items         []itemReq `json:"items,omitempty"`
	ChoiceAddOnID *uint     `json:"choice_add_on_id,omitempty"`
}

type bundleReq struct {
	BundleID uint      `json:"bundle_id"`
	Quantity int       `json:"quantity"`
	Slots    []slotReq `json:"slots,omitempty"`
}

type sideReq struct {
	AddOnID  uint       `json:"add_on_id"`
	Quantity int        `json:"quantity"`
	Extras   []addOnReq `json:"extras,omitempty"`
}

type compositionReq struct {
	CustomerName  string      `json:"customer_name" binding:"required"`
	CustomerPhone string      `json:"customer_phone" binding:"required"`
	OrderType     string      `json:"order_type"`
	AddressLabel  string      `json:"address_label,omitempty"`
	AddressStreet string      `json:"address_street,omitempty"`
	AddressNotes  string      `json:"address_notes,omitempty"`
	DeliveryFee   float64     `json:"delivery_fee"`
	PaymentMethod string      `json:"payment_method"`
	DiscountKind  string      `json:"discount_kind"`
	DiscountValue float64     `json:"discount_value"`
	Items         []itemReq   `json:"items,omitempty"`
	Bundles       []bundleReq `json:"bundles,omitempty"`
	Sides         []sideReq   `json:"sides,omitempty"`
}

func (r compositionReq) submitRequest() services.SubmitRequest {
	orderType := r.OrderType
	if orderType == "" {
		orderType = models.OrderTypePickup
	}
	paymentMethod := r.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	discountKind := r.DiscountKind
	if discountKind == "" {
		discountKind = models.DiscountNone
	}
	return services.SubmitRequest{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		OrderType:     orderType,
		AddressLabel:  r.AddressLabel,
		AddressStreet: r.AddressStreet,
		AddressNotes:  r.AddressNotes,
		DeliveryFee:   r.DeliveryFee,
		PaymentMethod: paymentMethod,
		DiscountKind:  discountKind,
		DiscountValue: r.DiscountValue,
	}
}

func (oc *OrderController) loadSnapshot() (*catalog.Snapshot, error) {
	meatID, friesID := config.AdjustmentAddOnIDs()
	return catalog.Load(oc.DB, meatID, friesID)
}

// buildSelection menyusun snapshot Selection dari DTO request dengan operasi
// mesin komposisi, sehingga semua invariannya ikut ditegakkan.
func buildSelection(snap *catalog.Snapshot, req compositionReq) (*composer.Selection, error) {
	sel := composer.NewSelection()

	for _, ir := range req.Items {
		menu, ok := snap.Menu(ir.MenuID)
		if !ok {
			return nil, fmt.Errorf("menu %d tidak ditemukan", ir.MenuID)
		}
		sel = sel.AddItem(menu)
		key := sel.Items[len(sel.Items)-1].Key
		var err error
		sel, err = customizeItem(snap, sel, key, menu, ir)
		if err != nil {
			return nil, err
		}
	}

	for _, br := range req.Bundles {
		bundle, ok := snap.Bundle(br.BundleID)
		if !ok {
			return nil, fmt.Errorf("paket %d tidak ditemukan", br.BundleID)
		}
		sel = sel.AddBundle(bundle)
		bundleKey := sel.Bundles[len(sel.Bundles)-1].Key
		if br.Quantity > 1 {
			sel = sel.UpdateBundleQty(bundleKey, br.Quantity-1)
		}

		for _, sr := range br.Slots {
			for _, ir := range sr.Items {
				menu, ok := snap.Menu(ir.MenuID)
				if !ok {
					return nil, fmt.Errorf("menu %d tidak ditemukan", ir.MenuID)
				}
				var err error
				sel, err = sel.FillSlot(bundleKey, sr.SlotID, menu)
				if err != nil {
					return nil, fmt.Errorf("slot %d: %w", sr.SlotID, err)
				}
				itemKey, itemMeat := lastSlotItem(sel, bundleKey, sr.SlotID)
				if ir.Quantity > 1 {
					sel = sel.UpdateSlotItemQty(bundleKey, sr.SlotID, itemKey, ir.Quantity-1)
				}
				if ir.MeatQty != nil {
					sel = sel.UpdateSlotItemMeatQty(bundleKey, sr.SlotID, itemKey, *ir.MeatQty-itemMeat)
				}
				if ir.FriesQty != nil {
					sel = sel.UpdateSlotItemFriesQty(bundleKey, sr.SlotID, itemKey, *ir.FriesQty-menu.DefaultFriesQty)
				}
				for _, name := range ir.RemovedIngredients {
					sel = sel.ToggleSlotItemIngredient(bundleKey, sr.SlotID, itemKey, name)
				}
				for _, ar := range ir.AddOns {
					addOn, ok := snap.AddOn(ar.AddOnID)
					if !ok {
						return nil, fmt.Errorf("add-on %d tidak ditemukan", ar.AddOnID)
					}
					sel = sel.ToggleSlotItemAddOn(bundleKey, sr.SlotID, itemKey, addOn)
					if ar.Quantity > 1 {
						sel = sel.UpdateSlotItemAddOnQty(bundleKey, sr.SlotID, itemKey, ar.AddOnID, ar.Quantity-1)
					}
				}
			}
			if sr.ChoiceAddOnID != nil {
				addOn, ok := snap.AddOn(*sr.ChoiceAddOnID)
				if !ok {
					return nil, fmt.Errorf("add-on %d tidak ditemukan", *sr.ChoiceAddOnID)
				}
				sel = sel.ChooseSlotOption(bundleKey, sr.SlotID, addOn)
			}
		}
	}

	for _, sr := range req.Sides {
		addOn, ok := snap.AddOn(sr.AddOnID)
		if !ok {
			return nil, fmt.Errorf("add-on %d tidak ditemukan", sr.AddOnID)
		}
		sel = sel.AddSide(addOn)
		key := sel.Sides[len(sel.Sides)-1].Key
		if sr.Quantity > 1 {
			sel = sel.UpdateSideQty(key, sr.Quantity-1)
		}
		for _, er := range sr.Extras {
			extra, ok := snap.AddOn(er.AddOnID)
			if !ok {
				return nil, fmt.Errorf("add-on %d tidak ditemukan", er.AddOnID)
			}
			sel = sel.ToggleSideExtra(key, extra)
			if er.Quantity > 1 {
				sel = sel.UpdateSideExtraQty(key, er.AddOnID, er.Quantity-1)
			}
		}
	}

	return sel, nil
}

func customizeItem(snap *catalog.Snapshot, sel *composer.Selection, key string, menu models.Menu, ir itemReq) (*composer.Selection, error) {
	if ir.Quantity > 1 {
		sel = sel.UpdateItemQty(key, ir.Quantity-1)
	}
	if ir.MeatQty != nil {
		sel = sel.UpdateMeatQty(key, *ir.MeatQty-menu.DefaultMeatQty)
	}
	if ir.FriesQty != nil {
		sel = sel.UpdateFriesQty(key, *ir.FriesQty-menu.DefaultFriesQty)
	}
	for _, name := range ir.RemovedIngredients {
		sel = sel.ToggleIngredient(key, name)
	}
	for _, ar := range ir.AddOns {
		addOn, ok := snap.AddOn(ar.AddOnID)
		if !ok {
			return nil, fmt.Errorf("add-on %d tidak ditemukan", ar.AddOnID)
		}
		sel = sel.ToggleAddOn(key, addOn)
		if ar.Quantity > 1 {
			sel = sel.UpdateAddOnQty(key, ar.AddOnID, ar.Quantity-1)
		}
	}
	return sel, nil
}

// lastSlotItem mengambil key dan jumlah daging awal item yang baru masuk slot.
func lastSlotItem(sel *composer.Selection, bundleKey string, slotID uint) (string, int) {
	b, ok := sel.BundleByKey(bundleKey)
	if !ok {
		return "", 0
	}
	for _, slot := range b.Slots {
		if slot.SlotID != slotID || len(slot.Items) == 0 {
			continue
		}
		last := slot.Items[len(slot.Items)-1]
		return last.Key, last.MeatQty
	}
	return "", 0
}

/*
========================================
 ENDPOINT
========================================
*/

// QuoteOrder -> hitung ulang total dari komposisi tanpa menyimpan apa pun;
// dipanggil UI setiap kali komposisi berubah.
func (oc *OrderController) QuoteOrder(c *gin.Context) {
	var req compositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	snap, err := oc.loadSnapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sel, err := buildSelection(snap, req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sub := req.submitRequest()
	calc := composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice())
	subtotal := calc.Subtotal(sel)

	utils.RespondJSON(c, http.StatusOK, "Order quote", gin.H{
		"subtotal":       subtotal,
		"discount_total": composer.DiscountTotal(subtotal, sub.DiscountKind, sub.DiscountValue),
		"total":          calc.OrderTotal(sel, sub.DiscountKind, sub.DiscountValue, sub.OrderType, sub.DeliveryFee),
		"submit_ready":   sel.SubmitReady() && !sel.IsEmpty(),
		"selection":      sel,
	})
}

// CreateOrder -> submit komposisi menjadi order baru.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req compositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	snap, err := oc.loadSnapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sel, err := buildSelection(snap, req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	calc := composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice())
	order, err := oc.Orders.Submit(sel, calc, req.submitRequest())
	if err != nil {
		oc.respondSubmitError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder -> submit ulang hasil edit; seluruh baris order diganti.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_id tidak valid"))
		return
	}

	var req compositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	snap, err := oc.loadSnapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sel, err := buildSelection(snap, req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	calc := composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice())
	order, err := oc.Orders.Resubmit(uint(orderID), sel, calc, req.submitRequest())
	if err != nil {
		oc.respondSubmitError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

func (oc *OrderController) respondSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrNotSubmitReady), errors.Is(err, composer.ErrEmptyOrder):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// GetAllOrders -> list orders beserta items.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").Preload("Items.AddOns").Preload("Customer").
		Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_id tidak valid"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.AddOns").Preload("Customer").
		Preload("DeliveryAddress").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// EditOrder -> rekonstruksi snapshot komposisi dari order tersimpan untuk
// layar edit. Entitas katalog yang sudah hilang diganti placeholder historis
// sehingga order lama tetap bisa dimuat.
func (oc *OrderController) EditOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_id tidak valid"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.AddOns").Preload("Customer").
		Preload("DeliveryAddress").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	snap, err := oc.loadSnapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sel, err := composer.NewDeserializer(snap).Deserialize(order.Items)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	calc := composer.NewCalculator(snap.MeatUnitPrice(), snap.FriesUnitPrice())
	utils.RespondJSON(c, http.StatusOK, "Order composition", gin.H{
		"order":     order,
		"selection": sel,
		"subtotal":  calc.Subtotal(sel),
		"total": calc.OrderTotal(sel, order.DiscountKind, order.DiscountValue,
			order.OrderType, order.DeliveryFee),
	})
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_id tidak valid"))
		return
	}

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
