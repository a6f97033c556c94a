package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/composer"
	"github.com/yeremiapane/restaurant-order-engine/models"
	"github.com/yeremiapane/restaurant-order-engine/services"
	"github.com/yeremiapane/restaurant-order-engine/utils"
)

type recordingPrinter struct {
	printed []uint
	fail    bool
}

func (p *recordingPrinter) PrintOrder(orderID uint) error {
	if p.fail {
		return errors.New("printer offline")
	}
	p.printed = append(p.printed, orderID)
	return nil
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.DeliveryAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddOn{},
	))
	return db
}

func testMenu() models.Menu {
	return models.Menu{ID: 1, Name: "Burger Daging", Price: 8000, DefaultMeatQty: 2, DefaultFriesQty: 1}
}

func pickupRequest() services.SubmitRequest {
	return services.SubmitRequest{
		CustomerName:  "Budi",
		CustomerPhone: "0812000111",
		OrderType:     models.OrderTypePickup,
		PaymentMethod: "cash",
		DiscountKind:  models.DiscountNone,
	}
}

func TestSubmitCreatesOrder(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	printer := &recordingPrinter{}
	svc := services.NewOrderService(db, printer)

	sel := composer.NewSelection().AddItem(testMenu())
	calc := composer.NewCalculator(1500, 1200)

	order, err := svc.Submit(sel, calc, pickupRequest())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, 8000.0, order.Subtotal)
	assert.Equal(t, 8000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, printer.printed, []uint{order.ID})

	// Customer dibuat dari nomor telepon
	var customer models.Customer
	require.NoError(t, db.Where("phone = ?", "0812000111").First(&customer).Error)
	assert.Equal(t, "Budi", customer.Name)
}

func TestSubmitReusesCustomerByPhone(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})

	sel := composer.NewSelection().AddItem(testMenu())
	calc := composer.NewCalculator(1500, 1200)

	first, err := svc.Submit(sel, calc, pickupRequest())
	require.NoError(t, err)
	second, err := svc.Submit(sel, calc, pickupRequest())
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitDeliveryCreatesAddressAndFee(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})

	sel := composer.NewSelection().AddItem(testMenu())
	calc := composer.NewCalculator(1500, 1200)

	req := pickupRequest()
	req.OrderType = models.OrderTypeDelivery
	req.DeliveryFee = 8000
	req.AddressLabel = "rumah"
	req.AddressStreet = "Jl. Melati 5"

	order, err := svc.Submit(sel, calc, req)
	require.NoError(t, err)
	assert.Equal(t, 16000.0, order.TotalAmount)
	require.NotNil(t, order.DeliveryAddressID)

	var address models.DeliveryAddress
	require.NoError(t, db.First(&address, *order.DeliveryAddressID).Error)
	assert.Equal(t, "rumah", address.Label)
}

func TestSubmitRejectsEmptySelection(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})

	_, err := svc.Submit(composer.NewSelection(), composer.NewCalculator(0, 0), pickupRequest())
	assert.ErrorIs(t, err, composer.ErrEmptyOrder)

	// Tidak ada order maupun customer yang tersisa
	var orders, customers int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.Customer{}).Count(&customers)
	assert.Zero(t, orders)
	assert.Zero(t, customers)
}

func TestSubmitRejectsUnreadyBundle(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})

	bundle := models.Bundle{
		ID:    20,
		Name:  "Paket Keluarga",
		Price: 30000,
		Slots: []models.BundleSlot{
			{ID: 100, BundleID: 20, Kind: models.SlotKindItem, Capacity: 2, MinRequired: 2},
		},
	}
	sel := composer.NewSelection().AddBundle(bundle)

	_, err := svc.Submit(sel, composer.NewCalculator(0, 0), pickupRequest())
	assert.ErrorIs(t, err, services.ErrNotSubmitReady)
}

func TestPrintFailureDoesNotRollBack(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{fail: true})

	sel := composer.NewSelection().AddItem(testMenu())
	order, err := svc.Submit(sel, composer.NewCalculator(1500, 1200), pickupRequest())
	require.NoError(t, err)

	var stored models.Order
	assert.NoError(t, db.First(&stored, order.ID).Error)
}

func TestResubmitReplacesItems(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})
	calc := composer.NewCalculator(1500, 1200)

	sel := composer.NewSelection().AddItem(testMenu())
	order, err := svc.Submit(sel, calc, pickupRequest())
	require.NoError(t, err)

	// Edit: kuantitas 2 dan diskon persen
	edited := composer.NewSelection().AddItem(testMenu())
	edited = edited.UpdateItemQty(edited.Items[0].Key, 1)

	req := pickupRequest()
	req.DiscountKind = models.DiscountPercent
	req.DiscountValue = 25

	updated, err := svc.Resubmit(order.ID, edited, calc, req)
	require.NoError(t, err)
	assert.Equal(t, order.ID, updated.ID)
	assert.Equal(t, 16000.0, updated.Subtotal)
	assert.Equal(t, 4000.0, updated.DiscountTotal)
	assert.Equal(t, 12000.0, updated.TotalAmount)

	// Baris lama diganti seluruhnya
	var itemCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.Equal(t, int64(1), itemCount)

	var stored models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&stored).Error)
	assert.Equal(t, 2, stored.Quantity)
}

func TestResubmitUnknownOrder(t *testing.T) {
	utils.InitLogger()
	db := setupServiceDB(t)
	svc := services.NewOrderService(db, &recordingPrinter{})

	sel := composer.NewSelection().AddItem(testMenu())
	_, err := svc.Resubmit(999, sel, composer.NewCalculator(0, 0), pickupRequest())
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}
