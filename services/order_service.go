package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/composer"
	"github.com/yeremiapane/restaurant-order-engine/models"
	"github.com/yeremiapane/restaurant-order-engine/utils"
)

var (
	ErrNotSubmitReady = errors.New("masih ada slot paket wajib yang belum terisi")
	ErrOrderNotFound  = errors.New("order tidak ditemukan")
)

// SubmitRequest membawa data order di luar komposisi item: customer, mode
// pengambilan, pembayaran, dan diskon.
type SubmitRequest struct {
	CustomerName  string
	CustomerPhone string
	OrderType     string
	AddressLabel  string
	AddressStreet string
	AddressNotes  string
	DeliveryFee   float64
	PaymentMethod string
	DiscountKind  string
	DiscountValue float64
}

// OrderService menjalankan alur submit: resolve-or-create customer,
// resolve-or-create alamat (mode delivery), tulis order + baris item dalam
// satu transaksi, lalu dispatch cetak best-effort. Service tidak pernah
// memegang Selection; kalau commit gagal, snapshot milik pemanggil tetap
// utuh dan bisa disubmit ulang tanpa mengulang kustomisasi.
type OrderService struct {
	DB      *gorm.DB
	Printer Printer
}

func NewOrderService(db *gorm.DB, printer Printer) *OrderService {
	if printer == nil {
		printer = LogPrinter{}
	}
	return &OrderService{DB: db, Printer: printer}
}

// Submit membuat order baru dari snapshot Selection.
func (s *OrderService) Submit(sel *composer.Selection, calc composer.Calculator, req SubmitRequest) (*models.Order, error) {
	return s.persist(0, sel, calc, req)
}

// Resubmit menimpa order yang ada dengan hasil edit; baris item lama diganti
// seluruhnya (last write wins, tanpa merge).
func (s *OrderService) Resubmit(orderID uint, sel *composer.Selection, calc composer.Calculator, req SubmitRequest) (*models.Order, error) {
	return s.persist(orderID, sel, calc, req)
}

func (s *OrderService) persist(orderID uint, sel *composer.Selection, calc composer.Calculator, req SubmitRequest) (*models.Order, error) {
	if !sel.SubmitReady() {
		return nil, ErrNotSubmitReady
	}

	serializer := composer.Serializer{Calc: calc}
	records, err := serializer.Serialize(sel)
	if err != nil {
		return nil, err
	}

	subtotal := calc.Subtotal(sel)
	discount := composer.DiscountTotal(subtotal, req.DiscountKind, req.DiscountValue)
	total := calc.OrderTotal(sel, req.DiscountKind, req.DiscountValue, req.OrderType, req.DeliveryFee)

	var order models.Order
	now := time.Now()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := s.resolveCustomer(tx, req)
		if err != nil {
			return err
		}

		var addressID *uint
		if req.OrderType == models.OrderTypeDelivery {
			address, err := s.resolveAddress(tx, customer.ID, req)
			if err != nil {
				return err
			}
			addressID = &address.ID
		}

		deliveryFee := 0.0
		if req.OrderType == models.OrderTypeDelivery {
			deliveryFee = req.DeliveryFee
		}

		if orderID != 0 {
			if err := tx.First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}
			// Ganti seluruh baris lama beserta baris add-on reportingnya.
			var oldItemIDs []uint
			if err := tx.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Pluck("id", &oldItemIDs).Error; err != nil {
				return err
			}
			if len(oldItemIDs) > 0 {
				if err := tx.Where("order_item_id IN ?", oldItemIDs).Delete(&models.OrderItemAddOn{}).Error; err != nil {
					return err
				}
				if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
					return err
				}
			}
		} else {
			order = models.Order{CreatedAt: now, Status: "open"}
		}

		order.CustomerID = customer.ID
		order.OrderType = req.OrderType
		order.DeliveryAddressID = addressID
		order.DeliveryFee = deliveryFee
		order.PaymentMethod = req.PaymentMethod
		order.DiscountKind = req.DiscountKind
		order.DiscountValue = req.DiscountValue
		order.DiscountTotal = discount
		order.Subtotal = subtotal
		order.TotalAmount = total
		order.UpdatedAt = now

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		for i := range records {
			records[i].OrderID = order.ID
			records[i].CreatedAt = now
			records[i].UpdatedAt = now
			for j := range records[i].AddOns {
				records[i].AddOns[j].CreatedAt = now
				records[i].AddOns[j].UpdatedAt = now
			}
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		order.Items = records
		return nil
	})
	if err != nil {
		return nil, err
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Order #%d tersimpan, total %s", order.ID, utils.FormatCurrencyIDR(order.TotalAmount))
	}

	// Cetak best-effort; kegagalan tidak membatalkan order yang sudah commit.
	if err := s.Printer.PrintOrder(order.ID); err != nil && utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("Print dispatch failed for order #%d: %v", order.ID, err)
	}

	return &order, nil
}

func (s *OrderService) resolveCustomer(tx *gorm.DB, req SubmitRequest) (models.Customer, error) {
	var customer models.Customer
	err := tx.Where("phone = ?", req.CustomerPhone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:      req.CustomerName,
			Phone:     req.CustomerPhone,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		err = tx.Create(&customer).Error
	} else if err == nil && req.CustomerName != "" && customer.Name != req.CustomerName {
		customer.Name = req.CustomerName
		customer.UpdatedAt = time.Now()
		err = tx.Save(&customer).Error
	}
	return customer, err
}

func (s *OrderService) resolveAddress(tx *gorm.DB, customerID uint, req SubmitRequest) (models.DeliveryAddress, error) {
	label := req.AddressLabel
	if label == "" {
		label = "utama"
	}
	var address models.DeliveryAddress
	err := tx.Where("customer_id = ? AND label = ?", customerID, label).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		address = models.DeliveryAddress{
			CustomerID: customerID,
			Label:      label,
			Street:     req.AddressStreet,
			Notes:      req.AddressNotes,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		return address, tx.Create(&address).Error
	}
	if err != nil {
		return address, err
	}
	if req.AddressStreet != "" && address.Street != req.AddressStreet {
		address.Street = req.AddressStreet
		address.Notes = req.AddressNotes
		address.UpdatedAt = time.Now()
		err = tx.Save(&address).Error
	}
	return address, err
}
