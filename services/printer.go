package services

import "github.com/yeremiapane/restaurant-order-engine/utils"

// Printer mengirim tiket order ke dispatcher cetak. Pemanggilan bersifat
// best-effort: kegagalan dilaporkan tapi tidak membatalkan order yang sudah
// tersimpan.
type Printer interface {
	PrintOrder(orderID uint) error
}

// LogPrinter adalah dispatcher default yang hanya menulis ke log; dipakai
// saat layanan cetak fisik belum dikonfigurasi.
type LogPrinter struct{}

func (LogPrinter) PrintOrder(orderID uint) error {
	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("Print ticket dispatched for order #%d", orderID)
	}
	return nil
}
