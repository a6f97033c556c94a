package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyIDR memformat nilai float64 ke format Rupiah.
// Contoh: 15000.50 -> "Rp 15.000,50"
func FormatCurrencyIDR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := false
	if strings.HasPrefix(integerPart, "-") {
		negative = true
		integerPart = integerPart[1:]
	}

	// Tambahkan pemisah ribuan
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := "Rp " + strings.Join(groups, ".")
	if decimalPart != "00" {
		result += "," + decimalPart
	}
	if negative {
		result = "-" + result
	}
	return result
}
