package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB membuka koneksi database sesuai env. DB_DRIVER=mysql memakai DSN
// dari DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME; selain itu fallback ke
// sqlite lokal (DB_PATH, default restaurant.db).
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "restaurant.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// AdjustmentAddOnIDs membaca id dua add-on penyesuai dari env
// (MEAT_ADDON_ID, FRIES_ADDON_ID). 0 berarti belum ditunjuk; harga
// penyesuaian dianggap 0.
func AdjustmentAddOnIDs() (meatID, friesID uint) {
	return envUint("MEAT_ADDON_ID"), envUint("FRIES_ADDON_ID")
}

func envUint(key string) uint {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
