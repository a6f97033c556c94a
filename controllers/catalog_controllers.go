package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/models"
	"github.com/yeremiapane/restaurant-order-engine/utils"
)

type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// GetCatalog -> seluruh katalog yang tersedia untuk layar komposisi order.
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	var menus []models.Menu
	if err := cc.DB.Where("available = ?", true).Order("id asc").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var addOns []models.AddOn
	if err := cc.DB.Where("available = ?", true).Order("id asc").Find(&addOns).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var bundles []models.Bundle
	if err := cc.DB.Preload("Slots", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("available = ?", true).Order("id asc").Find(&bundles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Catalog", gin.H{
		"menus":   menus,
		"add_ons": addOns,
		"bundles": bundles,
	})
}

// GetMenus -> daftar item menu saja.
func (cc *CatalogController) GetMenus(c *gin.Context) {
	var menus []models.Menu
	if err := cc.DB.Order("id asc").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetBundles -> daftar paket beserta slotnya.
func (cc *CatalogController) GetBundles(c *gin.Context) {
	var bundles []models.Bundle
	if err := cc.DB.Preload("Slots", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Order("id asc").Find(&bundles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bundles", bundles)
}
