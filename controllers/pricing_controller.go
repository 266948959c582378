package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPrices handles GET /api/prices - the full price sheet for client-side totals
func GetPrices(c *gin.Context) {
	sheet, err := pricingService().PriceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err, "load prices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"glass":    sheet.Glass,
		"hardware": sheet.Hardware,
		"seal":     sheet.Seal,
	})
}

// ListGlassPricing handles GET /api/glass-pricing
func ListGlassPricing(c *gin.Context) {
	handleList(c, "list glass pricing", pricingService().ListGlassPricing)
}

// CreateGlassPricing handles POST /api/glass-pricing
func CreateGlassPricing(c *gin.Context) {
	handleCreate(c, "create glass pricing", pricingService().CreateGlassPricing)
}

// UpdateGlassPricing handles PUT /api/glass-pricing/:id
func UpdateGlassPricing(c *gin.Context) {
	handleUpdate(c, "update glass pricing", pricingService().UpdateGlassPricing)
}

// DeleteGlassPricing handles DELETE /api/glass-pricing/:id
func DeleteGlassPricing(c *gin.Context) {
	handleDelete(c, "delete glass pricing", pricingService().DeleteGlassPricing)
}

// ListHardwarePricing handles GET /api/hardware-pricing
func ListHardwarePricing(c *gin.Context) {
	handleList(c, "list hardware pricing", pricingService().ListHardwarePricing)
}

// CreateHardwarePricing handles POST /api/hardware-pricing
func CreateHardwarePricing(c *gin.Context) {
	handleCreate(c, "create hardware pricing", pricingService().CreateHardwarePricing)
}

// UpdateHardwarePricing handles PUT /api/hardware-pricing/:id
func UpdateHardwarePricing(c *gin.Context) {
	handleUpdate(c, "update hardware pricing", pricingService().UpdateHardwarePricing)
}

// DeleteHardwarePricing handles DELETE /api/hardware-pricing/:id
func DeleteHardwarePricing(c *gin.Context) {
	handleDelete(c, "delete hardware pricing", pricingService().DeleteHardwarePricing)
}

// ListSealPricing handles GET /api/seal-pricing
func ListSealPricing(c *gin.Context) {
	handleList(c, "list seal pricing", pricingService().ListSealPricing)
}

// CreateSealPricing handles POST /api/seal-pricing
func CreateSealPricing(c *gin.Context) {
	handleCreate(c, "create seal pricing", pricingService().CreateSealPricing)
}

// UpdateSealPricing handles PUT /api/seal-pricing/:id
func UpdateSealPricing(c *gin.Context) {
	handleUpdate(c, "update seal pricing", pricingService().UpdateSealPricing)
}

// DeleteSealPricing handles DELETE /api/seal-pricing/:id
func DeleteSealPricing(c *gin.Context) {
	handleDelete(c, "delete seal pricing", pricingService().DeleteSealPricing)
}
