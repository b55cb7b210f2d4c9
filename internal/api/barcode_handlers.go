package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/services"
)

// BarcodeHandlers contains standalone barcode tooling handlers
type BarcodeHandlers struct {
	barcodeService *services.BarcodeService
}

// NewBarcodeHandlers creates new barcode handlers
func NewBarcodeHandlers(barcodeService *services.BarcodeService) *BarcodeHandlers {
	return &BarcodeHandlers{barcodeService: barcodeService}
}

// NextBarcode allocates the next EAN-13 code without binding it to a
// product, for pre-printed label runs
func (h *BarcodeHandlers) NextBarcode(c *gin.Context) {
	userID := c.GetString("userID")

	code, err := h.barcodeService.NextBarcode(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to allocate barcode",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"barcode": code},
	})
}

// ValidateBarcode checks an EAN-13 code's structure and check digit
func (h *BarcodeHandlers) ValidateBarcode(c *gin.Context) {
	var req struct {
		Barcode string `json:"barcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"barcode": req.Barcode,
			"valid":   services.ValidateEAN13(req.Barcode),
		},
	})
}
