package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

// PurchaseOrderHandlers contains purchase order handlers
type PurchaseOrderHandlers struct {
	purchaseOrderService *services.PurchaseOrderService
}

// NewPurchaseOrderHandlers creates new purchase order handlers
func NewPurchaseOrderHandlers(purchaseOrderService *services.PurchaseOrderService) *PurchaseOrderHandlers {
	return &PurchaseOrderHandlers{purchaseOrderService: purchaseOrderService}
}

// CreatePurchaseOrder creates a draft order with its line items
func (h *PurchaseOrderHandlers) CreatePurchaseOrder(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.PurchaseOrderCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	order, err := h.purchaseOrderService.CreatePurchaseOrder(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetPurchaseOrders lists orders, optionally filtered by status
func (h *PurchaseOrderHandlers) GetPurchaseOrders(c *gin.Context) {
	userID := c.GetString("userID")
	status := models.PurchaseOrderStatus(c.Query("status"))

	orders, err := h.purchaseOrderService.GetPurchaseOrdersByOwner(userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch purchase orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetPurchaseOrder fetches one order with its line items
func (h *PurchaseOrderHandlers) GetPurchaseOrder(c *gin.Context) {
	userID := c.GetString("userID")

	order, err := h.purchaseOrderService.GetPurchaseOrder(c.Param("id"), userID)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// SubmitPurchaseOrder moves a draft order to submitted
func (h *PurchaseOrderHandlers) SubmitPurchaseOrder(c *gin.Context) {
	userID := c.GetString("userID")

	order, err := h.purchaseOrderService.SubmitPurchaseOrder(c.Param("id"), userID)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ReceivePurchaseOrder marks a submitted order received and restocks
// every line item
func (h *PurchaseOrderHandlers) ReceivePurchaseOrder(c *gin.Context) {
	userID := c.GetString("userID")

	order, err := h.purchaseOrderService.ReceivePurchaseOrder(c.Param("id"), userID)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelPurchaseOrder cancels a draft or submitted order
func (h *PurchaseOrderHandlers) CancelPurchaseOrder(c *gin.Context) {
	userID := c.GetString("userID")

	order, err := h.purchaseOrderService.CancelPurchaseOrder(c.Param("id"), userID)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetPurchasingReport aggregates received spend per supplier
func (h *PurchaseOrderHandlers) GetPurchasingReport(c *gin.Context) {
	userID := c.GetString("userID")

	report, err := h.purchaseOrderService.GetPurchasingReport(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to build purchasing report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

func (h *PurchaseOrderHandlers) orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPurchaseOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Purchase order not found",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	}
}
