package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
	"stockive-backend/internal/storectx"
)

// ProductHandlers contains product catalog handlers
type ProductHandlers struct {
	productService *services.ProductService
	storeService   *services.StoreService
	barcodeService *services.BarcodeService
	userService    *services.UserService
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productService *services.ProductService, storeService *services.StoreService, barcodeService *services.BarcodeService, userService *services.UserService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		storeService:   storeService,
		barcodeService: barcodeService,
		userService:    userService,
	}
}

// CreateProduct creates a new product
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.ProductCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.CreateProduct(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// GetProducts lists products with optional filters. Every product's
// store name is resolved through the display fallback chain.
func (h *ProductHandlers) GetProducts(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filters := services.ProductFilters{
		Category: c.Query("category"),
		StoreRef: c.Query("store"),
		Search:   c.Query("search"),
		Supplier: c.Query("supplier"),
	}

	products, err := h.productService.GetProducts(userID, filters, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch products",
		})
		return
	}

	h.decorate(userID, products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
		"meta": gin.H{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetProduct fetches one product
func (h *ProductHandlers) GetProduct(c *gin.Context) {
	userID := c.GetString("userID")

	product, err := h.productService.GetProduct(c.Param("id"), userID)
	if err != nil {
		h.productError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// GetLowStockProducts lists products at or below their stock threshold
func (h *ProductHandlers) GetLowStockProducts(c *gin.Context) {
	userID := c.GetString("userID")

	products, err := h.productService.GetLowStockProducts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch low stock products",
		})
		return
	}

	h.decorate(userID, products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetExpiringProducts lists products inside the expiry warning window
func (h *ProductHandlers) GetExpiringProducts(c *gin.Context) {
	userID := c.GetString("userID")

	products, err := h.productService.GetExpiringProducts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch expiring products",
		})
		return
	}

	h.decorate(userID, products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetClearanceProducts lists in-stock products near expiry, the
// candidates for markdown
func (h *ProductHandlers) GetClearanceProducts(c *gin.Context) {
	userID := c.GetString("userID")

	products, err := h.productService.GetClearanceProducts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch clearance products",
		})
		return
	}

	h.decorate(userID, products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// UpdateProduct updates a product
func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.UpdateProduct(c.Param("id"), userID, &req)
	if err != nil {
		h.productError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct deletes a product
func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.productService.DeleteProduct(c.Param("id"), userID); err != nil {
		h.productError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

// ScanBarcode looks a product up by barcode, the scanner flow
func (h *ProductHandlers) ScanBarcode(c *gin.Context) {
	userID := c.GetString("userID")

	code := c.Param("code")
	if !services.ValidateEAN13(code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid EAN-13 barcode",
		})
		return
	}

	product, err := h.productService.GetProductByBarcode(code, userID)
	if err != nil {
		h.productError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// AssignBarcode allocates a fresh EAN-13 code for a product
func (h *ProductHandlers) AssignBarcode(c *gin.Context) {
	userID := c.GetString("userID")

	product, err := h.productService.GetProduct(c.Param("id"), userID)
	if err != nil {
		h.productError(c, err)
		return
	}

	if err := h.barcodeService.AssignBarcode(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to assign barcode",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// GetProductTicket builds the printable shelf ticket payload for a
// product, with the store name resolved for display
func (h *ProductHandlers) GetProductTicket(c *gin.Context) {
	userID := c.GetString("userID")

	product, err := h.productService.GetProduct(c.Param("id"), userID)
	if err != nil {
		h.productError(c, err)
		return
	}

	ctx, err := h.storeContext(c, userID)
	if err != nil {
		return
	}

	ticket := h.barcodeService.BuildTicket(product, ctx)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ticket,
	})
}

// decorate resolves display store names for a product list. Store
// context lookup failures are tolerated: the list renders without
// store names rather than failing the whole request.
func (h *ProductHandlers) decorate(userID string, products []models.Product) {
	if len(products) == 0 {
		return
	}
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return
	}
	ctx, err := h.storeService.GetStoreContext(user)
	if err != nil {
		return
	}
	h.productService.DecorateStoreNames(products, ctx)
}

func (h *ProductHandlers) storeContext(c *gin.Context, userID string) (ctx storectx.StoreContext, err error) {
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "User not found",
		})
		return ctx, err
	}

	ctx, err = h.storeService.GetStoreContext(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to resolve store context",
		})
		return ctx, err
	}
	return ctx, nil
}

func (h *ProductHandlers) productError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Product not found",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
