package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
)

type addItemInput struct {
	ProductID string `json:"productId"`
	Barcode   string `json:"barcode"`
}

type quantityInput struct {
	Delta int `json:"delta" binding:"required"`
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).Cart.View())
}

// POST /api/cart/items
func (h *Handler) AddCartItem(c *gin.Context) {
	var input addItemInput
	if err := c.ShouldBindJSON(&input); err != nil || (input.ProductID == "" && input.Barcode == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId or barcode is required"})
		return
	}

	var (
		product models.Product
		ok      bool
	)
	if input.ProductID != "" {
		product, ok = h.Catalog.ByID(input.ProductID)
	} else {
		product, ok = h.Catalog.Lookup(input.Barcode)
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	store := middleware.CurrentSession(c).Cart
	store.Add(product)
	c.JSON(http.StatusOK, store.View())
}

// PATCH /api/cart/items/:id
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input quantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta is required"})
		return
	}
	store := middleware.CurrentSession(c).Cart
	store.UpdateQuantity(c.Param("id"), input.Delta)
	c.JSON(http.StatusOK, store.View())
}

// DELETE /api/cart/items/:id
func (h *Handler) RemoveCartItem(c *gin.Context) {
	store := middleware.CurrentSession(c).Cart
	store.Remove(c.Param("id"))
	c.JSON(http.StatusOK, store.View())
}

// DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	store := middleware.CurrentSession(c).Cart
	store.Clear()
	c.JSON(http.StatusOK, store.View())
}
