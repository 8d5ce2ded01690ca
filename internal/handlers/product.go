package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/products?barcode=
func (h *Handler) LookupProduct(c *gin.Context) {
	barcode := c.Query("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barcode is required"})
		return
	}
	product, ok := h.Catalog.Lookup(barcode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /api/catalog?q=
func (h *Handler) SearchCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Search(c.Query("q")))
}
