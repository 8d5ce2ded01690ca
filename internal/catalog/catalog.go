package catalog

import (
	"strings"

	"scanpay_back_end/internal/models"
)

// Catalog is a read-only product list keyed by barcode.
type Catalog struct {
	products  []models.Product
	byBarcode map[string]models.Product
	byID      map[string]models.Product
}

// New builds a catalog. Later entries never replace an earlier barcode.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		byBarcode: make(map[string]models.Product, len(products)),
		byID:      make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byBarcode[p.Barcode]; dup {
			continue
		}
		c.products = append(c.products, p)
		c.byBarcode[p.Barcode] = p
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the demo store catalog.
func Default() *Catalog {
	return New(seed)
}

// Lookup finds a product by exact barcode.
func (c *Catalog) Lookup(barcode string) (models.Product, bool) {
	p, ok := c.byBarcode[barcode]
	return p, ok
}

func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns the products in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search matches query against names (case-insensitive) and barcodes.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	out := []models.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(p.Barcode, q) {
			out = append(out, p)
		}
	}
	return out
}
