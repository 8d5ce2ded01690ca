package models

// Product is an immutable catalog entry. Price is in whole currency units, Weight in grams.
type Product struct {
	ID      string `json:"id"`
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
	Weight  int    `json:"weight"`
	Image   string `json:"image"`
	Stock   int    `json:"stock"`
}
