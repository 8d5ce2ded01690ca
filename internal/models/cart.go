package models

// CartLine is a product with the quantity picked by the customer.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is the price of the line.
func (l CartLine) Subtotal() int {
	return l.Price * l.Quantity
}

// LineWeight is the weight of the line in grams.
func (l CartLine) LineWeight() int {
	return l.Weight * l.Quantity
}

// CartView is the cart as returned to clients, totals included.
type CartView struct {
	Items       []CartLine `json:"items"`
	TotalPrice  int        `json:"totalPrice"`
	TotalWeight int        `json:"totalWeight"`
	Count       int        `json:"count"`
}
