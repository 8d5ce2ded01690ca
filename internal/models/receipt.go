package models

const StatusSuccess = "SUCCESS"

type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
	Weight   int    `json:"weight,omitempty"`
}

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Items       []ReceiptItem `json:"items"`
	TotalPrice  int           `json:"totalPrice"`
	TotalWeight int           `json:"totalWeight"`
}

// Receipt is created once per completed checkout and never changed afterwards.
type Receipt struct {
	ReceiptID   string        `json:"receiptId"`
	Items       []ReceiptItem `json:"items"`
	TotalPrice  int           `json:"totalPrice"`
	TotalWeight int           `json:"totalWeight"`
	Timestamp   string        `json:"timestamp"`
	Status      string        `json:"status"`
}

// OrderSummary is one row of the customer's order history.
type OrderSummary struct {
	ReceiptID string `json:"id"`
	Timestamp string `json:"timestamp"`
	Items     int    `json:"items"`
	Total     int    `json:"total"`
	Status    string `json:"status"`
}

// Summary condenses a receipt for the history list.
func (r Receipt) Summary() OrderSummary {
	count := 0
	for _, item := range r.Items {
		count += item.Quantity
	}
	return OrderSummary{
		ReceiptID: r.ReceiptID,
		Timestamp: r.Timestamp,
		Items:     count,
		Total:     r.TotalPrice,
		Status:    r.Status,
	}
}
