package models

// Cash order statuses as seen by the admin terminal.
const (
	OrderPendingCash = "PENDING_CASH"
	OrderSuccess     = "SUCCESS"
)

type OrderItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
}

// CashOrder is the order shown to the cashier after scanning a customer's QR code.
type CashOrder struct {
	CustomerID   string      `json:"id"`
	CustomerName string      `json:"name"`
	Items        []OrderItem `json:"items"`
	Total        int         `json:"total"`
	Status       string      `json:"status"`
}

// DashboardStats feeds the admin dashboard cards.
type DashboardStats struct {
	TodaySales  int64 `json:"todaySales"`
	PendingCash int64 `json:"pendingCash"`
	TotalOrders int64 `json:"totalOrders"`
	// RecentOrders is newest first.
	RecentOrders []OrderSummary `json:"recentOrders"`
}
