package cash

import (
	"strings"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
)

// MockOrders answers every customer code with the same demo order.
type MockOrders struct{}

func (MockOrders) OrderFor(customerCode string) (models.CashOrder, error) {
	code := strings.TrimSpace(customerCode)
	if code == "" {
		return models.CashOrder{}, apperr.New(apperr.KindLookupNotFound, "Customer code not recognized")
	}
	return models.CashOrder{
		CustomerID:   code,
		CustomerName: "Rahul Sharma",
		Items: []models.OrderItem{
			{Name: "Classic Milk Chocolate", Qty: 2, Price: 90},
			{Name: "Organic Green Tea", Qty: 1, Price: 250},
		},
		Total:  340,
		Status: models.OrderPendingCash,
	}, nil
}
