package exitcheck

import (
	"strings"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
)

// MockExpectations answers every receipt id with the demo bag.
type MockExpectations struct{}

func (MockExpectations) Expect(receiptID string) (models.Expectation, error) {
	id := strings.TrimSpace(receiptID)
	if id == "" {
		return models.Expectation{}, apperr.New(apperr.KindLookupNotFound, apperr.MsgReceiptUnknown)
	}
	return models.Expectation{
		ReceiptID:      id,
		ExpectedWeight: 450,
		TotalPrice:     340,
		Items: []models.ExpectedItem{
			{Name: "Classic Milk Chocolate", Quantity: 2},
			{Name: "Organic Green Tea", Quantity: 1},
		},
	}, nil
}
