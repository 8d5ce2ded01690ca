package receipt

import (
	"context"
	"time"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/workflow/exitcheck"
)

// Expectations answers the security gate from the ledger. Unknown ids fall back to the
// demo bag unless Strict is set.
type Expectations struct {
	Ledger   *Ledger
	Strict   bool
	Fallback exitcheck.ExpectationSource
	Timeout  time.Duration
}

func (e Expectations) Expect(receiptID string) (models.Expectation, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rec, ok, err := e.Ledger.Get(ctx, receiptID)
	if err != nil {
		return models.Expectation{}, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err)
	}
	if ok {
		return FromReceipt(rec), nil
	}
	if e.Strict || e.Fallback == nil {
		return models.Expectation{}, apperr.New(apperr.KindLookupNotFound, apperr.MsgReceiptNotFound)
	}
	return e.Fallback.Expect(receiptID)
}

// FromReceipt derives what the bag should contain from a stored receipt.
func FromReceipt(rec models.Receipt) models.Expectation {
	exp := models.Expectation{
		ReceiptID:      rec.ReceiptID,
		ExpectedWeight: rec.TotalWeight,
		TotalPrice:     rec.TotalPrice,
		Items:          make([]models.ExpectedItem, 0, len(rec.Items)),
	}
	for _, item := range rec.Items {
		exp.Items = append(exp.Items, models.ExpectedItem{Name: item.Name, Quantity: item.Quantity})
	}
	return exp
}
