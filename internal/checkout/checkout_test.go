package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/catalog"
	"scanpay_back_end/internal/models"
)

var receiptIDPattern = regexp.MustCompile(`^REC-[0-9A-F]{8}$`)

func TestNewReceiptIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewReceiptID()
		assert.Regexp(t, receiptIDPattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestSubmitEmptyCart(t *testing.T) {
	s := NewService()
	_, err := s.Submit(models.CheckoutRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyCartCheckout, apperr.KindOf(err))
	assert.Equal(t, apperr.MsgCartEmpty, apperr.Message(err))
}

func TestSubmitIssuesReceipt(t *testing.T) {
	s := &Service{
		now:   func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) },
		newID: func() string { return "REC-7F3A9C21" },
	}
	req := models.CheckoutRequest{
		Items:       []models.ReceiptItem{{Name: "Classic Milk Chocolate", Quantity: 2, Price: 45}},
		TotalPrice:  90,
		TotalWeight: 200,
	}

	rec, err := s.Submit(req)
	require.NoError(t, err)
	assert.Equal(t, "REC-7F3A9C21", rec.ReceiptID)
	assert.Equal(t, "2024-05-01T10:30:00Z", rec.Timestamp)
	assert.Equal(t, models.StatusSuccess, rec.Status)
	assert.Equal(t, 90, rec.TotalPrice)
	assert.Equal(t, 200, rec.TotalWeight)
	assert.Equal(t, req.Items, rec.Items)
}

func TestRequestFromLines(t *testing.T) {
	cat := catalog.Default()
	store := cart.NewStore()
	choc, _ := cat.Lookup("8901234567890")
	tea, _ := cat.Lookup("8901234567891")
	store.Add(choc)
	store.Add(choc)
	store.Add(tea)

	req := RequestFromLines(store.Lines())
	assert.Equal(t, 340, req.TotalPrice)
	assert.Equal(t, 450, req.TotalWeight)
	require.Len(t, req.Items, 2)
	assert.Equal(t, models.ReceiptItem{Name: "Classic Milk Chocolate", Quantity: 2, Price: 45, Weight: 100}, req.Items[0])
}
