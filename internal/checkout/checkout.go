package checkout

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
)

// Service turns a finished cart into a receipt. It never talks to a payment provider.
type Service struct {
	now   func() time.Time
	newID func() string
}

func NewService() *Service {
	return &Service{now: time.Now, newID: NewReceiptID}
}

// NewReceiptID returns "REC-" followed by eight upper-case hex characters.
func NewReceiptID() string {
	segment, _, _ := strings.Cut(uuid.NewString(), "-")
	return "REC-" + strings.ToUpper(segment)
}

// Submit validates the request and issues its receipt.
func (s *Service) Submit(req models.CheckoutRequest) (models.Receipt, error) {
	if len(req.Items) == 0 {
		return models.Receipt{}, apperr.New(apperr.KindEmptyCartCheckout, apperr.MsgCartEmpty)
	}
	rec := models.Receipt{
		ReceiptID:   s.newID(),
		Items:       append([]models.ReceiptItem(nil), req.Items...),
		TotalPrice:  req.TotalPrice,
		TotalWeight: req.TotalWeight,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Status:      models.StatusSuccess,
	}
	log.Printf("🧾 transaction %s: %d line(s), total %d, weight %dg", rec.ReceiptID, len(rec.Items), rec.TotalPrice, rec.TotalWeight)
	return rec, nil
}

// RequestFromLines snapshots cart lines into a checkout request with derived totals.
func RequestFromLines(lines []models.CartLine) models.CheckoutRequest {
	req := models.CheckoutRequest{Items: make([]models.ReceiptItem, 0, len(lines))}
	for _, l := range lines {
		req.Items = append(req.Items, models.ReceiptItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Weight:   l.Weight,
		})
		req.TotalPrice += l.Subtotal()
		req.TotalWeight += l.LineWeight()
	}
	return req
}
