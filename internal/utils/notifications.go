package utils

import (
	"context"
	"log"
	"time"

	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/models"
)

// ReceiptNotifier e-mails receipts to customers who opted in.
type ReceiptNotifier interface {
	NotifyReceipt(to string, rec models.Receipt)
}

// MailReceiptNotifier renders the invoice and sends it in the background.
type MailReceiptNotifier struct {
	Mailer *Mailer
	Shop   config.ShopConfig
}

func (n MailReceiptNotifier) NotifyReceipt(to string, rec models.Receipt) {
	if !n.Mailer.Enabled() || to == "" {
		return
	}
	go func() {
		if err := n.send(to, rec); err != nil {
			log.Printf("❌ receipt e-mail for %s failed: %v", rec.ReceiptID, err)
			return
		}
		log.Printf("📧 receipt %s sent to %s", rec.ReceiptID, to)
	}()
}

func (n MailReceiptNotifier) send(to string, rec models.Receipt) error {
	body, err := ReceiptEmailHTML(n.Shop, rec)
	if err != nil {
		return err
	}
	pdf, err := RenderInvoicePDF(n.Shop, rec)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return n.Mailer.Send(ctx, to, "Your receipt "+rec.ReceiptID, body, "invoice-"+rec.ReceiptID+".pdf", pdf)
}
