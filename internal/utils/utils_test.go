package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/models"
)

func sampleReceipt() models.Receipt {
	return models.Receipt{
		ReceiptID: "REC-7F3A9C21",
		Items: []models.ReceiptItem{
			{Name: "Classic Milk Chocolate", Quantity: 2, Price: 45},
			{Name: "Organic Green Tea", Quantity: 1, Price: 250},
		},
		TotalPrice:  340,
		TotalWeight: 450,
		Timestamp:   "2024-05-01T10:30:00Z",
		Status:      models.StatusSuccess,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "sess-1", "a@b.c", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSessionTokenRejected(t *testing.T) {
	token, err := GenerateSessionToken("secret", "sess-1", "a@b.c", models.RoleCustomer, time.Hour)
	require.NoError(t, err)
	_, err = ParseSessionToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateSessionToken("secret", "sess-1", "a@b.c", models.RoleCustomer, -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken("secret", expired)
	assert.Error(t, err)
}

func TestExitPassQRIsPNG(t *testing.T) {
	png, err := ExitPassQR("REC-7F3A9C21", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRenderInvoicePDF(t *testing.T) {
	pdf, err := RenderInvoicePDF(config.ShopConfig{Name: "ScanPay Store", Address: "MG Road", Phone: "080 1234"}, sampleReceipt())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestReceiptEmailHTML(t *testing.T) {
	html, err := ReceiptEmailHTML(config.ShopConfig{Name: "ScanPay Store"}, sampleReceipt())
	require.NoError(t, err)
	assert.Contains(t, html, "REC-7F3A9C21")
	assert.Contains(t, html, "Organic Green Tea")
	assert.Contains(t, html, "₹90")
	assert.Contains(t, html, "₹340")
}

func TestBuildMessage(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.example", Port: 587, From: "shop@example.com"})
	require.True(t, m.Enabled())

	msg, err := m.BuildMessage("customer@example.com", "Your receipt", "<p>hi</p>", "invoice.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Your receipt")
	assert.True(t, strings.Contains(out, "invoice.pdf"))
}

func TestMailerDisabled(t *testing.T) {
	var m *Mailer
	assert.False(t, m.Enabled())
	assert.False(t, NewMailer(config.SMTPConfig{}).Enabled())

	// No goroutine, no panic.
	MailReceiptNotifier{Mailer: NewMailer(config.SMTPConfig{})}.NotifyReceipt("a@b.c", sampleReceipt())
}

func TestBuildMessageRejectsBadAddress(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.example", From: "shop@example.com"})
	_, err := m.BuildMessage("not an address", "x", "", "", nil)
	assert.Error(t, err)
}
