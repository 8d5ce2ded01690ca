package utils

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/models"
)

// ExitPassQR encodes a receipt id as the PNG shown at the exit gate.
func ExitPassQR(receiptID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(receiptID, qrcode.Medium, size)
}

// RenderInvoicePDF prints the receipt with the shop header and the exit-pass QR.
func RenderInvoicePDF(shop config.ShopConfig, rec models.Receipt) ([]byte, error) {
	qrPNG, err := ExitPassQR(rec.ReceiptID, 256)
	if err != nil {
		return nil, fmt.Errorf("exit pass QR: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+rec.ReceiptID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, shop.Name)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	if shop.Address != "" {
		pdf.Cell(0, 6, shop.Address)
		pdf.Ln(5)
	}
	if shop.Phone != "" {
		pdf.Cell(0, 6, "Tel: "+shop.Phone)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Tax Invoice")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Receipt: "+rec.ReceiptID)
	pdf.Ln(6)
	pdf.Cell(0, 7, "Date: "+rec.Timestamp)
	pdf.Ln(6)
	pdf.Cell(0, 7, "Status: "+rec.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range rec.Items {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, formatRupees(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, formatRupees(item.Price*item.Quantity), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, formatRupees(rec.TotalPrice), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(150, 7, "Total weight", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%d g", rec.TotalWeight), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.Cell(0, 6, "Show this code at the exit gate.")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("exitpass", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("exitpass", 150, pdf.GetY()+4, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Core PDF fonts have no rupee glyph.
func formatRupees(amount int) string {
	return fmt.Sprintf("Rs. %d", amount)
}
