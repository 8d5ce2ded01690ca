package utils

import (
	"bytes"
	"html/template"

	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/models"
)

var receiptEmailTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"mul": func(a, b int) int { return a * b },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Your receipt</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thanks for shopping at {{.Shop.Name}}</h2>
		<p>Receipt <strong>{{.Receipt.ReceiptID}}</strong> · {{.Receipt.Timestamp}}</p>
		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 8px; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: right; border: 1px solid #ddd;">Amount</th>
				</tr>
			</thead>
			<tbody>
			{{range .Receipt.Items}}
				<tr>
					<td style="padding: 8px; border: 1px solid #ddd;">{{.Name}}</td>
					<td style="padding: 8px; text-align: center; border: 1px solid #ddd;">{{.Quantity}}</td>
					<td style="padding: 8px; text-align: right; border: 1px solid #ddd;">₹{{mul .Price .Quantity}}</td>
				</tr>
			{{end}}
			</tbody>
			<tfoot>
				<tr>
					<td colspan="2" style="padding: 8px; text-align: right; font-weight: bold;">Total</td>
					<td style="padding: 8px; text-align: right; font-weight: bold;">₹{{.Receipt.TotalPrice}}</td>
				</tr>
			</tfoot>
		</table>
		<p style="color: #555;">Your invoice is attached. Show the QR code on it at the exit gate.</p>
	</div>
</body>
</html>`))

// ReceiptEmailHTML renders the receipt e-mail body.
func ReceiptEmailHTML(shop config.ShopConfig, rec models.Receipt) (string, error) {
	var buf bytes.Buffer
	err := receiptEmailTmpl.Execute(&buf, struct {
		Shop    config.ShopConfig
		Receipt models.Receipt
	}{shop, rec})
	return buf.String(), err
}
