// Package pdfgen renders invoices to fixed-layout A4 PDF documents.
package pdfgen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"github.com/govindalabs/dairypos/internal/domain"
)

const lineHeight = 7.0

// currency renders an amount with the fixed two-decimal invoice format.
// The core fonts carry no rupee glyph, so invoices print the Rs. prefix.
func currency(n float64) string {
	return fmt.Sprintf("Rs. %.2f", n)
}

func qtyString(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// GenPDF lays one bill out on an A4 page: shop header, invoice meta,
// item table, totals block, thank-you line. The table grows downward with
// the item count; pagination is not attempted.
func GenPDF(bill *domain.Bill, shop *domain.ShopProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	y := 14.0

	pdf.SetFont("Arial", "B", 16)
	pdf.Text(14, y, shop.Name)
	y += lineHeight
	pdf.SetFont("Arial", "", 10)
	pdf.Text(14, y, shop.Addr)
	y += lineHeight
	pdf.Text(14, y, "Phone: "+shop.Phone)
	y += lineHeight + 2

	pdf.SetFont("Arial", "", 12)
	pdf.Text(14, y, "Invoice: "+bill.InvoiceNo)
	pdf.Text(140, y, "Date: "+bill.CreatedAt.Format("02/01/2006 15:04"))
	y += lineHeight
	customer := bill.CustomerName
	if customer == "" {
		customer = "-"
	}
	pdf.Text(14, y, "Customer: "+customer)
	status := bill.Status
	if bill.Status == domain.BillStatusPending && bill.DueDate != nil {
		status += " (Due: " + bill.DueDate.Format("02/01/2006") + ")"
	}
	pdf.Text(140, y, "Status: "+status)
	y += lineHeight + 2

	pdf.SetFont("Arial", "", 11)
	pdf.Text(14, y, "Item")
	pdf.Text(120, y, "Qty")
	pdf.Text(140, y, "Price")
	pdf.Text(170, y, "Total")
	y += 2
	pdf.Line(14, y, 195, y)
	y += 6

	for _, it := range bill.Items {
		pdf.Text(14, y, it.Name)
		pdf.Text(120, y, qtyString(it.Qty))
		pdf.Text(140, y, currency(it.Price))
		pdf.Text(170, y, currency(it.Total))
		y += 6
	}

	y += 2
	pdf.Line(120, y, 195, y)
	y += 6
	pdf.SetFont("Arial", "", 12)
	pdf.Text(140, y, "Subtotal:")
	pdf.Text(170, y, currency(bill.Subtotal))
	y += lineHeight
	pdf.Text(140, y, "Discount:")
	pdf.Text(170, y, currency(bill.Discount))
	y += lineHeight
	pdf.Text(140, y, "Grand Total:")
	pdf.Text(170, y, currency(bill.Total))
	y += lineHeight + 2

	pdf.SetFont("Arial", "", 10)
	pdf.Text(14, y, "Thank you for your purchase!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}
