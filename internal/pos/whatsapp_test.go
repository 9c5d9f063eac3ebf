package pos

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindalabs/dairypos/internal/domain"
)

func TestWaLinkStripsNonDigits(t *testing.T) {
	link := WaLink("+91 98000-00001", "hello")
	assert.Equal(t, "https://wa.me/919800000001?text=hello", link)
}

func TestWaLinkEscapesMessage(t *testing.T) {
	link := WaLink("919800000001", "Total: ₹ 80.00\nThanks")
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Total: ₹ 80.00\nThanks", parsed.Query().Get("text"))
}

func TestInvoiceLink(t *testing.T) {
	assert.Equal(t, "http://localhost:1880/invoice/GD-2403-0001",
		InvoiceLink("http://localhost:1880/", "GD-2403-0001"))
}

func sampleBill() *domain.Bill {
	due := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Bill{
		InvoiceNo:     "GD-2608-0042",
		CustomerName:  "Asha",
		CustomerPhone: "+91 98000 00001",
		Subtotal:      90,
		Discount:      10,
		Total:         80,
		Status:        domain.BillStatusPending,
		DueDate:       &due,
		Items: []domain.BillItem{
			{Name: "Fresh Milk", Qty: 2, Total: 120},
			{Name: "Fresh Paneer (250g)", Qty: 1, Total: 112.5},
		},
	}
}

func TestInvoiceMessageFormat(t *testing.T) {
	msg := InvoiceMessage(sampleBill(), "http://localhost:1880")
	lines := strings.Split(msg, "\n")

	assert.Equal(t, "Invoice GD-2608-0042", lines[0])
	assert.Equal(t, "Customer: Asha (+91 98000 00001)", lines[1])
	assert.Equal(t, "Total: ₹ 80.00", lines[2])
	assert.Equal(t, "Status: Pending (Due: 15/09/2026)", lines[3])
	assert.Contains(t, msg, "- Fresh Milk x 2 = ₹ 120.00")
	assert.Contains(t, msg, "- Fresh Paneer (250g) x 1 = ₹ 112.50")
	assert.Contains(t, msg, "View Invoice: http://localhost:1880/invoice/GD-2608-0042")
	assert.Contains(t, msg, "Attach the downloaded PDF")
}

func TestReminderMessageFormat(t *testing.T) {
	msg := ReminderMessage(sampleBill(), "http://localhost:1880")
	assert.True(t, strings.HasPrefix(msg, "Payment reminder for invoice GD-2608-0042"))
	assert.Contains(t, msg, "Amount due: ₹ 80.00")
	assert.NotContains(t, msg, "Attach the downloaded PDF")
}

func TestMarketingRecipients(t *testing.T) {
	all := []domain.Customer{
		{Name: "A", Phone: "111", General: true},
		{Name: "B", Phone: "222", Religion: "Hindu"},
		{Name: "C", Phone: "", General: true},
		{Name: "D", Phone: "444", Religion: "Jain", General: true},
	}

	general := MarketingRecipients(all, MarketingSegmentGeneral)
	require.Len(t, general, 2)
	assert.Equal(t, "A", general[0].Name)
	assert.Equal(t, "D", general[1].Name)

	hindus := MarketingRecipients(all, "Hindu")
	require.Len(t, hindus, 1)
	assert.Equal(t, "B", hindus[0].Name)

	assert.Empty(t, MarketingRecipients(all, "Unknown"))
}
