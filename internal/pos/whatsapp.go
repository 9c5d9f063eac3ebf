package pos

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

// WaLink builds a wa.me deep link that opens a chat with the given phone
// and the message prefilled. The phone is reduced to digits only.
func WaLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		common.DigitsOnly(phone), url.QueryEscape(message))
}

// InvoiceLink is the web-viewable invoice page for a bill.
func InvoiceLink(baseURL, invoiceNo string) string {
	return fmt.Sprintf("%s/invoice/%s", strings.TrimRight(baseURL, "/"), invoiceNo)
}

func billStatusLine(b *domain.Bill) string {
	status := b.Status
	if b.Status == domain.BillStatusPending && b.DueDate != nil {
		status += " (Due: " + b.DueDate.Format("02/01/2006") + ")"
	}
	return status
}

func billCustomerLine(b *domain.Bill) string {
	line := b.CustomerName
	if b.CustomerPhone != "" {
		line += " (" + b.CustomerPhone + ")"
	}
	return line
}

func billItemLines(b *domain.Bill) []string {
	lines := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		lines = append(lines, fmt.Sprintf("- %s x %s = %s",
			it.Name, FormatQuantity(it.Qty, ""), Currency(it.Total)))
	}
	return lines
}

// InvoiceMessage is the share message sent along with a fresh invoice.
func InvoiceMessage(b *domain.Bill, baseURL string) string {
	lines := []string{
		"Invoice " + b.InvoiceNo,
		"Customer: " + billCustomerLine(b),
		"Total: " + Currency(b.Total),
		"Status: " + billStatusLine(b),
		"Items:",
	}
	lines = append(lines, billItemLines(b)...)
	lines = append(lines,
		"",
		"View Invoice: "+InvoiceLink(baseURL, b.InvoiceNo),
		"Note: Attach the downloaded PDF when sending.",
	)
	return strings.Join(lines, "\n")
}

// ReminderMessage is the payment reminder for a pending bill.
func ReminderMessage(b *domain.Bill, baseURL string) string {
	lines := []string{
		"Payment reminder for invoice " + b.InvoiceNo,
		"Customer: " + billCustomerLine(b),
		"Amount due: " + Currency(b.Total),
		"Status: " + billStatusLine(b),
		"Items:",
	}
	lines = append(lines, billItemLines(b)...)
	lines = append(lines,
		"",
		"View Invoice: "+InvoiceLink(baseURL, b.InvoiceNo),
	)
	return strings.Join(lines, "\n")
}

// MarketingSegmentGeneral selects customers with the general opt-in flag.
const MarketingSegmentGeneral = "general"

// MarketingRecipients filters customers for a bulk message segment: the
// "general" segment takes opted-in customers, any other segment value
// matches the religion tag. Customers without a phone are never included.
func MarketingRecipients(customers []domain.Customer, segment string) []domain.Customer {
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Phone == "" {
			continue
		}
		if segment == MarketingSegmentGeneral {
			if c.General {
				out = append(out, c)
			}
			continue
		}
		if c.Religion == segment {
			out = append(out, c)
		}
	}
	return out
}
