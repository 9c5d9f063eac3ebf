package pos

import (
	"fmt"
	"time"
)

// GenInvoiceNumber produces the human-facing invoice identifier, format
// GD-YYMM-SSSS. The sequence suffix is the total bill count plus one and is
// deliberately NOT reset per month: the month prefix can therefore disagree
// with sequence continuity across month boundaries. This mirrors the
// longstanding numbering of issued invoices; do not change it without an
// explicit renumbering decision.
func GenInvoiceNumber(now time.Time, existingBills int64) string {
	return fmt.Sprintf("GD-%02d%02d-%04d", now.Year()%100, int(now.Month()), existingBills+1)
}
