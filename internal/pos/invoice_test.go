package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenInvoiceNumber(t *testing.T) {
	march := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "GD-2403-0001", GenInvoiceNumber(march, 0))
	assert.Equal(t, "GD-2403-0042", GenInvoiceNumber(march, 41))

	dec := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "GD-2512-0100", GenInvoiceNumber(dec, 99))
}

func TestGenInvoiceNumberSequenceSpansMonths(t *testing.T) {
	// the sequence counts all bills ever, not bills within the month
	jan := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "GD-2601-0010", GenInvoiceNumber(jan, 9))
	assert.Equal(t, "GD-2602-0011", GenInvoiceNumber(feb, 10))
}
