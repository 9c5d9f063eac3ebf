package pdfgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindalabs/dairypos/internal/domain"
)

func TestGenPDF(t *testing.T) {
	bill := &domain.Bill{
		InvoiceNo:    "GD-2608-0001",
		CustomerName: "Asha",
		Subtotal:     90,
		Discount:     10,
		Total:        80,
		Status:       domain.BillStatusPaid,
		CreatedAt:    time.Now(),
		Items: []domain.BillItem{
			{Name: "Fresh Milk", Qty: 2, Price: 60, Total: 120},
			{Name: "Fresh Paneer (250g)", Qty: 1, Price: 112.5, Total: 112.5},
		},
	}
	shop := &domain.ShopProfile{
		Name:  "Govinda Dughdalay",
		Phone: "+91 90000 00000",
		Addr:  "Near Temple Road, Mumbai",
	}

	data, err := GenPDF(bill, shop)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenPDFWalkInWithoutCustomer(t *testing.T) {
	bill := &domain.Bill{
		InvoiceNo: "GD-2608-0002",
		Total:     30,
		Status:    domain.BillStatusPaid,
		CreatedAt: time.Now(),
	}
	data, err := GenPDF(bill, &domain.ShopProfile{Name: "Shop"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
