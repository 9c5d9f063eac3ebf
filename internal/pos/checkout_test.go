package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/govindalabs/dairypos/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// a named shared-cache DSN keeps the pool's connections on one database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newTestCheckout(t *testing.T, db *gorm.DB, render InvoiceRenderer) *CheckoutService {
	t.Helper()
	return NewCheckoutService(
		NewGormProductRepository(db),
		NewGormCustomerRepository(db),
		NewGormBillRepository(db),
		NewGormShopRepository(db),
		NewCartStore(),
		render,
		nil,
		"http://localhost:1880",
	)
}

func TestCheckoutFixedPriceFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	ctx := context.Background()
	const owner = int64(7)

	p := domain.Product{ID: 100, OwnerID: owner, Name: "Milk Packet (500ml)", Price: 30, Qty: 10}
	require.NoError(t, db.Create(&p).Error)

	svc.Carts().Put(owner, Cart{}.AddFixed(p, 3))

	result, err := svc.Checkout(ctx, owner, CheckoutInput{
		CustomerName:  "Asha",
		CustomerPhone: "+91 98000 00001",
		Discount:      "10",
	})
	require.NoError(t, err)

	bill := result.Bill
	assert.InDelta(t, 90, bill.Subtotal, 1e-9)
	assert.InDelta(t, 10, bill.Discount, 1e-9)
	assert.InDelta(t, 80, bill.Total, 1e-9)
	assert.Equal(t, domain.BillStatusPaid, bill.Status)
	assert.Nil(t, bill.DueDate)
	require.Len(t, bill.Items, 1)
	assert.InDelta(t, 3, bill.Items[0].Qty, 1e-9)

	assert.Equal(t, GenInvoiceNumber(time.Now(), 0), bill.InvoiceNo)

	var stored domain.Product
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	assert.InDelta(t, 7, stored.Qty, 1e-9)

	assert.Len(t, svc.Carts().Get(owner), 0)
	assert.Contains(t, result.Message, bill.InvoiceNo)
	assert.Contains(t, result.WaLink, "https://wa.me/919800000001")
}

func TestCheckoutUnitBasedStockDecrement(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	ctx := context.Background()
	const owner = int64(7)

	p := domain.Product{ID: 101, OwnerID: owner, Name: "Fresh Paneer",
		UnitType: domain.UnitTypeKg, UnitPrice: 450, Qty: 30}
	require.NoError(t, db.Create(&p).Error)

	cart, err := Cart{}.AddUnit(p, ParseSmartQuantity("250gm", p.UnitType))
	require.NoError(t, err)
	svc.Carts().Put(owner, cart)

	result, err := svc.Checkout(ctx, owner, CheckoutInput{})
	require.NoError(t, err)
	assert.InDelta(t, 112.5, result.Bill.Total, 1e-9)
	assert.Equal(t, WalkInName, result.Bill.CustomerName)

	var stored domain.Product
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	assert.InDelta(t, 29.75, stored.Qty, 1e-9)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)

	_, err := svc.Checkout(context.Background(), 7, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDiscountNeverBelowZero(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	const owner = int64(7)

	p := domain.Product{ID: 102, OwnerID: owner, Name: "Fresh Milk", Price: 60, Qty: 5}
	require.NoError(t, db.Create(&p).Error)
	svc.Carts().Put(owner, Cart{}.AddFixed(p, 1))

	result, err := svc.Checkout(context.Background(), owner, CheckoutInput{Discount: "500"})
	require.NoError(t, err)
	assert.InDelta(t, 0, result.Bill.Total, 1e-9)
}

func TestCheckoutPendingDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	const owner = int64(7)

	p := domain.Product{ID: 103, OwnerID: owner, Name: "Pure Desi Ghee",
		UnitType: domain.UnitTypeKg, UnitPrice: 900, Qty: 20}
	require.NoError(t, db.Create(&p).Error)
	cart, err := Cart{}.AddUnit(p, ParseSmartQuantity("1kg", p.UnitType))
	require.NoError(t, err)
	svc.Carts().Put(owner, cart)

	result, err := svc.Checkout(context.Background(), owner, CheckoutInput{
		Status:  domain.BillStatusPending,
		DueDate: "2026-09-15",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Bill.DueDate)
	assert.Equal(t, 15, result.Bill.DueDate.Day())
	assert.Equal(t, time.September, result.Bill.DueDate.Month())
}

func TestCheckoutInvoiceSequenceGrows(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	ctx := context.Background()
	const owner = int64(7)

	p := domain.Product{ID: 104, OwnerID: owner, Name: "Fresh Milk", Price: 60, Qty: 100}
	require.NoError(t, db.Create(&p).Error)

	svc.Carts().Put(owner, Cart{}.AddFixed(p, 1))
	first, err := svc.Checkout(ctx, owner, CheckoutInput{})
	require.NoError(t, err)

	svc.Carts().Put(owner, Cart{}.AddFixed(p, 1))
	second, err := svc.Checkout(ctx, owner, CheckoutInput{})
	require.NoError(t, err)

	assert.Equal(t, GenInvoiceNumber(time.Now(), 0), first.Bill.InvoiceNo)
	assert.Equal(t, GenInvoiceNumber(time.Now(), 1), second.Bill.InvoiceNo)
}

func TestCheckoutRendersPdfWhenInjected(t *testing.T) {
	db := newTestDB(t)
	fake := []byte("%PDF-fake")
	svc := newTestCheckout(t, db, func(b *domain.Bill, shop *domain.ShopProfile) ([]byte, error) {
		return fake, nil
	})
	const owner = int64(7)

	p := domain.Product{ID: 105, OwnerID: owner, Name: "Fresh Milk", Price: 60, Qty: 5}
	require.NoError(t, db.Create(&p).Error)
	svc.Carts().Put(owner, Cart{}.AddFixed(p, 1))

	result, err := svc.Checkout(context.Background(), owner, CheckoutInput{})
	require.NoError(t, err)
	assert.Equal(t, fake, result.PDF)
}

func TestEnsureCustomerDeduplicatesByPhone(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	ctx := context.Background()
	const owner = int64(7)

	first, err := svc.EnsureCustomer(ctx, owner, "Asha", "+91 98000 00001", "", true)
	require.NoError(t, err)

	// the record on file wins over incoming details
	second, err := svc.EnsureCustomer(ctx, owner, "Someone Else", "+91 98000 00001", "Hindu", false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha", second.Name)

	var count int64
	db.Model(&domain.Customer{}).Where("owner_id = ?", owner).Count(&count)
	assert.EqualValues(t, 1, count)
}

// flakyCustomerRepo fails every phone lookup with a transient-style error.
type flakyCustomerRepo struct {
	CustomerRepository
}

func (flakyCustomerRepo) GetByPhone(ctx context.Context, owner int64, phone string) (*domain.Customer, error) {
	return nil, fmt.Errorf("connection reset by peer")
}

func TestEnsureCustomerLookupFailureFailsCheckout(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(
		NewGormProductRepository(db),
		flakyCustomerRepo{NewGormCustomerRepository(db)},
		NewGormBillRepository(db),
		NewGormShopRepository(db),
		NewCartStore(),
		nil,
		nil,
		"http://localhost:1880",
	)
	ctx := context.Background()
	const owner = int64(7)

	// a lookup failure is not a not-found: no customer may be created
	_, err := svc.EnsureCustomer(ctx, owner, "Asha", "+91 98000 00001", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")

	var count int64
	db.Model(&domain.Customer{}).Where("owner_id = ?", owner).Count(&count)
	assert.EqualValues(t, 0, count)

	// the whole checkout fails before any bill or stock write
	p := domain.Product{ID: 106, OwnerID: owner, Name: "Fresh Milk", Price: 60, Qty: 5}
	require.NoError(t, db.Create(&p).Error)
	svc.Carts().Put(owner, Cart{}.AddFixed(p, 1))

	_, err = svc.Checkout(ctx, owner, CheckoutInput{
		CustomerName:  "Asha",
		CustomerPhone: "+91 98000 00001",
	})
	require.Error(t, err)

	var billCount int64
	db.Model(&domain.Bill{}).Where("owner_id = ?", owner).Count(&billCount)
	assert.EqualValues(t, 0, billCount)

	var stored domain.Product
	require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
	assert.InDelta(t, 5, stored.Qty, 1e-9)
}

func TestEnsureCustomerEmptyPhoneAlwaysCreates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCheckout(t, db, nil)
	ctx := context.Background()
	const owner = int64(7)

	a, err := svc.EnsureCustomer(ctx, owner, "Walk-in", "", "", false)
	require.NoError(t, err)
	b, err := svc.EnsureCustomer(ctx, owner, "Walk-in", "", "", false)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
