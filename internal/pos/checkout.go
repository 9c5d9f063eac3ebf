package pos

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

// ErrEmptyCart aborts a checkout before any side effect happens.
var ErrEmptyCart = errors.New("cart is empty")

// TopicBillCreated is published on the event bus after a successful checkout.
const TopicBillCreated = "pos.bill.created"

// WalkInName labels sales with no customer name supplied.
const WalkInName = "Walk-in"

// InvoiceRenderer turns a bill and shop profile into a printable document.
// It is injected so the PDF step can be mocked or skipped in tests.
type InvoiceRenderer func(b *domain.Bill, shop *domain.ShopProfile) ([]byte, error)

// CheckoutInput is everything the checkout form collects.
type CheckoutInput struct {
	CustomerName  string `json:"customer_name" form:"customer_name"`
	CustomerPhone string `json:"customer_phone" form:"customer_phone"`
	Religion      string `json:"religion" form:"religion"`
	General       bool   `json:"general" form:"general"`
	Status        string `json:"status" form:"status"`
	DueDate       string `json:"due_date" form:"due_date"`
	Discount      string `json:"discount" form:"discount"`
}

// CheckoutResult carries the persisted bill plus the follow-up artifacts.
type CheckoutResult struct {
	Bill    *domain.Bill `json:"bill"`
	PDF     []byte       `json:"-"`
	WaLink  string       `json:"wa_link"`
	Message string       `json:"message"`
}

// CheckoutService turns a non-empty cart into a persisted bill: customer
// resolution, totals, invoice numbering, stock decrement, persistence, then
// the PDF and WhatsApp-link side effects. Persistence is a sequence of
// awaited calls, not one transaction: a failure after bill creation leaves
// the bill on record with stale stock on the remaining products. That risk
// is accepted for a single-terminal shop and is logged, never rolled back.
type CheckoutService struct {
	products  ProductRepository
	customers CustomerRepository
	bills     BillRepository
	shops     ShopRepository
	carts     *CartStore
	render    InvoiceRenderer
	bus       EventBus.Bus
	baseURL   string
}

func NewCheckoutService(
	products ProductRepository,
	customers CustomerRepository,
	bills BillRepository,
	shops ShopRepository,
	carts *CartStore,
	render InvoiceRenderer,
	bus EventBus.Bus,
	baseURL string,
) *CheckoutService {
	return &CheckoutService{
		products:  products,
		customers: customers,
		bills:     bills,
		shops:     shops,
		carts:     carts,
		render:    render,
		bus:       bus,
		baseURL:   baseURL,
	}
}

// Carts exposes the session cart store.
func (s *CheckoutService) Carts() *CartStore {
	return s.carts
}

// EnsureCustomer finds a customer by phone or creates a new record. An
// existing phone match is returned unchanged: the incoming name, religion
// and general flag never overwrite the record on file. Only a definitive
// not-found proceeds to create; any other lookup failure fails the
// operation so a transient error cannot manufacture a duplicate record.
func (s *CheckoutService) EnsureCustomer(ctx context.Context, owner int64, name, phone, religion string, general bool) (*domain.Customer, error) {
	if phone != "" {
		existing, err := s.customers.GetByPhone(ctx, owner, phone)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "lookup customer")
		}
	}
	cust := &domain.Customer{
		ID:       common.UUIDint64(),
		OwnerID:  owner,
		Name:     name,
		Phone:    phone,
		Religion: religion,
		General:  general,
	}
	if err := s.customers.Create(ctx, cust); err != nil {
		return nil, errors.Wrap(err, "create customer")
	}
	return cust, nil
}

func resolveDueDate(status, dueRaw string, now time.Time) *time.Time {
	if status != domain.BillStatusPending {
		return nil
	}
	due := now
	if raw := strings.TrimSpace(dueRaw); raw != "" {
		if parsed, err := dateparse.ParseAny(raw); err == nil {
			due = parsed
		}
	}
	return &due
}

// Checkout runs the whole pipeline for the owner's active cart. On any
// error the caller gets one message; steps already committed stay committed.
func (s *CheckoutService) Checkout(ctx context.Context, owner int64, input CheckoutInput) (*CheckoutResult, error) {
	cart := s.carts.Get(owner)
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = WalkInName
	}
	phone := strings.TrimSpace(input.CustomerPhone)

	cust, err := s.EnsureCustomer(ctx, owner, name, phone, input.Religion, input.General)
	if err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	discount := cast.ToFloat64(input.Discount)
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	count, err := s.bills.Count(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "count bills")
	}
	now := time.Now()
	invoiceNo := GenInvoiceNumber(now, count)

	status := input.Status
	if status == "" {
		status = domain.BillStatusPaid
	}

	bill := &domain.Bill{
		ID:               common.UUIDint64(),
		OwnerID:          owner,
		InvoiceNo:        invoiceNo,
		CustomerID:       cust.ID,
		CustomerName:     cust.Name,
		CustomerPhone:    cust.Phone,
		CustomerReligion: cust.Religion,
		CustomerGeneral:  cust.General,
		Subtotal:         subtotal,
		Discount:         discount,
		Total:            total,
		Status:           status,
		DueDate:          resolveDueDate(status, input.DueDate, now),
	}
	for _, line := range cart {
		bill.Items = append(bill.Items, domain.BillItem{
			ProductID:    line.ProductID,
			Name:         line.Name,
			Price:        line.Price,
			Qty:          float64(line.Qty),
			Total:        line.LineTotal(),
			PurchaseQty:  line.PurchaseQty,
			PurchaseUnit: line.PurchaseUnit,
		})
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, errors.Wrap(err, "create bill")
	}

	// Stock updates follow bill creation as independent writes. A partial
	// failure leaves stale stock on the failed product; surfaced, not
	// compensated.
	for _, line := range cart {
		p, err := s.products.GetByID(ctx, owner, line.ProductID)
		if err != nil {
			zap.L().Error("checkout: product lookup failed after bill creation",
				zap.String("invoice_no", invoiceNo),
				zap.Int64("product_id", line.ProductID),
				zap.Error(err))
			return nil, errors.Wrap(err, "update stock")
		}
		newQty := p.Qty - line.StockDelta()
		if newQty < 0 {
			newQty = 0
		}
		if err := s.products.UpdateStock(ctx, owner, p.ID, newQty); err != nil {
			zap.L().Error("checkout: stock update failed after bill creation",
				zap.String("invoice_no", invoiceNo),
				zap.Int64("product_id", p.ID),
				zap.Error(err))
			return nil, errors.Wrap(err, "update stock")
		}
	}

	s.carts.Clear(owner)

	result := &CheckoutResult{
		Bill:    bill,
		Message: InvoiceMessage(bill, s.baseURL),
	}
	result.WaLink = WaLink(cust.Phone, result.Message)

	if s.render != nil {
		shop, err := s.shops.Get(ctx, owner)
		if err != nil {
			zap.L().Warn("checkout: shop profile unavailable, skipping PDF",
				zap.String("invoice_no", invoiceNo), zap.Error(err))
		} else if pdf, err := s.render(bill, shop); err != nil {
			zap.L().Warn("checkout: invoice PDF generation failed",
				zap.String("invoice_no", invoiceNo), zap.Error(err))
		} else {
			result.PDF = pdf
		}
	}

	if s.bus != nil {
		s.bus.Publish(TopicBillCreated, bill.InvoiceNo, bill.Total)
	}

	zap.L().Info("checkout complete",
		zap.String("invoice_no", invoiceNo),
		zap.Float64("total", total),
		zap.Int64("owner", owner))

	return result, nil
}
