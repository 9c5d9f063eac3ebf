package pos

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/govindalabs/dairypos/internal/domain"
)

// ErrInvalidQuantity is returned when a unit-based add carries an invalid
// smart-quantity parse. The cart is left untouched.
var ErrInvalidQuantity = errors.New("invalid quantity input")

// LineKind distinguishes the two cart line variants.
type LineKind int

const (
	// LineFixed is a per-piece priced line with an integer repeat count.
	LineFixed LineKind = iota
	// LineUnit is a weight/volume priced line; the purchased amount lives in
	// PurchaseQty/PurchaseUnit and Qty stays fixed at 1.
	LineUnit
)

// CartLine is one row of the active cart. Price is the per-piece snapshot
// for fixed lines and the fully computed line price for unit lines.
type CartLine struct {
	Kind         LineKind `json:"kind"`
	ProductID    int64    `json:"product_id,string"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Qty          int      `json:"qty"`
	UnitPrice    float64  `json:"unit_price,omitempty"`
	UnitType     string   `json:"unit_type,omitempty"`
	PurchaseQty  float64  `json:"purchase_qty,omitempty"`
	PurchaseUnit string   `json:"purchase_unit,omitempty"`
}

// LineTotal is the money this line contributes to the subtotal.
func (l CartLine) LineTotal() float64 {
	if l.Kind == LineUnit {
		return l.Price
	}
	return l.Price * float64(l.Qty)
}

// StockDelta is the amount subtracted from product stock at checkout:
// the purchased base-unit amount for unit lines, the repeat count otherwise.
func (l CartLine) StockDelta() float64 {
	if l.Kind == LineUnit {
		return ConvertToBaseUnit(l.PurchaseQty, l.PurchaseUnit, l.UnitType)
	}
	return float64(l.Qty)
}

// Cart is the ordered line list of the active session, newest first. All
// operations are copy-on-write: they return a fresh slice and never mutate
// the receiver, so a cart value handed out earlier stays consistent.
type Cart []CartLine

// AddFixed adds qty pieces of a fixed-price product, clamped to available
// stock. An existing line for the product absorbs the quantity instead of a
// duplicate appearing.
func (c Cart) AddFixed(p domain.Product, qty int) Cart {
	stock := int(p.Qty)
	if qty < 1 {
		qty = 1
	}
	if qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}

	for i, line := range c {
		if line.Kind == LineFixed && line.ProductID == p.ID {
			newQty := line.Qty + qty
			if newQty > stock {
				newQty = stock
			}
			out := append(Cart(nil), c...)
			out[i].Qty = newQty
			return out
		}
	}

	line := CartLine{
		Kind:      LineFixed,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       qty,
	}
	return append(Cart{line}, c...)
}

// AddUnit adds a weight/volume purchase of a unit-priced product. Adding the
// same product with the same purchase unit accumulates the quantity and
// recomputes the price and display name; a different purchase unit coexists
// as its own line.
func (c Cart) AddUnit(p domain.Product, pq ParsedQuantity) (Cart, error) {
	if !pq.Valid {
		return c, ErrInvalidQuantity
	}

	for i, line := range c {
		if line.Kind == LineUnit && line.ProductID == p.ID && line.PurchaseUnit == pq.Unit {
			merged := line.PurchaseQty + pq.Quantity
			out := append(Cart(nil), c...)
			out[i].PurchaseQty = merged
			out[i].Price = CalculateUnitPrice(p.UnitPrice, merged, pq.Unit, p.UnitType)
			out[i].Name = fmt.Sprintf("%s (%s)", p.Name, FormatQuantity(merged, pq.Unit))
			return out, nil
		}
	}

	line := CartLine{
		Kind:         LineUnit,
		ProductID:    p.ID,
		Name:         fmt.Sprintf("%s (%s)", p.Name, FormatQuantity(pq.Quantity, pq.Unit)),
		Price:        CalculateUnitPrice(p.UnitPrice, pq.Quantity, pq.Unit, p.UnitType),
		Qty:          1,
		UnitPrice:    p.UnitPrice,
		UnitType:     p.UnitType,
		PurchaseQty:  pq.Quantity,
		PurchaseUnit: pq.Unit,
	}
	return append(Cart{line}, c...), nil
}

// UpdateQty sets the repeat count of a fixed-price line, floored at 1.
// Unit-based lines are not repeat-counted and are left alone.
func (c Cart) UpdateQty(productID int64, qty int) Cart {
	if qty < 1 {
		qty = 1
	}
	out := append(Cart(nil), c...)
	for i, line := range out {
		if line.Kind == LineFixed && line.ProductID == productID {
			out[i].Qty = qty
		}
	}
	return out
}

// Remove drops lines for a product. When purchaseUnit is non-empty only the
// unit-based line matching both product and purchase unit goes, so two
// purchase-unit variants of one product can be removed independently.
func (c Cart) Remove(productID int64, purchaseUnit string) Cart {
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if purchaseUnit != "" && line.PurchaseUnit != "" {
			if line.ProductID == productID && line.PurchaseUnit == purchaseUnit {
				continue
			}
			out = append(out, line)
			continue
		}
		if line.ProductID == productID {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Subtotal sums the line totals.
func (c Cart) Subtotal() float64 {
	var sum float64
	for _, line := range c {
		sum += line.LineTotal()
	}
	return sum
}

// CartStore holds the active cart per owner. Carts are session state only
// and are never persisted.
type CartStore struct {
	mu    sync.RWMutex
	carts map[int64]Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[int64]Cart)}
}

func (s *CartStore) Get(owner int64) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[owner]
}

func (s *CartStore) Put(owner int64, c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[owner] = c
}

func (s *CartStore) Clear(owner int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
}
