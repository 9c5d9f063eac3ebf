package domain

import "time"

// Unit types for unit-priced products. An empty unit type means the product
// is sold at a fixed price per piece.
const (
	UnitTypeKg    = "Kg"
	UnitTypeLitre = "Litre"
)

// Product is one catalog entry. Exactly one pricing mode applies: fixed
// (Price, UnitType empty) or unit-based (UnitType + UnitPrice per whole
// base unit). Qty is current stock in pieces or base units and is never
// written below zero.
type Product struct {
	ID          int64     `json:"id,string" form:"id"`
	OwnerID     int64     `gorm:"uniqueIndex:idx_pos_product_owner_name" json:"owner_id,string" form:"owner_id"`
	Name        string    `gorm:"uniqueIndex:idx_pos_product_owner_name" json:"name" form:"name"`
	Category    string    `gorm:"size:64" json:"category" form:"category"`
	Description string    `json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	UnitType    string    `gorm:"size:16" json:"unit_type" form:"unit_type"`
	UnitPrice   float64   `json:"unit_price" form:"unit_price"`
	Qty         float64   `json:"qty" form:"qty"`
	LowAt       float64   `json:"low_at" form:"low_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "pos_product"
}

// UnitBased reports whether the product is priced per base unit.
func (p Product) UnitBased() bool {
	return p.UnitType != ""
}

// EffectivePrice is the per-base-unit price for unit-based products and the
// per-piece price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.UnitBased() {
		return p.UnitPrice
	}
	return p.Price
}

// LowStock reports whether stock has reached the low threshold.
func (p Product) LowStock() bool {
	threshold := p.LowAt
	if threshold == 0 {
		threshold = 5
	}
	return p.Qty <= threshold
}
