package domain

import "time"

// Bill statuses.
const (
	BillStatusPaid    = "Paid"
	BillStatusPending = "Pending"
)

// Bill is a finalized invoice. Customer fields are snapshots taken at sale
// time, not live references. Bills are immutable once created.
type Bill struct {
	ID               int64      `json:"id,string" form:"id"`
	OwnerID          int64      `gorm:"index" json:"owner_id,string" form:"owner_id"`
	InvoiceNo        string     `gorm:"index" json:"invoice_no" form:"invoice_no"`
	CustomerID       int64      `gorm:"index" json:"customer_id,string" form:"customer_id"`
	CustomerName     string     `json:"customer_name" form:"customer_name"`
	CustomerPhone    string     `json:"customer_phone" form:"customer_phone"`
	CustomerReligion string     `gorm:"size:32" json:"customer_religion" form:"customer_religion"`
	CustomerGeneral  bool       `json:"customer_general" form:"customer_general"`
	Subtotal         float64    `json:"subtotal" form:"subtotal"`
	Discount         float64    `json:"discount" form:"discount"`
	Total            float64    `json:"total" form:"total"`
	Status           string     `gorm:"size:16;index" json:"status" form:"status"`
	DueDate          *time.Time `json:"due_date" form:"due_date"`
	Items            []BillItem `gorm:"foreignKey:BillID" json:"items"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Bill) TableName() string {
	return "pos_bill"
}

// BillItem is one invoice line. Qty is a repeat count for fixed-price lines
// and always 1 for unit-based lines, whose purchased amount is recorded in
// PurchaseQty/PurchaseUnit and already folded into Price.
type BillItem struct {
	ID           int64     `json:"id,string" form:"id"`
	BillID       int64     `gorm:"index" json:"bill_id,string" form:"bill_id"`
	OwnerID      int64     `gorm:"index" json:"owner_id,string" form:"owner_id"`
	ProductID    int64     `gorm:"index" json:"product_id,string" form:"product_id"`
	Name         string    `json:"name" form:"name"`
	Price        float64   `json:"price" form:"price"`
	Qty          float64   `json:"qty" form:"qty"`
	Total        float64   `json:"total" form:"total"`
	PurchaseQty  float64   `json:"purchase_qty" form:"purchase_qty"`
	PurchaseUnit string    `gorm:"size:16" json:"purchase_unit" form:"purchase_unit"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BillItem) TableName() string {
	return "pos_bill_item"
}
