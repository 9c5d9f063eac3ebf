package domain

import "time"

// Customer is one registry entry. Phone is optional; a non-empty phone is
// unique per owner and acts as the natural key during checkout dedup.
type Customer struct {
	ID        int64     `json:"id,string" form:"id"`
	OwnerID   int64     `gorm:"index" json:"owner_id,string" form:"owner_id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Phone     string    `gorm:"index" json:"phone" form:"phone"`
	Religion  string    `gorm:"size:32" json:"religion" form:"religion"`
	General   bool      `json:"general" form:"general"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "pos_customer"
}
