package domain

import "time"

// ShopProfile is the singleton shop identity per owner, printed on invoices.
type ShopProfile struct {
	ID        int64     `json:"id,string" form:"id"`
	OwnerID   int64     `gorm:"uniqueIndex" json:"owner_id,string" form:"owner_id"`
	Name      string    `json:"name" form:"name"`
	Phone     string    `json:"phone" form:"phone"`
	Addr      string    `json:"addr" form:"addr"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShopProfile) TableName() string {
	return "pos_shop_profile"
}
