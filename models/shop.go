package models

import "time"

// ShopItem is a purchasable item priced in coins.
type ShopItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Icon        string    `gorm:"size:32" json:"icon"`
	Price       int       `gorm:"not null" json:"price"`
	Available   bool      `gorm:"default:true" json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Purchase records a completed shop transaction. PricePaid is captured at
// purchase time so later price changes don't rewrite history.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderNo   string    `gorm:"size:36;uniqueIndex;not null" json:"order_no"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ItemID    uint      `gorm:"index;not null" json:"item_id"`
	PricePaid int       `json:"price_paid"`
	CreatedAt time.Time `json:"created_at"`
	Item      ShopItem  `json:"item"`
}
