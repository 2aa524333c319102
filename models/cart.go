package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one line of a cart. Lines sharing the same food and bespoke
// note are merged by the add operation, never duplicated.
type CartItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CartID      uint   `gorm:"not null;index" json:"cart_id"`
	Cart        Cart   `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodID      uint   `gorm:"not null" json:"food_id"`
	Food        Food   `gorm:"foreignKey:FoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"food"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`
	BespokeNote string `gorm:"type:text" json:"bespoke_note"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
