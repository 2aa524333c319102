package models

import "time"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_number"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID;references:ID" json:"user"`
	ChefID        uint        `gorm:"not null;index" json:"chef_id"`
	Chef          Chef        `gorm:"foreignKey:ChefID;references:ID" json:"chef"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Total         float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	DeliveryFee   float64     `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	Status        string      `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	PaymentStatus string      `gorm:"type:varchar(30);not null;default:'completed'" json:"payment_status"`
	UserLocation  string      `gorm:"type:varchar(255);not null" json:"user_location"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem snapshots name and price at checkout time so later catalog edits
// never alter historical orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	Order       Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodID      uint    `gorm:"not null" json:"food_id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	BespokeNote string  `gorm:"type:text" json:"bespoke_note"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
