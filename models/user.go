package models

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	Email         string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string `gorm:"type:varchar(255);not null" json:"-"`
	Preferences   string `gorm:"type:varchar(255)" json:"preferences"`
	IsAdmin       bool   `gorm:"not null;default:false" json:"is_admin"`
	LoyaltyPoints int    `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
