package models

import "time"

type Chef struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Name             string  `gorm:"type:varchar(255);not null" json:"name"`
	Email            string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password         string  `gorm:"type:varchar(255);not null" json:"-"`
	Specialty        string  `gorm:"type:varchar(255);not null" json:"specialty"`
	Rating           float64 `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	Image            []byte  `gorm:"type:mediumblob" json:"-"`
	ImageContentType string  `gorm:"type:varchar(100)" json:"-"`
	// Alloted is a heuristic load score, 30 units per unit quantity assigned.
	// It is never authoritative inventory.
	Alloted   int `gorm:"not null;default:0;index" json:"alloted"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
