package models

import "time"

type Food struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"type:varchar(255);not null" json:"name"`
	Price             float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Image             []byte  `gorm:"type:mediumblob" json:"-"`
	ImageContentType  string  `gorm:"type:varchar(100)" json:"-"`
	QuantityAvailable int     `gorm:"not null;default:0" json:"quantity_available"`
	BespokeOption     string  `gorm:"type:varchar(255)" json:"bespoke_option"`
	Tags              string  `gorm:"type:varchar(255)" json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"-"`
}
