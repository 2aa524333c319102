package models

import "time"

// QueuedEmail is an undelivered notification. Rows are appended when the
// outbound path is offline or the SMTP send fails, and flushed later.
type QueuedEmail struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Recipient string     `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject   string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string     `gorm:"type:longtext;not null" json:"-"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
