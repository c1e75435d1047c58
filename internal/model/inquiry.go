package model

import "time"

// Inquiry is a buyer-to-seller question about a property. Inquiries are
// immutable after creation; there is no update operation.
type Inquiry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PropertyID    uint      `gorm:"not null;index" json:"property_id"`
	Property      *Property `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	ContactNumber string    `gorm:"size:20;not null" json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
