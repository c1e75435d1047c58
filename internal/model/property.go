package model

import "time"

// Purpose is what the listing is offered for.
type Purpose string

const (
	PurposeSale Purpose = "For Sale"
	PurposeRent Purpose = "For Rent"
)

func (p Purpose) Valid() bool {
	return p == PurposeSale || p == PurposeRent
}

// PropertyStatus is the moderation state of a listing. Approval and the
// published flag are independent axes: a property may be approved but not
// yet published.
type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "Pending"
	PropertyApproved PropertyStatus = "Approved"
	PropertyRejected PropertyStatus = "Rejected"
)

// Property is a listing owned by exactly one account.
type Property struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerID      uint           `gorm:"not null;index" json:"owner_id"`
	Owner        *User          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title        string         `gorm:"size:223;not null;uniqueIndex" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	Location     string         `gorm:"size:255;not null" json:"location"`
	Bedrooms     uint           `gorm:"not null" json:"bedrooms"`
	Bathrooms    uint           `gorm:"not null" json:"bathrooms"`
	Space        uint           `gorm:"not null" json:"space"`
	PropertyType string         `gorm:"size:50" json:"property_type"`
	Purpose      Purpose        `gorm:"size:10;not null;default:'For Sale'" json:"purpose"`
	Status       PropertyStatus `gorm:"size:10;not null;default:Pending" json:"status"`
	IsPublished  bool           `gorm:"not null;default:false" json:"is_published"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Images []PropertyImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is an opaque retrievable URL owned by exactly one property,
// cascade-deleted with it.
type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"not null;index" json:"-"`
	URL        string `gorm:"size:500;not null" json:"image"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}
