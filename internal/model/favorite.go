package model

import "time"

// Favorite joins an account and a property. The (user, property) pair is
// unique; adding an existing pair is an idempotent no-op at the service
// layer. The property is embedded in the wire form when preloaded, so the
// favorites list renders without a lookup per row.
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"property_id"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"property,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
