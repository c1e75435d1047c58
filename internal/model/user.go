package model

import (
	"time"

	"github.com/estately/estately/internal/authz"
)

// User is a marketplace account. The password column holds a hex-encoded
// bcrypt hash and is never serialized.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:30" json:"first_name"`
	LastName    string     `gorm:"size:30" json:"last_name"`
	Role        authz.Role `gorm:"size:10;not null" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time  `json:"date_joined"`
	UpdatedAt   time.Time  `json:"-"`

	// SellerApplication is the account's one-to-one onboarding application,
	// nil until the account applies.
	SellerApplication *SellerApplication `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Properties        []Property         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Actor reduces the account to its authorization-relevant fields.
func (u *User) Actor() authz.Actor {
	return authz.Actor{
		ID:          u.ID,
		Role:        u.Role,
		IsSuperuser: u.IsSuperuser,
	}
}

// ApplicationStatus is the lifecycle state of a seller application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// SellerApplication is the one-shot request of an account to become a
// seller. At most one exists per account, whatever its status.
type SellerApplication struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName    string            `gorm:"size:100" json:"company_name"`
	CompanyAddress string            `gorm:"size:255" json:"company_address"`
	PhoneNumber    string            `gorm:"size:20" json:"phone_number"`
	Website        string            `gorm:"size:200" json:"website"`
	Status         ApplicationStatus `gorm:"size:10;not null;default:pending" json:"status"`
	Message        string            `gorm:"type:text" json:"message"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (SellerApplication) TableName() string {
	return "seller_applications"
}
