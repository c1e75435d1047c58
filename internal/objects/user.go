package objects

import "time"

type UserInfo struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"isActive"`
	DateJoined time.Time `json:"dateJoined"`
}
