package users

import (
	"time"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
)

type User struct {
	ID                string      `gorm:"type:char(36);primaryKey" json:"id"`
	Email             string      `gorm:"size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash      string      `gorm:"size:255;not null" json:"-"`
	FirstName         string      `gorm:"size:100;not null;default:''" json:"first_name"`
	LastName          string      `gorm:"size:100;not null;default:''" json:"last_name"`
	Role              access.Role `gorm:"type:varchar(32);not null;default:customer;index:ix_users_role" json:"role"`
	WholesaleApproved bool        `gorm:"not null;default:false" json:"wholesale_approved"`
	LoyaltyPoints     int         `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt         time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Actor is the staff member performing an admin action.
type Actor struct {
	ID   string
	Role access.Role
}
