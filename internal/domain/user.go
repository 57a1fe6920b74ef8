package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Roles a user can hold
const (
	RoleUser  = "user"  // Regular learner
	RoleAdmin = "admin" // Catalog manager
)

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`               // Primary key
	Name      string    `gorm:"size:128" json:"name"`                       // Display name
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"` // Unique login email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password
	Role      string    `gorm:"size:16;default:user" json:"role"`           // Role: user or admin
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                     // Registration time
}

// BeforeCreate assigns an identifier when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user may manage the catalog
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
