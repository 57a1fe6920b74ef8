package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Category Model
type Category struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`              // Primary key
	Name            string    `gorm:"uniqueIndex;size:191;not null" json:"name"` // Unique category name
	BackgroundImage string    `gorm:"size:1024;not null" json:"backgroundImage"` // Background image URI
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`                    // Creation time, drives list order
	UpdatedAt       time.Time `json:"updatedAt"`                                 // Last modification time
}

// BeforeCreate assigns an identifier when none is set
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryInput carries the fields required to create a category
type CategoryInput struct {
	Name            string
	BackgroundImage string
}

// CategoryPatch carries a partial category update; nil fields are left unchanged
type CategoryPatch struct {
	Name            *string
	BackgroundImage *string
}
