package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Level is a CEFR proficiency level
type Level string

// Supported proficiency levels
const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists every supported level in ascending order
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// Valid reports whether l is one of the supported levels
func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

// Vocabulary Model
type Vocabulary struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`                                   // Primary key
	Word       string    `gorm:"size:255;not null" json:"word"`                                  // Headword
	Meaning    string    `gorm:"type:text;not null" json:"meaning"`                              // Translation or definition
	AudioURL   string    `gorm:"size:1024" json:"audioUrl"`                                      // Optional pronunciation audio
	ImageURL   string    `gorm:"size:1024" json:"imageUrl"`                                      // Optional illustration
	Level      Level     `gorm:"size:2" json:"level"`                                            // Optional CEFR level
	CategoryID *string   `gorm:"size:36;index" json:"categoryId"`                                // Foreign key to Category
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"` // Deletion of a referenced category is refused
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`                                         // Creation time
	UpdatedAt  time.Time `json:"updatedAt"`                                                      // Last modification time
}

// TableName keeps the table name stable regardless of pluralization rules
func (Vocabulary) TableName() string {
	return "vocabularies"
}

// BeforeCreate assigns an identifier when none is set
func (v *Vocabulary) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VocabInput carries the fields used to create a vocabulary entry
type VocabInput struct {
	Word       string
	Meaning    string
	AudioURL   string
	ImageURL   string
	Level      Level
	CategoryID string // Empty means no category
}

// VocabPatch carries a partial vocabulary update; nil fields are left unchanged.
// A non-nil empty CategoryID clears the category reference.
type VocabPatch struct {
	Word       *string
	Meaning    *string
	AudioURL   *string
	ImageURL   *string
	Level      *Level
	CategoryID *string
}

// VocabFilter narrows a vocabulary listing
type VocabFilter struct {
	CategoryID string // Only entries of this category when set
}
