package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// SavedWord Model
//
// A user holds at most one SavedWord per vocabulary entry; the composite unique
// index enforces it. No foreign key references vocabularies: removing a vocabulary
// entry leaves orphaned saved entries, which are skipped when listed.
type SavedWord struct {
	ID      string    `gorm:"primaryKey;size:36" json:"id"`                                                 // Primary key
	UserID  string    `gorm:"size:36;not null;uniqueIndex:idx_saved_words_user_vocab" json:"userId"`        // Owning user
	VocabID string    `gorm:"size:36;not null;uniqueIndex:idx_saved_words_user_vocab;index" json:"vocabId"` // Saved vocabulary
	SavedAt time.Time `gorm:"not null;index" json:"savedAt"`                                                // When the word was saved
}

// BeforeCreate assigns an identifier when none is set
func (s *SavedWord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SavedEntry is a saved word resolved to its current vocabulary detail
type SavedEntry struct {
	ID      string     `json:"id"`      // Saved word ID
	SavedAt time.Time  `json:"savedAt"` // When the word was saved
	Vocab   Vocabulary `json:"vocab"`   // Current vocabulary detail, category preloaded
}
