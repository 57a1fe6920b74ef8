package store

import (
	"context" // Request scoped cancellation

	"vocab_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// LedgerStore persists each user's saved words
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a saved-word ledger store
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Create inserts a saved word. The (user, vocab) unique index is the guard
// against concurrent duplicates; a violation is reported as a conflict.
func (s *LedgerStore) Create(ctx context.Context, sw *domain.SavedWord) error {
	if err := s.db.WithContext(ctx).Create(sw).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.Conflict(domain.EntitySavedWord, sw.VocabID, domain.ReasonAlreadySaved)
		}
		return domain.Storage("create saved word", err)
	}
	return nil
}

// Exists reports whether userID has already saved vocabID
func (s *LedgerStore) Exists(ctx context.Context, userID, vocabID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.SavedWord{}).
		Where("user_id = ? AND vocab_id = ?", userID, vocabID).
		Count(&count).Error
	if err != nil {
		return false, domain.Storage("check saved word", err)
	}
	return count > 0, nil
}

// ListByUser returns the user's saved words, oldest first
func (s *LedgerStore) ListByUser(ctx context.Context, userID string) ([]domain.SavedWord, error) {
	var saved []domain.SavedWord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at asc").
		Order("id asc").
		Find(&saved).Error
	if err != nil {
		return nil, domain.Storage("list saved words", err)
	}
	return saved, nil
}

// DeleteOwned removes a saved word only when it belongs to userID
func (s *LedgerStore) DeleteOwned(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.SavedWord{})
	if res.Error != nil {
		return domain.Storage("delete saved word", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(domain.EntitySavedWord, id)
	}
	return nil
}

// Count returns the number of saved words across all users
func (s *LedgerStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.SavedWord{}).Count(&total).Error; err != nil {
		return 0, domain.Storage("count saved words", err)
	}
	return total, nil
}
