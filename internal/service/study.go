package service

import (
	"context" // Request scoped cancellation
	"strings" // Input normalization

	"vocab_system/internal/domain" // Importing domain models

	"github.com/samber/lo"       // Collection helpers
	"github.com/sirupsen/logrus" // Logging
)

// StudyService manages each user's saved-word ledger
type StudyService struct {
	ledger LedgerRepository
	vocab  VocabLookup
	clock  Clock
}

// NewStudyService creates a study service
func NewStudyService(ledger LedgerRepository, vocab VocabLookup) *StudyService {
	return &StudyService{ledger: ledger, vocab: vocab, clock: utcNow}
}

// WithClock replaces the service clock
func (s *StudyService) WithClock(clock Clock) *StudyService {
	s.clock = clock
	return s
}

// SaveWord records that userID saved vocabID. Saving the same entry twice is a conflict.
func (s *StudyService) SaveWord(ctx context.Context, userID, vocabID string) (*domain.SavedWord, error) {
	vocabID = strings.TrimSpace(vocabID)
	if userID == "" {
		return nil, domain.Auth("missing user")
	}
	if vocabID == "" {
		return nil, domain.Validation("vocabId", "required")
	}
	if _, err := s.vocab.FindVocab(ctx, vocabID); err != nil {
		return nil, err
	}
	exists, err := s.ledger.Exists(ctx, userID, vocabID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict(domain.EntitySavedWord, vocabID, domain.ReasonAlreadySaved)
	}
	sw := &domain.SavedWord{UserID: userID, VocabID: vocabID, SavedAt: s.clock()}
	if err := s.ledger.Create(ctx, sw); err != nil {
		return nil, err // The unique index rejects a concurrent duplicate
	}
	return sw, nil
}

// ListSavedWords returns the user's saved words, oldest first, joined with current
// vocabulary detail. Entries whose vocabulary no longer exists are omitted.
func (s *StudyService) ListSavedWords(ctx context.Context, userID string) ([]domain.SavedEntry, error) {
	saved, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return []domain.SavedEntry{}, nil
	}
	ids := lo.Uniq(lo.Map(saved, func(sw domain.SavedWord, _ int) string { return sw.VocabID }))
	vocabs, err := s.vocab.FindVocabs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(vocabs, func(v domain.Vocabulary) string { return v.ID })

	entries := make([]domain.SavedEntry, 0, len(saved))
	for _, sw := range saved {
		v, ok := byID[sw.VocabID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,
				"saved_id": sw.ID,
				"vocab_id": sw.VocabID,
			}).Warn("Saved word references missing vocabulary")
			continue
		}
		entries = append(entries, domain.SavedEntry{ID: sw.ID, SavedAt: sw.SavedAt, Vocab: v})
	}
	return entries, nil
}

// RemoveSavedWord deletes a saved word owned by userID. Entries owned by
// someone else are reported as not found.
func (s *StudyService) RemoveSavedWord(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("id", "required")
	}
	return s.ledger.DeleteOwned(ctx, userID, id)
}
