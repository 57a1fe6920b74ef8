package testutil

import (
	"context"
	"sync"
	"time"

	"vocab_system/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLedger is a testify mock of the saved-word store
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Create(ctx context.Context, sw *domain.SavedWord) error {
	args := m.Called(ctx, sw)
	return args.Error(0)
}

func (m *MockLedger) Exists(ctx context.Context, userID, vocabID string) (bool, error) {
	args := m.Called(ctx, userID, vocabID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) ListByUser(ctx context.Context, userID string) ([]domain.SavedWord, error) {
	args := m.Called(ctx, userID)
	saved, _ := args.Get(0).([]domain.SavedWord)
	return saved, args.Error(1)
}

func (m *MockLedger) DeleteOwned(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLedger) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockVocabLookup is a testify mock of vocabulary resolution
type MockVocabLookup struct {
	mock.Mock
}

func (m *MockVocabLookup) FindVocab(ctx context.Context, id string) (*domain.Vocabulary, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Vocabulary)
	return v, args.Error(1)
}

func (m *MockVocabLookup) FindVocabs(ctx context.Context, ids []string) ([]domain.Vocabulary, error) {
	args := m.Called(ctx, ids)
	vocabs, _ := args.Get(0).([]domain.Vocabulary)
	return vocabs, args.Error(1)
}

// StepClock returns a clock that starts at start and advances by step on every call
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}
