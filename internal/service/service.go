package service

import (
	"context" // Request scoped cancellation
	"time"    // Clock

	"vocab_system/internal/domain" // Importing domain models
)

// Clock returns the current time; services take one so tests can pin it
type Clock func() time.Time

// utcNow is the default clock. Timestamps are stored in UTC so they compare
// consistently on every supported database.
func utcNow() time.Time {
	return time.Now().UTC()
}

// CatalogRepository is the storage the catalog service orchestrates
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	FindCategory(ctx context.Context, id string) (*domain.Category, error)
	CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	CreateVocab(ctx context.Context, v *domain.Vocabulary) error
	UpdateVocab(ctx context.Context, id string, patch domain.VocabPatch) (*domain.Vocabulary, error)
	DeleteVocab(ctx context.Context, id string) error
	FindVocab(ctx context.Context, id string) (*domain.Vocabulary, error)
	ListVocab(ctx context.Context, filter domain.VocabFilter) ([]domain.Vocabulary, error)
	CountVocab(ctx context.Context) (int64, error)
}

// VocabLookup resolves vocabulary references for the study service
type VocabLookup interface {
	FindVocab(ctx context.Context, id string) (*domain.Vocabulary, error)
	FindVocabs(ctx context.Context, ids []string) ([]domain.Vocabulary, error)
}

// LedgerRepository is the saved-word storage the study service orchestrates
type LedgerRepository interface {
	Create(ctx context.Context, sw *domain.SavedWord) error
	Exists(ctx context.Context, userID, vocabID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SavedWord, error)
	DeleteOwned(ctx context.Context, userID, id string) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository is the account storage the user service orchestrates
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, name, role *string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	RegisteredBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}
