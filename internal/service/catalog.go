package service

import (
	"context" // Request scoped cancellation
	"strings" // Input normalization

	"vocab_system/internal/domain" // Importing domain models
)

// CatalogService manages categories and vocabulary
type CatalogService struct {
	repo  CatalogRepository
	clock Clock
}

// NewCatalogService creates a catalog service
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo, clock: utcNow}
}

// WithClock replaces the service clock
func (s *CatalogService) WithClock(clock Clock) *CatalogService {
	s.clock = clock
	return s
}

// CreateCategory creates a category with a unique name
func (s *CatalogService) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	image := strings.TrimSpace(in.BackgroundImage)
	if name == "" {
		return nil, domain.Validation("name", "required")
	}
	if image == "" {
		return nil, domain.Validation("backgroundImage", "required")
	}
	taken, err := s.repo.CategoryNameTaken(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict(domain.EntityCategory, name, domain.ReasonDuplicateName)
	}
	c := &domain.Category{Name: name, BackgroundImage: image, CreatedAt: s.clock()}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err // Unique index catches a concurrent create with the same name
	}
	return c, nil
}

// UpdateCategory applies a partial update to a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.Name == nil && patch.BackgroundImage == nil {
		return nil, domain.Validation("name", "required")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.Validation("name", "required")
		}
		patch.Name = &name
	}
	if patch.BackgroundImage != nil {
		image := strings.TrimSpace(*patch.BackgroundImage)
		if image == "" {
			return nil, domain.Validation("backgroundImage", "required")
		}
		patch.BackgroundImage = &image
	}
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		taken, err := s.repo.CategoryNameTaken(ctx, *patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Conflict(domain.EntityCategory, id, domain.ReasonDuplicateName)
		}
	}
	return s.repo.UpdateCategory(ctx, id, patch)
}

// DeleteCategory removes a category that no vocabulary references
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

// ListCategories returns all categories, most recently created first
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateVocab creates a vocabulary entry
func (s *CatalogService) CreateVocab(ctx context.Context, in domain.VocabInput) (*domain.Vocabulary, error) {
	word := strings.TrimSpace(in.Word)
	meaning := strings.TrimSpace(in.Meaning)
	if word == "" {
		return nil, domain.Validation("word", "required")
	}
	if meaning == "" {
		return nil, domain.Validation("meaning", "required")
	}
	if in.Level != "" && !in.Level.Valid() {
		return nil, domain.Validation("level", "must be one of A1, A2, B1, B2, C1, C2")
	}
	v := &domain.Vocabulary{
		Word:      word,
		Meaning:   meaning,
		AudioURL:  strings.TrimSpace(in.AudioURL),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Level:     in.Level,
		CreatedAt: s.clock(),
	}
	if categoryID := strings.TrimSpace(in.CategoryID); categoryID != "" {
		v.CategoryID = &categoryID
	}
	if err := s.repo.CreateVocab(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateVocab applies a partial update to a vocabulary entry
func (s *CatalogService) UpdateVocab(ctx context.Context, id string, patch domain.VocabPatch) (*domain.Vocabulary, error) {
	if patch.Word != nil {
		word := strings.TrimSpace(*patch.Word)
		if word == "" {
			return nil, domain.Validation("word", "required")
		}
		patch.Word = &word
	}
	if patch.Meaning != nil {
		meaning := strings.TrimSpace(*patch.Meaning)
		if meaning == "" {
			return nil, domain.Validation("meaning", "required")
		}
		patch.Meaning = &meaning
	}
	if patch.Level != nil && *patch.Level != "" && !patch.Level.Valid() {
		return nil, domain.Validation("level", "must be one of A1, A2, B1, B2, C1, C2")
	}
	if patch.CategoryID != nil {
		categoryID := strings.TrimSpace(*patch.CategoryID)
		patch.CategoryID = &categoryID
	}
	return s.repo.UpdateVocab(ctx, id, patch)
}

// DeleteVocab removes a vocabulary entry. Saved words pointing at it are not checked.
func (s *CatalogService) DeleteVocab(ctx context.Context, id string) error {
	return s.repo.DeleteVocab(ctx, id)
}

// GetVocab returns a vocabulary entry with its category
func (s *CatalogService) GetVocab(ctx context.Context, id string) (*domain.Vocabulary, error) {
	return s.repo.FindVocab(ctx, id)
}

// ListVocab returns vocabulary entries joined with their categories
func (s *CatalogService) ListVocab(ctx context.Context, filter domain.VocabFilter) ([]domain.Vocabulary, error) {
	filter.CategoryID = strings.TrimSpace(filter.CategoryID)
	return s.repo.ListVocab(ctx, filter)
}
