package store

import (
	"context" // Request scoped cancellation

	"vocab_system/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Row locking and association control
)

// CatalogStore persists categories and vocabulary.
//
// Vocabulary references its category through a foreign key with RESTRICT
// semantics. DeleteCategory additionally locks the category row and checks for
// dependents in the same transaction, while vocabulary writes take a shared lock
// on the referenced category, so no insert can slip between check and delete.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog store
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// CreateCategory inserts a category
func (s *CatalogStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.Conflict(domain.EntityCategory, c.Name, domain.ReasonDuplicateName)
		}
		return domain.Storage("create category", err)
	}
	return nil
}

// FindCategory returns the category with the given id
func (s *CatalogStore) FindCategory(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(domain.EntityCategory, id)
		}
		return nil, domain.Storage("find category", err)
	}
	return &c, nil
}

// CategoryNameTaken reports whether another category already uses name
func (s *CatalogStore) CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&domain.Category{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, domain.Storage("check category name", err)
	}
	return count > 0, nil
}

// UpdateCategory applies a partial update and returns the stored category
func (s *CatalogStore) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	var updated domain.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRows(tx, "UPDATE").First(&updated, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound(domain.EntityCategory, id)
			}
			return domain.Storage("lock category", err)
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.BackgroundImage != nil {
			updates["background_image"] = *patch.BackgroundImage
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&updated).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return domain.Conflict(domain.EntityCategory, id, domain.ReasonDuplicateName)
			}
			return domain.Storage("update category", err)
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		if domain.KindOf(err) != 0 {
			return nil, err
		}
		return nil, domain.Storage("update category", err)
	}
	return &updated, nil
}

// DeleteCategory removes a category that no vocabulary references
func (s *CatalogStore) DeleteCategory(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Category
		if err := lockRows(tx, "UPDATE").First(&c, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound(domain.EntityCategory, id)
			}
			return domain.Storage("lock category", err)
		}
		var dependents int64
		if err := tx.Model(&domain.Vocabulary{}).Where("category_id = ?", id).Count(&dependents).Error; err != nil {
			return domain.Storage("count dependent vocabulary", err)
		}
		if dependents > 0 {
			return domain.Conflict(domain.EntityCategory, id, domain.ReasonDependentVocabulary)
		}
		if err := tx.Delete(&domain.Category{}, "id = ?", id).Error; err != nil {
			if isForeignKeyViolation(err) {
				return domain.Conflict(domain.EntityCategory, id, domain.ReasonDependentVocabulary)
			}
			return domain.Storage("delete category", err)
		}
		return nil
	})
	if err != nil && domain.KindOf(err) == 0 {
		return domain.Storage("delete category", err)
	}
	return err
}

// ListCategories returns every category, most recently created first
func (s *CatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id").Find(&categories).Error; err != nil {
		return nil, domain.Storage("list categories", err)
	}
	return categories, nil
}

// CountCategories returns the number of categories
func (s *CatalogStore) CountCategories(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Category{}).Count(&total).Error; err != nil {
		return 0, domain.Storage("count categories", err)
	}
	return total, nil
}

// lockRows adds a row lock of the given strength. SQLite has no row locks and
// serializes writers on its own, so the clause is left out there.
func lockRows(tx *gorm.DB, strength string) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: strength})
}

// shareCategory takes a shared lock on the referenced category, failing when it is gone
func shareCategory(tx *gorm.DB, id string) (*domain.Category, error) {
	var c domain.Category
	if err := lockRows(tx, "SHARE").First(&c, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(domain.EntityCategory, id)
		}
		return nil, domain.Storage("lock category", err)
	}
	return &c, nil
}

// CreateVocab inserts a vocabulary entry after confirming its category exists
func (s *CatalogStore) CreateVocab(ctx context.Context, v *domain.Vocabulary) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category *domain.Category
		if v.CategoryID != nil {
			c, err := shareCategory(tx, *v.CategoryID)
			if err != nil {
				return err
			}
			category = c
		}
		if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
			if isForeignKeyViolation(err) && v.CategoryID != nil {
				return domain.NotFound(domain.EntityCategory, *v.CategoryID)
			}
			return domain.Storage("create vocabulary", err)
		}
		v.Category = category
		return nil
	})
	if err != nil && domain.KindOf(err) == 0 {
		return domain.Storage("create vocabulary", err)
	}
	return err
}

// UpdateVocab applies a partial update and returns the stored entry with its category
func (s *CatalogStore) UpdateVocab(ctx context.Context, id string, patch domain.VocabPatch) (*domain.Vocabulary, error) {
	var updated domain.Vocabulary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRows(tx, "UPDATE").First(&updated, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound(domain.EntityVocabulary, id)
			}
			return domain.Storage("lock vocabulary", err)
		}
		updates := map[string]any{}
		if patch.Word != nil {
			updates["word"] = *patch.Word
		}
		if patch.Meaning != nil {
			updates["meaning"] = *patch.Meaning
		}
		if patch.AudioURL != nil {
			updates["audio_url"] = *patch.AudioURL
		}
		if patch.ImageURL != nil {
			updates["image_url"] = *patch.ImageURL
		}
		if patch.Level != nil {
			updates["level"] = *patch.Level
		}
		if patch.CategoryID != nil {
			if *patch.CategoryID == "" {
				updates["category_id"] = nil // Clear the reference
			} else {
				if _, err := shareCategory(tx, *patch.CategoryID); err != nil {
					return err
				}
				updates["category_id"] = *patch.CategoryID
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&domain.Vocabulary{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				if isForeignKeyViolation(err) && patch.CategoryID != nil {
					return domain.NotFound(domain.EntityCategory, *patch.CategoryID)
				}
				return domain.Storage("update vocabulary", err)
			}
		}
		updated = domain.Vocabulary{}
		return tx.Preload("Category").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		if domain.KindOf(err) != 0 {
			return nil, err
		}
		return nil, domain.Storage("update vocabulary", err)
	}
	return &updated, nil
}

// DeleteVocab removes a vocabulary entry; saved words referencing it are left in place
func (s *CatalogStore) DeleteVocab(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.Vocabulary{}, "id = ?", id)
	if res.Error != nil {
		return domain.Storage("delete vocabulary", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(domain.EntityVocabulary, id)
	}
	return nil
}

// FindVocab returns a vocabulary entry with its category
func (s *CatalogStore) FindVocab(ctx context.Context, id string) (*domain.Vocabulary, error) {
	var v domain.Vocabulary
	if err := s.db.WithContext(ctx).Preload("Category").First(&v, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.NotFound(domain.EntityVocabulary, id)
		}
		return nil, domain.Storage("find vocabulary", err)
	}
	return &v, nil
}

// FindVocabs returns the entries among ids that still exist, categories preloaded
func (s *CatalogStore) FindVocabs(ctx context.Context, ids []string) ([]domain.Vocabulary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vocabs []domain.Vocabulary
	if err := s.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&vocabs).Error; err != nil {
		return nil, domain.Storage("find vocabulary", err)
	}
	return vocabs, nil
}

// ListVocab returns vocabulary entries with their categories, most recent first
func (s *CatalogStore) ListVocab(ctx context.Context, filter domain.VocabFilter) ([]domain.Vocabulary, error) {
	var vocabs []domain.Vocabulary
	q := s.db.WithContext(ctx).Preload("Category")
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if err := q.Order("created_at desc").Order("id").Find(&vocabs).Error; err != nil {
		return nil, domain.Storage("list vocabulary", err)
	}
	return vocabs, nil
}

// CountVocab returns the number of vocabulary entries
func (s *CatalogStore) CountVocab(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Vocabulary{}).Count(&total).Error; err != nil {
		return 0, domain.Storage("count vocabulary", err)
	}
	return total, nil
}
