package store

import (
	"context"
	"testing"
	"time"

	"vocab_system/internal/domain"
	"vocab_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T) (*gorm.DB, *CatalogStore) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return db, NewCatalogStore(db)
}

func createTestCategory(t *testing.T, s *CatalogStore, name string, createdAt time.Time) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, BackgroundImage: "http://x/" + name + ".png", CreatedAt: createdAt}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func createTestVocab(t *testing.T, s *CatalogStore, word string, categoryID *string) *domain.Vocabulary {
	t.Helper()
	v := &domain.Vocabulary{Word: word, Meaning: word + " meaning", Level: domain.LevelA1, CategoryID: categoryID}
	require.NoError(t, s.CreateVocab(context.Background(), v))
	return v
}

func TestCatalogStore_CreateCategory(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()

	c := createTestCategory(t, s, "Animals", time.Now())
	assert.NotEmpty(t, c.ID)

	err := s.CreateCategory(ctx, &domain.Category{Name: "Animals", BackgroundImage: "http://x/b.png"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, domain.ReasonDuplicateName, domain.ReasonOf(err))
}

func TestCatalogStore_ListCategories_NewestFirst(t *testing.T) {
	_, s := setupCatalog(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	createTestCategory(t, s, "Food", base)
	createTestCategory(t, s, "Travel", base.Add(2*time.Hour))
	createTestCategory(t, s, "Animals", base.Add(time.Hour))

	categories, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Travel", categories[0].Name)
	assert.Equal(t, "Animals", categories[1].Name)
	assert.Equal(t, "Food", categories[2].Name)
}

func TestCatalogStore_UpdateCategory(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()
	c := createTestCategory(t, s, "Animals", time.Now())
	createTestCategory(t, s, "Food", time.Now())

	t.Run("partial update keeps other fields", func(t *testing.T) {
		name := "Pets"
		updated, err := s.UpdateCategory(ctx, c.ID, domain.CategoryPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Pets", updated.Name)
		assert.Equal(t, c.BackgroundImage, updated.BackgroundImage)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "Ghost"
		_, err := s.UpdateCategory(ctx, "missing", domain.CategoryPatch{Name: &name})
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("name taken by another category", func(t *testing.T) {
		name := "Food"
		_, err := s.UpdateCategory(ctx, c.ID, domain.CategoryPatch{Name: &name})
		assert.True(t, domain.IsKind(err, domain.KindConflict))
	})
}

func TestCatalogStore_DeleteCategory(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()

	t.Run("unreferenced category is removed", func(t *testing.T) {
		c := createTestCategory(t, s, "Empty", time.Now())
		require.NoError(t, s.DeleteCategory(ctx, c.ID))

		_, err := s.FindCategory(ctx, c.ID)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("referenced category is kept", func(t *testing.T) {
		c := createTestCategory(t, s, "Animals", time.Now())
		createTestVocab(t, s, "cat", &c.ID)

		err := s.DeleteCategory(ctx, c.ID)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindConflict))
		assert.Equal(t, domain.ReasonDependentVocabulary, domain.ReasonOf(err))

		found, err := s.FindCategory(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Animals", found.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := s.DeleteCategory(ctx, "missing")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestCatalogStore_ForeignKeyRestrict(t *testing.T) {
	db, s := setupCatalog(t)
	c := createTestCategory(t, s, "Animals", time.Now())
	createTestVocab(t, s, "dog", &c.ID)

	// Bypass the dependent check: the constraint alone must refuse the delete
	err := db.Delete(&domain.Category{}, "id = ?", c.ID).Error
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err))

	// And a vocabulary row cannot point at a category that does not exist
	ghost := "ghost"
	err = db.Omit("Category").Create(&domain.Vocabulary{Word: "x", Meaning: "y", CategoryID: &ghost}).Error
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err))
}

func TestCatalogStore_CreateVocab(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()
	c := createTestCategory(t, s, "Animals", time.Now())

	v := createTestVocab(t, s, "cat", &c.ID)
	require.NotNil(t, v.Category)
	assert.Equal(t, "Animals", v.Category.Name)

	missing := "missing"
	err := s.CreateVocab(ctx, &domain.Vocabulary{Word: "ghost", Meaning: "ma", CategoryID: &missing})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	loose := createTestVocab(t, s, "hello", nil)
	assert.Nil(t, loose.Category)
}

func TestCatalogStore_UpdateVocab(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()
	animals := createTestCategory(t, s, "Animals", time.Now())
	food := createTestCategory(t, s, "Food", time.Now())
	v := createTestVocab(t, s, "cat", &animals.ID)

	meaning := "con mèo"
	updated, err := s.UpdateVocab(ctx, v.ID, domain.VocabPatch{Meaning: &meaning, CategoryID: &food.ID})
	require.NoError(t, err)
	assert.Equal(t, "cat", updated.Word)
	assert.Equal(t, "con mèo", updated.Meaning)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Food", updated.Category.Name)

	none := ""
	updated, err = s.UpdateVocab(ctx, v.ID, domain.VocabPatch{CategoryID: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
	assert.Nil(t, updated.Category)

	missing := "missing"
	_, err = s.UpdateVocab(ctx, v.ID, domain.VocabPatch{CategoryID: &missing})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = s.UpdateVocab(ctx, "missing", domain.VocabPatch{Meaning: &meaning})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestCatalogStore_ListAndFindVocab(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()
	animals := createTestCategory(t, s, "Animals", time.Now())
	food := createTestCategory(t, s, "Food", time.Now())
	cat := createTestVocab(t, s, "cat", &animals.ID)
	createTestVocab(t, s, "rice", &food.ID)
	createTestVocab(t, s, "hello", nil)

	all, err := s.ListVocab(ctx, domain.VocabFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyAnimals, err := s.ListVocab(ctx, domain.VocabFilter{CategoryID: animals.ID})
	require.NoError(t, err)
	require.Len(t, onlyAnimals, 1)
	assert.Equal(t, "cat", onlyAnimals[0].Word)
	require.NotNil(t, onlyAnimals[0].Category)
	assert.Equal(t, "Animals", onlyAnimals[0].Category.Name)

	found, err := s.FindVocabs(ctx, []string{cat.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, cat.ID, found[0].ID)

	none, err := s.FindVocabs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	total, err := s.CountVocab(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestCatalogStore_DeleteVocab(t *testing.T) {
	_, s := setupCatalog(t)
	ctx := context.Background()
	v := createTestVocab(t, s, "cat", nil)

	require.NoError(t, s.DeleteVocab(ctx, v.ID))
	_, err := s.FindVocab(ctx, v.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	err = s.DeleteVocab(ctx, v.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
