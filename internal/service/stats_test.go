package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vocab_system/internal/domain"
	"vocab_system/internal/store"
	"vocab_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStatsService_AdminStats(t *testing.T) {
	gdb := testutil.NewTestDB(t)
	ctx := context.Background()
	catalogStore := store.NewCatalogStore(gdb)
	ledgerStore := store.NewLedgerStore(gdb)
	userStore := store.NewUserStore(gdb)

	catalog := NewCatalogService(catalogStore)
	study := NewStudyService(ledgerStore, catalogStore)

	animals, err := catalog.CreateCategory(ctx, domain.CategoryInput{Name: "Animals", BackgroundImage: "img://a"})
	require.NoError(t, err)
	_, err = catalog.CreateCategory(ctx, domain.CategoryInput{Name: "Food", BackgroundImage: "img://f"})
	require.NoError(t, err)
	cat, err := catalog.CreateVocab(ctx, domain.VocabInput{Word: "cat", Meaning: "con meo", CategoryID: animals.ID})
	require.NoError(t, err)
	_, err = study.SaveWord(ctx, "u1", cat.ID)
	require.NoError(t, err)

	registrations := []time.Time{
		time.Date(2026, time.September, 30, 23, 0, 0, 0, time.UTC),
		time.Date(2026, time.October, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2026, time.October, 2, 17, 30, 0, 0, time.UTC),
		time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC),
	}
	i := 0
	users := NewUserService(userStore, testSecret, time.Hour, bcrypt.MinCost).WithClock(func() time.Time {
		now := registrations[i]
		i++
		return now
	})
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"} {
		_, _, err := users.Register(ctx, RegisterInput{Name: email, Email: email, Password: "password123"})
		require.NoError(t, err)
	}

	svc := NewStatsService(catalogStore, ledgerStore, userStore).WithClock(func() time.Time { return baseTime })
	stats, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCategories)
	assert.Equal(t, int64(1), stats.TotalVocab)
	assert.Equal(t, int64(1), stats.TotalSavedWords)
	assert.Equal(t, "2026-10", stats.CurrentMonth)
	assert.Equal(t, []domain.DayCount{{Day: 2, Count: 2}, {Day: 15, Count: 1}}, stats.UserStats)
}

func TestStatsService_EmptyMonth(t *testing.T) {
	gdb := testutil.NewTestDB(t)
	catalogStore := store.NewCatalogStore(gdb)

	svc := NewStatsService(catalogStore, store.NewLedgerStore(gdb), store.NewUserStore(gdb))
	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCategories)
	assert.NotNil(t, stats.UserStats)
	assert.Empty(t, stats.UserStats)
}

func TestStatsService_StorageFailure(t *testing.T) {
	ledger := new(testutil.MockLedger)
	gdb := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := domain.Storage("count saved words", errors.New("connection refused"))
	ledger.On("Count", ctx).Return(int64(0), boom)

	svc := NewStatsService(store.NewCatalogStore(gdb), ledger, store.NewUserStore(gdb))
	_, err := svc.AdminStats(ctx)
	assert.ErrorIs(t, err, boom)
	ledger.AssertExpectations(t)
}
