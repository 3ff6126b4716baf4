package dao

import (
	"context"
	"testing"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "journal_",
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	return New(db)
}

func testEntry(uid int64, date time.Time) *domain.Entry {
	return domain.Normalize(0, uid, &domain.RawDocument{
		Title:        "A day",
		Content:      "wrote some code",
		Tags:         []string{"#work"},
		Date:         date.UnixMilli(),
		LastModified: date.UnixMilli(),
	})
}

func TestEntryRepositoryCreateAndGet(t *testing.T) {
	repo := NewEntryRepository(newTestDao(t))
	ctx := context.Background()
	date := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

	created, err := repo.Create(ctx, testEntry(1, date), 1)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A day", got.Title)
	assert.Equal(t, []string{"#work"}, got.Tags)
	assert.Equal(t, date, got.Date)
	assert.False(t, got.Deleted)
	assert.Nil(t, got.DeletedDate)

	// another user cannot see it
	got, err = repo.GetByID(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryRepositoryUpdate(t *testing.T) {
	repo := NewEntryRepository(newTestDao(t))
	ctx := context.Background()
	date := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

	created, err := repo.Create(ctx, testEntry(1, date), 1)
	require.NoError(t, err)

	created.Title = "An updated day"
	created.Tags = []string{"#work", "#play"}
	created.LastModified = date.Add(time.Hour)

	updated, err := repo.Update(ctx, created, 1)
	require.NoError(t, err)
	assert.Equal(t, "An updated day", updated.Title)
	assert.Equal(t, []string{"#work", "#play"}, updated.Tags)
	assert.Equal(t, date.Add(time.Hour), updated.LastModified)
}

func TestEntryRepositoryTrashRestorePurge(t *testing.T) {
	repo := NewEntryRepository(newTestDao(t))
	ctx := context.Background()
	date := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

	created, err := repo.Create(ctx, testEntry(1, date), 1)
	require.NoError(t, err)

	deletedAt := date.Add(24 * time.Hour)
	require.NoError(t, repo.UpdateTrash(ctx, created.ID, 1, deletedAt.UnixMilli()))

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	require.NotNil(t, got.DeletedDate)
	assert.Equal(t, deletedAt, *got.DeletedDate)

	trashed, err := repo.ListTrashed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, trashed, 1)

	active, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, active, 0)

	require.NoError(t, repo.UpdateRestore(ctx, created.ID, 1))
	got, err = repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.False(t, got.Deleted)
	assert.Nil(t, got.DeletedDate)

	// trash again and purge by cutoff
	require.NoError(t, repo.UpdateTrash(ctx, created.ID, 1, deletedAt.UnixMilli()))
	n, err := repo.DeletePhysicalByTimeAll(ctx, deletedAt.Add(time.Hour).UnixMilli())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryRepositoryListAllOrder(t *testing.T) {
	repo := NewEntryRepository(newTestDao(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, testEntry(1, base.AddDate(0, 0, i)), 1)
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.True(t, all[0].Date.After(all[1].Date))
	assert.True(t, all[1].Date.After(all[2].Date))

	count, err := repo.CountByUID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
