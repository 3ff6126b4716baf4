package service

import (
	"testing"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(id int64, title string, date time.Time, tags ...string) *domain.Entry {
	return domain.Normalize(id, 1, &domain.RawDocument{
		Title:        title,
		Content:      "content of " + title,
		Tags:         tags,
		Date:         date.UnixMilli(),
		LastModified: date.UnixMilli(),
	})
}

func TestProjectListOrdersNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.Entry{
		entryAt(1, "oldest", base),
		entryAt(2, "newest", base.AddDate(0, 0, 2)),
		entryAt(3, "middle", base.AddDate(0, 0, 1)),
	}

	got := ProjectList(entries, "", SortNewest)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestProjectListOldestFirstToggle(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.Entry{
		entryAt(1, "oldest", base),
		entryAt(2, "newest", base.AddDate(0, 0, 2)),
		entryAt(3, "middle", base.AddDate(0, 0, 1)),
	}

	got := ProjectList(entries, "", SortOldest)
	require.Len(t, got, 3)
	assert.Equal(t, "oldest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "newest", got[2].Title)
}

func TestProjectListStableOnReprojection(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.Entry{
		entryAt(3, "c", base),
		entryAt(1, "a", base), // same date, order must stay deterministic
		entryAt(2, "b", base.AddDate(0, 0, 1)),
	}

	first := ProjectList(entries, "", SortNewest)
	second := ProjectList(first, "", SortNewest)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "position %d changed on re-projection", i)
	}
}

func TestProjectListSearch(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.Entry{
		entryAt(1, "Hiking trip", base, "#outdoors"),
		entryAt(2, "Grocery run", base.AddDate(0, 0, 1)),
		entryAt(3, "Work notes", base.AddDate(0, 0, 2), "#work"),
	}

	got := ProjectList(entries, "HIKING", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// tag search
	got = ProjectList(entries, "#work", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	// content search
	got = ProjectList(entries, "content of grocery", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	got = ProjectList(entries, "nothing matches this", SortNewest)
	assert.Len(t, got, 0)
}

func TestProjectListSkipsTrashed(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	trashed := domain.Normalize(2, 1, &domain.RawDocument{
		Title:        "gone",
		Date:         base.UnixMilli(),
		LastModified: base.UnixMilli(),
		Deleted:      true,
		DeletedDate:  base.UnixMilli(),
	})
	entries := []*domain.Entry{entryAt(1, "kept", base), trashed}

	got := ProjectList(entries, "", SortNewest)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Title)
}

func TestProjectCalendarDayBoundary(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2025-06-16 03:30 UTC is still 2025-06-15 23:30 in New York
	lateEvening := time.Date(2025, 6, 16, 3, 30, 0, 0, time.UTC)
	// 2025-06-16 04:30 UTC is 2025-06-16 00:30 in New York
	earlyMorning := time.Date(2025, 6, 16, 4, 30, 0, 0, time.UTC)

	entries := []*domain.Entry{
		entryAt(1, "late evening", lateEvening),
		entryAt(2, "early morning", earlyMorning),
	}

	buckets := ProjectCalendar(entries, 2025, time.June, ny)
	require.Len(t, buckets, 2)
	require.Len(t, buckets["2025-06-15"], 1)
	assert.Equal(t, "late evening", buckets["2025-06-15"][0].Title)
	require.Len(t, buckets["2025-06-16"], 1)
	assert.Equal(t, "early morning", buckets["2025-06-16"][0].Title)

	// same instants bucket onto one UTC day
	utcBuckets := ProjectCalendar(entries, 2025, time.June, time.UTC)
	require.Len(t, utcBuckets, 1)
	assert.Len(t, utcBuckets["2025-06-16"], 2)
}

func TestProjectDay(t *testing.T) {
	loc := time.UTC
	base := time.Date(2025, 6, 15, 9, 0, 0, 0, loc)
	entries := []*domain.Entry{
		entryAt(1, "on the day", base),
		entryAt(2, "same day later", base.Add(8*time.Hour)),
		entryAt(3, "next day", base.AddDate(0, 0, 1)),
	}

	day := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)
	got := ProjectDay(entries, day, loc)
	require.Len(t, got, 2)
}

func TestProjectTrashOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mk := func(id int64, deletedAt time.Time) *domain.Entry {
		return domain.Normalize(id, 1, &domain.RawDocument{
			Title:        "t",
			Date:         base.UnixMilli(),
			LastModified: base.UnixMilli(),
			Deleted:      true,
			DeletedDate:  deletedAt.UnixMilli(),
		})
	}
	entries := []*domain.Entry{
		mk(1, base.AddDate(0, 0, 1)),
		mk(2, base.AddDate(0, 0, 5)),
		entryAt(3, "active", base),
	}

	got := ProjectTrash(entries)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}
