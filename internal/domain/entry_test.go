package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilPurge(t *testing.T) {
	retention := 720 * time.Hour // 30 days
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	deletedAt := now.Add(-5 * 24 * time.Hour)
	e := &Entry{Deleted: true, DeletedDate: &deletedAt}
	assert.Equal(t, 25, e.DaysUntilPurge(now, retention))

	// partial days floor toward more time left
	deletedAt = now.Add(-5*24*time.Hour - 12*time.Hour)
	assert.Equal(t, 25, e.DaysUntilPurge(now, retention))

	// past the window clamps at zero
	deletedAt = now.Add(-45 * 24 * time.Hour)
	assert.Equal(t, 0, e.DaysUntilPurge(now, retention))

	// active entries report the full window
	active := &Entry{}
	assert.Equal(t, 30, active.DaysUntilPurge(now, retention))
}

func TestUserLocation(t *testing.T) {
	u := &User{Timezone: "America/New_York"}
	assert.Equal(t, "America/New_York", u.Location().String())

	u = &User{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, u.Location())

	u = &User{}
	assert.Equal(t, time.UTC, u.Location())
}
