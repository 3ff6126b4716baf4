package service

import (
	"sort"
	"strings"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"
)

// Projections are pure functions over an entry snapshot. They never touch
// the repository; handlers feed them the sync store snapshot (or a fresh
// repository read) and render the result.

// 列表排序的两个档位
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// ProjectList filters active entries by keyword and orders them by date,
// newest first unless sortOrder is SortOldest. The sort is stable so
// re-projecting an unchanged snapshot yields an identical order. Keyword
// matches title, content and tags, case insensitively; an empty keyword
// keeps everything.
func ProjectList(entries []*domain.Entry, keyword string, sortOrder string) []*domain.Entry {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	out := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		if keyword != "" && !entryMatches(e, keyword) {
			continue
		}
		out = append(out, e)
	}

	oldest := sortOrder == SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			if oldest {
				return out[i].Date.Before(out[j].Date)
			}
			return out[i].Date.After(out[j].Date)
		}
		if oldest {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func entryMatches(e *domain.Entry, keyword string) bool {
	if strings.Contains(strings.ToLower(e.Title), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Content), keyword) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}

// DayKey formats a timestamp as the calendar bucket key in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ProjectCalendar buckets active entries into local-time days for one
// month. Days without entries are absent from the result. Bucketing uses
// the configured location, so an entry written at 23:30 and one at 00:30
// land on the days a user in that timezone would expect.
func ProjectCalendar(entries []*domain.Entry, year int, month time.Month, loc *time.Location) map[string][]*domain.Entry {
	out := make(map[string][]*domain.Entry)
	for _, e := range ProjectList(entries, "", SortNewest) {
		local := e.Date.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		key := DayKey(e.Date, loc)
		out[key] = append(out[key], e)
	}
	return out
}

// ProjectDay returns the active entries whose date falls on the given
// local-time day. day must be midnight in loc.
func ProjectDay(entries []*domain.Entry, day time.Time, loc *time.Location) []*domain.Entry {
	key := day.In(loc).Format("2006-01-02")
	out := make([]*domain.Entry, 0)
	for _, e := range ProjectList(entries, "", SortNewest) {
		if DayKey(e.Date, loc) == key {
			out = append(out, e)
		}
	}
	return out
}

// ProjectTrash orders trashed entries by deletion time, most recent
// first.
func ProjectTrash(entries []*domain.Entry) []*domain.Entry {
	out := make([]*domain.Entry, 0)
	for _, e := range entries {
		if e.Deleted {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if out[i].DeletedDate != nil {
			di = *out[i].DeletedDate
		}
		if out[j].DeletedDate != nil {
			dj = *out[j].DeletedDate
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
