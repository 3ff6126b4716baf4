// Package domain 定义领域模型和接口
package domain

import "time"

// MediaKind 附件类型
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindAudio MediaKind = "audio"
)

// Media is an entry attachment. Data carries inline base64 content, URL
// points at an external storage object; exactly one of the two is set.
type Media struct {
	Kind MediaKind `json:"kind"`
	Data string    `json:"data,omitempty"`
	URL  string    `json:"url,omitempty"`
}

// IsInline 附件是否内联存储
func (m *Media) IsInline() bool {
	return m.Data != ""
}

// Entry 日记条目领域模型
// Entry is the canonical journal entry every consumer works with. It is
// produced by Normalize; code outside this package never builds one from
// raw document fields.
type Entry struct {
	ID           int64
	UID          int64
	Title        string
	Content      string
	Tags         []string
	VideoLink    string
	Media        *Media
	Date         time.Time
	LastModified time.Time
	Deleted      bool
	DeletedDate  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTrashed 判断条目是否在回收站
func (e *Entry) IsTrashed() bool {
	return e.Deleted
}

// HasMedia 判断条目是否携带附件
func (e *Entry) HasMedia() bool {
	return e.Media != nil
}

// DaysUntilPurge returns how many whole days remain before a trashed entry
// is eligible for permanent deletion. Clamped at zero; entries that are not
// trashed return the full retention window.
func (e *Entry) DaysUntilPurge(now time.Time, retention time.Duration) int {
	retentionDays := int(retention.Hours() / 24)
	if !e.Deleted || e.DeletedDate == nil {
		return retentionDays
	}
	elapsed := int(now.Sub(*e.DeletedDate).Hours() / 24)
	left := retentionDays - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// CountSizeResult 统计结果
type CountSizeResult struct {
	Count int64
	Size  int64
}
