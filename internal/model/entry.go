package model

import (
	"github.com/daybookhq/journal-sync-service/pkg/timex"
)

const TableNameEntry = "entry"

// Entry is the persisted journal entry row. Timestamps that belong to the
// document (date, lastModified, deletedDate) are stored as unix
// milliseconds the way the web client writes them; row bookkeeping uses
// timex.Time.
type Entry struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID          int64      `gorm:"column:uid;not null;index:idx_entry_uid,priority:1" json:"uid" form:"uid"`
	Title        string     `gorm:"column:title;not null" json:"title" form:"title"`
	Content      string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Tags         string     `gorm:"column:tags;type:text" json:"tags" form:"tags"` // JSON array // JSON 数组
	VideoLink    string     `gorm:"column:video_link" json:"videoLink" form:"videoLink"`
	MediaKind    string     `gorm:"column:media_kind" json:"mediaKind" form:"mediaKind"`
	MediaData    string     `gorm:"column:media_data;type:text" json:"mediaData" form:"mediaData"`
	MediaURL     string     `gorm:"column:media_url" json:"mediaUrl" form:"mediaUrl"`
	Date         int64      `gorm:"column:date;not null;index:idx_entry_uid,priority:2" json:"date" form:"date"`
	LastModified int64      `gorm:"column:last_modified;not null" json:"lastModified" form:"lastModified"`
	Deleted      bool       `gorm:"column:deleted;default:false;index:idx_entry_deleted" json:"deleted" form:"deleted"`
	DeletedDate  int64      `gorm:"column:deleted_date;default:0" json:"deletedDate" form:"deletedDate"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Entry's table name
func (*Entry) TableName() string {
	return TableNameEntry
}
