// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/pkg/convert"
	"github.com/daybookhq/journal-sync-service/pkg/timex"
)

// MediaDTO 附件数据
type MediaDTO struct {
	Kind string `json:"kind"`
	Data string `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
}

// EntryModifyOrCreateRequest 用于创建或修改日记条目的请求参数
type EntryModifyOrCreateRequest struct {
	ID           int64    `json:"id" form:"id"`
	Title        string   `json:"title" form:"title" binding:"required"`
	Content      string   `json:"content" form:"content" binding:"required"`
	Tags         []string `json:"tags" form:"tags"`
	VideoLink    string   `json:"videoLink" form:"videoLink" binding:"omitempty,videolink"`
	MediaType    string   `json:"mediaType" form:"mediaType" binding:"omitempty,oneof=image audio"`
	MediaData    string   `json:"mediaData" form:"mediaData"`
	MediaURL     string   `json:"mediaUrl" form:"mediaUrl"`
	Date         int64    `json:"date" form:"date"`
	LastModified int64    `json:"lastModified" form:"lastModified"`
}

// EntryIDRequest 按条目ID操作的请求参数
type EntryIDRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// EntryListRequest 列表视图请求参数
type EntryListRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
	Sort    string `json:"sort" form:"sort" binding:"omitempty,oneof=newest oldest"`
}

// CalendarRequest 日历视图请求参数
type CalendarRequest struct {
	Year  int `json:"year" form:"year" binding:"required"`
	Month int `json:"month" form:"month" binding:"required,min=1,max=12"`
}

// CalendarDayRequest 日历单日请求参数
type CalendarDayRequest struct {
	Date string `json:"date" form:"date" binding:"required"` // YYYY-MM-DD
}

// EntryDTO 日记条目数据传输对象
type EntryDTO struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Tags          []string   `json:"tags"`
	VideoLink     string     `json:"videoLink,omitempty"`
	VideoEmbedURL string     `json:"videoEmbedUrl,omitempty"`
	Media         *MediaDTO  `json:"media,omitempty"`
	Date          timex.Time `json:"date"`
	LastModified  timex.Time `json:"lastModified"`
	Deleted       bool       `json:"deleted"`
	DeletedDate   timex.Time `json:"deletedDate,omitempty"`
	DaysLeft      int        `json:"daysLeft,omitempty"`
}

// ToRawDocument 转换为标准化输入文档
func (r *EntryModifyOrCreateRequest) ToRawDocument() *domain.RawDocument {
	return convert.StructAssign(r, &domain.RawDocument{}).(*domain.RawDocument)
}

// NewEntryDTO 从领域模型构建 DTO
func NewEntryDTO(e *domain.Entry, embedURL string) *EntryDTO {
	d := &EntryDTO{
		ID:            e.ID,
		Title:         e.Title,
		Content:       e.Content,
		Tags:          e.Tags,
		VideoLink:     e.VideoLink,
		VideoEmbedURL: embedURL,
		Date:          timex.Time(e.Date),
		LastModified:  timex.Time(e.LastModified),
		Deleted:       e.Deleted,
	}
	if e.Media != nil {
		d.Media = &MediaDTO{
			Kind: string(e.Media.Kind),
			Data: e.Media.Data,
			URL:  e.Media.URL,
		}
	}
	if e.DeletedDate != nil {
		d.DeletedDate = timex.Time(*e.DeletedDate)
	}
	return d
}

// CalendarDayDTO 日历视图中的一天
type CalendarDayDTO struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Count   int         `json:"count"`
	Entries []*EntryDTO `json:"entries,omitempty"`
}

// UploadResultDTO 媒体上传结果
type UploadResultDTO struct {
	Kind     string `json:"kind"`
	Inline   bool   `json:"inline"`
	Data     string `json:"data,omitempty"`
	URL      string `json:"url,omitempty"`
	Size     int64  `json:"size"`
	FileName string `json:"fileName"`
}

// ParseCalendarDate 解析 YYYY-MM-DD 到指定时区的零点
func ParseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
