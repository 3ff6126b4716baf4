// Package service 实现业务逻辑层
package service

import (
	"time"

	"github.com/daybookhq/journal-sync-service/pkg/app"
	"github.com/daybookhq/journal-sync-service/pkg/storage"
)

// ServiceConfig carries the knobs services need, injected from the app
// config so services never read global state.
type ServiceConfig struct {
	// Timezone 默认时区，用户未设置时区时的日历口径
	Timezone string

	// TrashRetention 回收站保留时长
	TrashRetention time.Duration

	// MediaMaxSize 媒体文件上传硬上限（字节）
	MediaMaxSize int64

	// MediaInlineLimit 音频内联存储上限（字节）
	MediaInlineLimit int64

	// ImageTargetSize 图片压缩目标大小（字节）
	ImageTargetSize int64

	// ImageMaxWidth 图片最大边长（像素）
	ImageMaxWidth int

	// StorageType 附件外部存储类型，inline 表示仅内联
	StorageType storage.Type

	// TokenConfig 令牌配置
	TokenConfig app.TokenConfig
}

// Location resolves the service default timezone, falling back to UTC.
func (c *ServiceConfig) Location() *time.Location {
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// RetentionDays 回收站保留天数
func (c *ServiceConfig) RetentionDays() int {
	if c.TrashRetention <= 0 {
		return 30
	}
	return int(c.TrashRetention.Hours() / 24)
}
