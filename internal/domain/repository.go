// Package domain 定义领域模型和接口
package domain

import "context"

// EntryRepository 条目仓储接口
type EntryRepository interface {
	// GetByID 根据ID获取条目
	GetByID(ctx context.Context, id, uid int64) (*Entry, error)

	// Create 创建条目
	Create(ctx context.Context, entry *Entry, uid int64) (*Entry, error)

	// Update 更新条目
	Update(ctx context.Context, entry *Entry, uid int64) (*Entry, error)

	// UpdateTrash 更新条目为回收站状态
	UpdateTrash(ctx context.Context, id, uid int64, deletedDate int64) error

	// UpdateRestore 将条目移出回收站
	UpdateRestore(ctx context.Context, id, uid int64) error

	// Delete 物理删除条目
	Delete(ctx context.Context, id, uid int64) error

	// ListAll 获取用户全部条目（含回收站），按 date 倒序
	ListAll(ctx context.Context, uid int64) ([]*Entry, error)

	// ListActive 获取用户未删除条目
	ListActive(ctx context.Context, uid int64) ([]*Entry, error)

	// ListTrashed 获取用户回收站条目
	ListTrashed(ctx context.Context, uid int64) ([]*Entry, error)

	// CountByUID 获取用户条目数量
	CountByUID(ctx context.Context, uid int64) (int64, error)

	// DeletePhysicalByTimeAll 物理删除所有用户在指定时间之前放入回收站的条目
	DeletePhysicalByTimeAll(ctx context.Context, timestamp int64) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, uid int64, password string) error

	// UpdateTimezone 更新用户时区
	UpdateTimezone(ctx context.Context, uid int64, timezone string) error
}
