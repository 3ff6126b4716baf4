package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/model"
	"github.com/daybookhq/journal-sync-service/pkg/timex"

	"gorm.io/gorm"
)

// entryRepository 实现 domain.EntryRepository 接口
type entryRepository struct {
	dao *Dao
}

// NewEntryRepository 创建 EntryRepository 实例
func NewEntryRepository(dao *Dao) domain.EntryRepository {
	return &entryRepository{dao: dao}
}

func (r *entryRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.Db.WithContext(ctx).Model(&model.Entry{})
}

// toDomain rebuilds the canonical entry from a row. Rows pass through the
// same normalizer as synced documents so there is a single code path.
func (r *entryRepository) toDomain(m *model.Entry) *domain.Entry {
	if m == nil {
		return nil
	}

	var tags []string
	if m.Tags != "" {
		_ = json.Unmarshal([]byte(m.Tags), &tags)
	}

	entry := domain.Normalize(m.ID, m.UID, &domain.RawDocument{
		Title:        m.Title,
		Content:      m.Content,
		Tags:         tags,
		VideoLink:    m.VideoLink,
		MediaType:    m.MediaKind,
		MediaData:    m.MediaData,
		MediaURL:     m.MediaURL,
		Date:         m.Date,
		LastModified: m.LastModified,
		Deleted:      m.Deleted,
		DeletedDate:  m.DeletedDate,
	})
	entry.CreatedAt = time.Time(m.CreatedAt)
	entry.UpdatedAt = time.Time(m.UpdatedAt)
	return entry
}

// toModel 将领域模型转换为数据库模型
func (r *entryRepository) toModel(entry *domain.Entry) *model.Entry {
	if entry == nil {
		return nil
	}

	raw := domain.Denormalize(entry)
	tags, _ := json.Marshal(raw.Tags)

	return &model.Entry{
		ID:           entry.ID,
		UID:          entry.UID,
		Title:        raw.Title,
		Content:      raw.Content,
		Tags:         string(tags),
		VideoLink:    raw.VideoLink,
		MediaKind:    raw.MediaType,
		MediaData:    raw.MediaData,
		MediaURL:     raw.MediaURL,
		Date:         raw.Date,
		LastModified: raw.LastModified,
		Deleted:      raw.Deleted,
		DeletedDate:  raw.DeletedDate,
		CreatedAt:    timex.Time(entry.CreatedAt),
		UpdatedAt:    timex.Time(entry.UpdatedAt),
	}
}

func (r *entryRepository) toDomainList(ms []*model.Entry) []*domain.Entry {
	out := make([]*domain.Entry, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

func (r *entryRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Entry, error) {
	var m model.Entry
	err := r.db(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *entryRepository) Create(ctx context.Context, entry *domain.Entry, uid int64) (*domain.Entry, error) {
	m := r.toModel(entry)
	m.UID = uid
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *entryRepository) Update(ctx context.Context, entry *domain.Entry, uid int64) (*domain.Entry, error) {
	m := r.toModel(entry)
	m.UpdatedAt = timex.Now()

	err := r.db(ctx).
		Where("id = ? AND uid = ?", entry.ID, uid).
		Select("title", "content", "tags", "video_link", "media_kind", "media_data", "media_url",
			"date", "last_modified", "deleted", "deleted_date", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, entry.ID, uid)
}

func (r *entryRepository) UpdateTrash(ctx context.Context, id, uid int64, deletedDate int64) error {
	return r.db(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"deleted":      true,
			"deleted_date": deletedDate,
			"updated_at":   timex.Now(),
		}).Error
}

func (r *entryRepository) UpdateRestore(ctx context.Context, id, uid int64) error {
	return r.db(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"deleted":      false,
			"deleted_date": 0,
			"updated_at":   timex.Now(),
		}).Error
}

func (r *entryRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.db(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&model.Entry{}).Error
}

func (r *entryRepository) ListAll(ctx context.Context, uid int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	err := r.db(ctx).Where("uid = ?", uid).Order("date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *entryRepository) ListActive(ctx context.Context, uid int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	err := r.db(ctx).Where("uid = ? AND deleted = ?", uid, false).Order("date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *entryRepository) ListTrashed(ctx context.Context, uid int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	err := r.db(ctx).Where("uid = ? AND deleted = ?", uid, true).Order("deleted_date DESC, id DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *entryRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.db(ctx).Where("uid = ?", uid).Count(&count).Error
	return count, err
}

func (r *entryRepository) DeletePhysicalByTimeAll(ctx context.Context, timestamp int64) (int64, error) {
	result := r.db(ctx).
		Where("deleted = ? AND deleted_date > 0 AND deleted_date < ?", true, timestamp).
		Delete(&model.Entry{})
	return result.RowsAffected, result.Error
}
