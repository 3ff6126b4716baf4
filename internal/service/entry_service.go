package service

import (
	"context"
	"strings"
	"time"

	"github.com/daybookhq/journal-sync-service/global"
	"github.com/daybookhq/journal-sync-service/internal/domain"
	"github.com/daybookhq/journal-sync-service/internal/dto"
	"github.com/daybookhq/journal-sync-service/internal/syncstore"
	"github.com/daybookhq/journal-sync-service/pkg/code"
	"github.com/daybookhq/journal-sync-service/pkg/logger"
	"github.com/daybookhq/journal-sync-service/pkg/util"

	"go.uber.org/zap"
)

// EntryService 定义日记条目业务服务接口
type EntryService interface {
	// Get 获取单条条目
	Get(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error)

	// Create 创建条目；返回值第二项表示媒体因超限被丢弃
	Create(ctx context.Context, uid int64, params *dto.EntryModifyOrCreateRequest) (*dto.EntryDTO, bool, error)

	// Update 修改条目
	Update(ctx context.Context, uid int64, params *dto.EntryModifyOrCreateRequest) (*dto.EntryDTO, bool, error)

	// Trash 将条目移入回收站
	Trash(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error)

	// Restore 将条目移出回收站
	Restore(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error)

	// Purge 物理删除条目
	Purge(ctx context.Context, uid int64, id int64) error

	// List 列表视图
	List(ctx context.Context, uid int64, params *dto.EntryListRequest) ([]*dto.EntryDTO, error)

	// Calendar 日历视图：某月每天的条目数
	Calendar(ctx context.Context, uid int64, params *dto.CalendarRequest, loc *time.Location) ([]*dto.CalendarDayDTO, error)

	// CalendarDay 日历视图：某天的全部条目
	CalendarDay(ctx context.Context, uid int64, params *dto.CalendarDayRequest, loc *time.Location) ([]*dto.EntryDTO, error)

	// Trashed 回收站视图，附带剩余天数
	Trashed(ctx context.Context, uid int64) ([]*dto.EntryDTO, error)

	// Snapshot 全量条目快照（同步通道使用）
	Snapshot(ctx context.Context, uid int64) ([]*dto.EntryDTO, error)

	// CleanupAll 物理删除所有用户超过保留期的回收站条目
	CleanupAll(ctx context.Context) (int64, error)
}

// entryService 实现 EntryService 接口
type entryService struct {
	repo     domain.EntryRepository
	notifier *syncstore.Notifier
	config   *ServiceConfig
}

// NewEntryService 创建 EntryService 实例
func NewEntryService(repo domain.EntryRepository, notifier *syncstore.Notifier, config *ServiceConfig) EntryService {
	return &entryService{
		repo:     repo,
		notifier: notifier,
		config:   config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *entryService) domainToDTO(e *domain.Entry) *dto.EntryDTO {
	if e == nil {
		return nil
	}
	return dto.NewEntryDTO(e, util.VideoEmbedURL(e.VideoLink))
}

func (s *entryService) domainToDTOList(entries []*domain.Entry) []*dto.EntryDTO {
	out := make([]*dto.EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.domainToDTO(e))
	}
	return out
}

// validate checks the fields the binding layer cannot fully cover.
func (s *entryService) validate(params *dto.EntryModifyOrCreateRequest) error {
	if strings.TrimSpace(params.Title) == "" {
		return code.ErrorEntryTitleRequired
	}
	if strings.TrimSpace(params.Content) == "" {
		return code.ErrorEntryContentRequired
	}
	if params.VideoLink != "" && !util.IsValidVideoLink(params.VideoLink) {
		return code.ErrorInvalidVideoLink
	}
	for _, tag := range params.Tags {
		if !strings.HasPrefix(tag, "#") || len(tag) < 2 {
			return code.ErrorInvalidTag.WithDetails(tag)
		}
	}
	return nil
}

// applyMediaPolicy drops media the entry cannot carry instead of failing
// the whole save. Returns true when something was dropped.
func (s *entryService) applyMediaPolicy(uid int64, params *dto.EntryModifyOrCreateRequest) bool {
	if params.MediaType == "" {
		return false
	}
	if params.MediaData == "" && params.MediaURL == "" {
		params.MediaType = ""
		return true
	}
	// 内联数据受文档上限约束，上传硬上限只在上传接口把关
	if params.MediaData != "" && int64(len(params.MediaData)) > s.config.MediaInlineLimit {
		global.Logger.Warn("inline media over limit, dropping",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldMediaKind, params.MediaType),
			zap.Int(logger.FieldSize, len(params.MediaData)))
		params.MediaType = ""
		params.MediaData = ""
		params.MediaURL = ""
		return true
	}
	return false
}

func (s *entryService) Get(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error) {
	entry, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if entry == nil {
		return nil, code.ErrorEntryNotFound
	}
	return s.domainToDTO(entry), nil
}

func (s *entryService) Create(ctx context.Context, uid int64, params *dto.EntryModifyOrCreateRequest) (*dto.EntryDTO, bool, error) {
	if err := s.validate(params); err != nil {
		return nil, false, err
	}
	dropped := s.applyMediaPolicy(uid, params)

	raw := params.ToRawDocument()
	if raw.Date == 0 {
		raw.Date = time.Now().UnixMilli()
	}
	if raw.LastModified == 0 {
		raw.LastModified = raw.Date
	}

	entry := domain.Normalize(0, uid, raw)
	created, err := s.repo.Create(ctx, entry, uid)
	if err != nil {
		return nil, dropped, code.ErrorEntryCreateFailed.WithDetails(err.Error())
	}

	s.notifier.Publish(syncstore.Change{UID: uid, EntryID: created.ID, Action: syncstore.ChangeCreate})
	return s.domainToDTO(created), dropped, nil
}

func (s *entryService) Update(ctx context.Context, uid int64, params *dto.EntryModifyOrCreateRequest) (*dto.EntryDTO, bool, error) {
	if err := s.validate(params); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByID(ctx, params.ID, uid)
	if err != nil {
		return nil, false, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing == nil {
		return nil, false, code.ErrorEntryNotFound
	}

	dropped := s.applyMediaPolicy(uid, params)

	raw := params.ToRawDocument()
	// 创建后日期不可变，修改时间始终由服务端盖章
	raw.Date = existing.Date.UnixMilli()
	raw.LastModified = time.Now().UnixMilli()
	raw.Deleted = existing.Deleted
	if existing.DeletedDate != nil {
		raw.DeletedDate = existing.DeletedDate.UnixMilli()
	}

	entry := domain.Normalize(params.ID, uid, raw)
	updated, err := s.repo.Update(ctx, entry, uid)
	if err != nil {
		return nil, dropped, code.ErrorEntryUpdateFailed.WithDetails(err.Error())
	}

	s.notifier.Publish(syncstore.Change{UID: uid, EntryID: updated.ID, Action: syncstore.ChangeUpdate})
	return s.domainToDTO(updated), dropped, nil
}

func (s *entryService) Trash(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error) {
	existing, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing == nil {
		return nil, code.ErrorEntryNotFound
	}

	if err := s.repo.UpdateTrash(ctx, id, uid, time.Now().UnixMilli()); err != nil {
		return nil, code.ErrorEntryDeleteFailed.WithDetails(err.Error())
	}

	s.notifier.Publish(syncstore.Change{UID: uid, EntryID: id, Action: syncstore.ChangeTrash})
	trashed, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(trashed), nil
}

func (s *entryService) Restore(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error) {
	existing, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing == nil {
		return nil, code.ErrorEntryNotFound
	}

	if err := s.repo.UpdateRestore(ctx, id, uid); err != nil {
		return nil, code.ErrorEntryUpdateFailed.WithDetails(err.Error())
	}

	s.notifier.Publish(syncstore.Change{UID: uid, EntryID: id, Action: syncstore.ChangeRestore})
	restored, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(restored), nil
}

func (s *entryService) Purge(ctx context.Context, uid int64, id int64) error {
	existing, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing == nil {
		return code.ErrorEntryNotFound
	}

	if err := s.repo.Delete(ctx, id, uid); err != nil {
		return code.ErrorEntryDeleteFailed.WithDetails(err.Error())
	}

	s.notifier.Publish(syncstore.Change{UID: uid, EntryID: id, Action: syncstore.ChangePurge})
	return nil
}

func (s *entryService) List(ctx context.Context, uid int64, params *dto.EntryListRequest) ([]*dto.EntryDTO, error) {
	entries, err := s.repo.ListActive(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTOList(ProjectList(entries, params.Keyword, params.Sort)), nil
}

func (s *entryService) Calendar(ctx context.Context, uid int64, params *dto.CalendarRequest, loc *time.Location) ([]*dto.CalendarDayDTO, error) {
	entries, err := s.repo.ListActive(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	buckets := ProjectCalendar(entries, params.Year, time.Month(params.Month), loc)
	out := make([]*dto.CalendarDayDTO, 0, len(buckets))
	for day := 1; day <= 31; day++ {
		key := time.Date(params.Year, time.Month(params.Month), day, 0, 0, 0, 0, loc)
		if int(key.Month()) != params.Month {
			break
		}
		dayKey := key.Format("2006-01-02")
		if bucket, ok := buckets[dayKey]; ok {
			out = append(out, &dto.CalendarDayDTO{
				Date:  dayKey,
				Count: len(bucket),
			})
		}
	}
	return out, nil
}

func (s *entryService) CalendarDay(ctx context.Context, uid int64, params *dto.CalendarDayRequest, loc *time.Location) ([]*dto.EntryDTO, error) {
	day, err := dto.ParseCalendarDate(params.Date, loc)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	entries, err := s.repo.ListActive(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTOList(ProjectDay(entries, day, loc)), nil
}

func (s *entryService) Trashed(ctx context.Context, uid int64) ([]*dto.EntryDTO, error) {
	entries, err := s.repo.ListTrashed(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	now := time.Now()
	out := make([]*dto.EntryDTO, 0, len(entries))
	for _, e := range ProjectTrash(entries) {
		d := s.domainToDTO(e)
		d.DaysLeft = e.DaysUntilPurge(now, s.config.TrashRetention)
		out = append(out, d)
	}
	return out, nil
}

func (s *entryService) Snapshot(ctx context.Context, uid int64) ([]*dto.EntryDTO, error) {
	entries, err := s.repo.ListAll(ctx, uid)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTOList(entries), nil
}

func (s *entryService) CleanupAll(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.config.TrashRetention).UnixMilli()
	n, err := s.repo.DeletePhysicalByTimeAll(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		global.Logger.Info("trash cleanup purged entries", zap.Int64("count", n))
	}
	return n, nil
}
