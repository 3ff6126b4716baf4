package task

import (
	"context"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/app"

	"go.uber.org/zap"
)

// TrashPurgeTask 定期物理删除超过保留期的回收站条目
type TrashPurgeTask struct {
	app      *app.App
	interval time.Duration
	logger   *zap.Logger
}

func init() {
	Register(func(appContainer *app.App) (Task, error) {
		return NewTrashPurgeTask(appContainer)
	})
}

// NewTrashPurgeTask 创建 TrashPurgeTask 实例
// 保留时长未配置时任务被禁用
func NewTrashPurgeTask(appContainer *app.App) (Task, error) {
	if appContainer.Config().GetTrashRetention() <= 0 {
		return nil, nil
	}
	return &TrashPurgeTask{
		app:      appContainer,
		interval: appContainer.Config().GetTrashPurgeInterval(),
		logger:   appContainer.Logger(),
	}, nil
}

// Name 任务名称
func (t *TrashPurgeTask) Name() string {
	return "trash_purge"
}

// LoopInterval 执行间隔
func (t *TrashPurgeTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时先执行一次
func (t *TrashPurgeTask) IsStartupRun() bool {
	return true
}

// Run 执行清理
func (t *TrashPurgeTask) Run(ctx context.Context) error {
	n, err := t.app.EntryService.CleanupAll(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.Info("trash purge completed", zap.Int64("purged", n))
	}
	return nil
}
