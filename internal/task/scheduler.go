// Package task 提供后台定时任务调度
package task

import (
	"context"
	"time"

	pkglogger "github.com/daybookhq/journal-sync-service/pkg/logger"
	"github.com/daybookhq/journal-sync-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器，任务生命周期挂接到 safe_close 上
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("scheduler idle, no background tasks registered")
		return
	}

	s.logger.Info("scheduler starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// runOnce 执行一轮任务，带 panic 兜底和耗时统计
func (s *Scheduler) runOnce(task Task, trigger string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("task", task.Name()),
				zap.String("trigger", trigger),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	start := time.Now()
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task failed",
			zap.String("task", task.Name()),
			zap.String("trigger", trigger),
			zap.Error(err))
		return
	}
	s.logger.Info("task completed",
		zap.String("task", task.Name()),
		zap.String("trigger", trigger),
		zap.Duration(pkglogger.FieldDuration, time.Since(start)))
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if task.IsStartupRun() {
			go s.runOnce(task, "startup")
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(task, "interval")
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("task", task.Name()))
				return
			}
		}
	})
}
