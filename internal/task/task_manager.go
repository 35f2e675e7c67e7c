package task

import (
	"github.com/cropchain/sync-service/internal/config"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/sync"
	"github.com/go-co-op/gocron/v2"
)

// TaskManager 任务管理器
type TaskManager struct {
	scheduler gocron.Scheduler
	syncer    *sync.Syncer
	config    *config.Config
}

// NewTaskManager 创建新的任务管理器
func NewTaskManager(syncer *sync.Syncer, cfg *config.Config) *TaskManager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &TaskManager{
		scheduler: s,
		syncer:    syncer,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(syncer *sync.Syncer, cfg *config.Config) *TaskManager {
	manager := NewTaskManager(syncer, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *TaskManager) RegisterJobs() {
	// 注册批量同步任务
	m.RegisterSyncJob()
}

// RegisterSyncJob 注册批量同步任务
func (m *TaskManager) RegisterSyncJob() {
	job := NewSyncJob(m.syncer, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *TaskManager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
