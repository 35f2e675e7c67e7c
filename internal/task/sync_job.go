package task

import (
	"context"
	"time"

	"github.com/cropchain/sync-service/internal/config"
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/cropchain/sync-service/internal/sync"
	"github.com/go-co-op/gocron/v2"
)

// SyncJob 定时批量同步任务
type SyncJob struct {
	syncer *sync.Syncer
	config *config.Config
}

// NewSyncJob 创建批量同步任务
func NewSyncJob(syncer *sync.Syncer, cfg *config.Config) *SyncJob {
	return &SyncJob{
		syncer: syncer,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *SyncJob) GetName() string {
	return "ledger_sync"
}

// GetSchedule 获取调度配置
func (j *SyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Sync.Interval) * time.Second)
}

// Execute 执行任务
func (j *SyncJob) Execute() {
	summary, err := j.syncer.Run(context.Background())
	if err != nil {
		logger.Error("Scheduled sync run failed: %v", err)
		return
	}
	if summary.Failed > 0 {
		logger.Warn("Scheduled sync finished with %d failures", summary.Failed)
	}
}
