package cron

import (
	"Splintr/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	engagementSyncJob  *job.EngagementSyncJob
	velocityRollupJob  *job.VelocityRollupJob
	authorityRollupJob *job.AuthorityRollupJob
	exposurePruneJob   *job.ExposurePruneJob
}

func NewCronManager(
	engagementSyncJob *job.EngagementSyncJob,
	velocityRollupJob *job.VelocityRollupJob,
	authorityRollupJob *job.AuthorityRollupJob,
	exposurePruneJob *job.ExposurePruneJob,
) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		engagementSyncJob:  engagementSyncJob,
		velocityRollupJob:  velocityRollupJob,
		authorityRollupJob: authorityRollupJob,
		exposurePruneJob:   exposurePruneJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 播放计数高频刷库，热度和信誉低频重算
	if _, err := s.engine.AddJob("0 * * * * *", s.engagementSyncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 */10 * * * *", s.velocityRollupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.authorityRollupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.exposurePruneJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
