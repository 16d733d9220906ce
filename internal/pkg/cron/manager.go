package cron

import (
	"Tianji/internal/api/config"
	"Tianji/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	fortuneBatchJob *job.FortuneBatchJob
	matchBatchJob   *job.MatchBatchJob
}

func NewCronManager(fortuneBatchJob *job.FortuneBatchJob, matchBatchJob *job.MatchBatchJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		fortuneBatchJob: fortuneBatchJob,
		matchBatchJob:   matchBatchJob,
	}
}

// RegisterJobs 注册定时任务，表达式走配置，默认凌晨错峰跑批
func (s *Manager) RegisterJobs() error {
	fortuneSpec := config.Cfg.Cron.FortuneSpec
	if fortuneSpec == "" {
		fortuneSpec = "0 0 5 * * *"
	}
	if _, err := s.engine.AddJob(fortuneSpec, s.fortuneBatchJob); err != nil {
		return err
	}

	matchSpec := config.Cfg.Cron.MatchSpec
	if matchSpec == "" {
		matchSpec = "0 30 5 * * *"
	}
	if _, err := s.engine.AddJob(matchSpec, s.matchBatchJob); err != nil {
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
