package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/reporting"
)

// Scheduler runs the daily inventory alert sweep.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.SchedulerConfig
	logger       *logrus.Logger
}

func NewScheduler(cfg config.SchedulerConfig, reportingSvc *reporting.Service, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	_, err := s.cron.AddFunc(s.cfg.AlertSchedule, func() {
		s.reportingSvc.LogAlertCounts(time.Now())
	})
	if err != nil {
		s.logger.Error("failed to schedule inventory alert sweep: ", err)
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}
