package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/config"
	"github.com/mamadbah2/manea/internal/service/dashboard"
)

// Scheduler manages scheduled tasks. It only runs read-side reporting; the
// alerting rules always run synchronously inside entity writes.
type Scheduler struct {
	cron         *cron.Cron
	dashboardSvc *dashboard.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, dashboardSvc *dashboard.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		dashboardSvc: dashboardSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the nightly herd report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.storeHerdReport)
	if err != nil {
		s.logger.Error("failed to schedule herd report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) storeHerdReport() {
	s.logger.Info("generating herd report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.dashboardSvc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to store herd report", zap.Error(err))
		return
	}

	s.logger.Info("herd report generated", zap.String("report_date", report.ReportDate))
}
