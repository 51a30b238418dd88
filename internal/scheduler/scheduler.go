package scheduler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"drubez-planner/internal/config"
	"drubez-planner/internal/service/plan"
)

type ReportGenerator interface {
	GenerateExcel(ctx context.Context, params plan.Params) ([]byte, error)
}

// Scheduler по вечерам складывает отчёт дня на диск — утром его забирает
// экономка, даже если никто не жал кнопку в интерфейсе.
type Scheduler struct {
	cron    *cron.Cron
	reports ReportGenerator
	cfg     config.Config
	log     *slog.Logger
}

func NewScheduler(cfg config.Config, reports ReportGenerator, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		reports: reports,
		cfg:     cfg,
		log:     log,
	}
}

func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(s.cfg.Planner.ReportCron, s.generateDailyReport)
	if err != nil {
		s.log.Error("failed to schedule daily report", slog.String("error", err.Error()))
		return
	}

	s.cron.Start()
	s.log.Info("scheduler started", slog.String("cron", s.cfg.Planner.ReportCron))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) generateDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	date := time.Now().Format("2006-01-02")

	data, err := s.reports.GenerateExcel(ctx, plan.Params{
		Date:             date,
		LineSpeedPerHour: s.cfg.Planner.LineSpeedPerHour,
		StartTime:        s.cfg.Planner.StartTime,
	})
	if err != nil {
		s.log.Error("failed to generate daily report", slog.String("date", date), slog.String("error", err.Error()))
		return
	}

	if err := os.MkdirAll(s.cfg.Planner.ReportDir, 0o755); err != nil {
		s.log.Error("failed to create report dir", slog.String("error", err.Error()))
		return
	}

	path := filepath.Join(s.cfg.Planner.ReportDir, "plan-"+date+".xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Error("failed to write daily report", slog.String("path", path), slog.String("error", err.Error()))
		return
	}

	s.log.Info("daily report written", slog.String("path", path))
}
