package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/flickerreport/internal/service"
)

type Scheduler struct {
	s             gocron.Scheduler
	reportService *service.ReportService
	sendMessage   func(string) error
	crontab       string
}

// NewScheduler builds a scheduler that delivers the weekly report on the
// given standard cron schedule.
func NewScheduler(reportService *service.ReportService, sendMessage func(string) error, crontab string) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago")
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:             s,
		reportService: reportService,
		sendMessage:   sendMessage,
		crontab:       crontab,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.crontab, false),
		gocron.NewTask(s.sendReport),
	)
	if err != nil {
		return fmt.Errorf("failed to create report job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendReport() {
	rendered, err := s.reportService.GenerateReport()
	if err != nil {
		slog.Error("Failed to generate report", "error", err)
		return
	}
	if err := s.sendMessage(rendered); err != nil {
		slog.Error("Failed to deliver report", "error", err)
	}
}
