package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarshaarawi/flickerreport/internal/api/platform"
	"github.com/omarshaarawi/flickerreport/internal/models"
	"github.com/omarshaarawi/flickerreport/internal/report"
	"github.com/omarshaarawi/flickerreport/internal/repository/memory"
)

// how long a saved snapshot keeps serving bot commands before a fresh
// populate is forced
const snapshotTTL = 6 * time.Hour

type ReportService struct {
	adapter platform.Adapter
	repo    *memory.Repository
	builder *report.Builder

	startWeek     int
	weekForReport int
}

func NewReportService(adapter platform.Adapter, repo *memory.Repository, builder *report.Builder, startWeek, weekForReport int) *ReportService {
	return &ReportService{
		adapter:       adapter,
		repo:          repo,
		builder:       builder,
		startWeek:     startWeek,
		weekForReport: weekForReport,
	}
}

// GenerateReport runs the full pipeline: populate the league, build the
// tables and awards, render, and save the snapshot.
func (s *ReportService) GenerateReport() (string, error) {
	started := time.Now()

	league, err := s.adapter.Populate(s.startWeek, s.weekForReport)
	if err != nil {
		return "", fmt.Errorf("error populating league: %w", err)
	}

	data := s.builder.Build(league)
	rendered := report.Render(data)

	s.repo.SaveSnapshot(&memory.Snapshot{
		League:      league,
		Rendered:    rendered,
		Week:        league.WeekForReport,
		GeneratedAt: time.Now(),
	})

	slog.Info("Report generated",
		"league", league.Name,
		"week", league.WeekForReport,
		"elapsed", time.Since(started).Round(time.Millisecond))
	return rendered, nil
}

// GetReport serves the saved snapshot while it is fresh, regenerating
// otherwise.
func (s *ReportService) GetReport() (string, error) {
	if snapshot := s.repo.GetSnapshot(); snapshot != nil && time.Since(snapshot.GeneratedAt) < snapshotTTL {
		return snapshot.Rendered, nil
	}
	return s.GenerateReport()
}

func (s *ReportService) getLeague() (*models.League, error) {
	snapshot := s.repo.GetSnapshot()
	if snapshot == nil || time.Since(snapshot.GeneratedAt) >= snapshotTTL {
		if _, err := s.GenerateReport(); err != nil {
			return nil, err
		}
		snapshot = s.repo.GetSnapshot()
	}
	return snapshot.League, nil
}

func (s *ReportService) GetStandings() (string, error) {
	league, err := s.getLeague()
	if err != nil {
		return "", fmt.Errorf("error fetching standings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")
	for i, team := range league.CurrentStandings {
		record := ""
		if team.CurrentRecord != nil {
			record = team.CurrentRecord.Str()
		}
		sb.WriteString(fmt.Sprintf("%d. *%s* (%s)\n", i+1, team.Name, record))
		if team.CurrentRecord != nil {
			sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.CurrentRecord.PointsFor))
			sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n", team.CurrentRecord.PointsAgainst))
			sb.WriteString(fmt.Sprintf("   Streak: %s\n\n", team.CurrentRecord.Streak()))
		}
	}
	return sb.String(), nil
}

func (s *ReportService) GetMatchups() (string, error) {
	league, err := s.getLeague()
	if err != nil {
		return "", fmt.Errorf("error fetching matchups: %w", err)
	}

	week := league.WeekForReport
	matchups := league.MatchupsByWeek[models.WeekKey(week)]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Matchups*\n\n", week))
	for _, m := range matchups {
		if len(m.Teams) != 2 {
			continue
		}
		home, away := m.Teams[0], m.Teams[1]
		sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", home.Name, away.Name))
		sb.WriteString(fmt.Sprintf("%.2f - %.2f", home.Points, away.Points))
		if m.Tied {
			sb.WriteString(" (Tie)")
		} else if m.Complete && m.Winner != nil {
			sb.WriteString(fmt.Sprintf(" (Final, %s wins)", m.Winner.Name))
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
