// Package report assembles the weekly report: ranked metric tables, award
// rows, and the best-of-the-rest free agent lineup, rendered as a single
// formatted message.
package report

import (
	"log/slog"
	"sort"

	"github.com/omarshaarawi/flickerreport/internal/awards"
	"github.com/omarshaarawi/flickerreport/internal/metrics"
	"github.com/omarshaarawi/flickerreport/internal/models"
)

type BestOfTheRest struct {
	Lineup []*models.Player
	Points float64
	Wins   int
	Losses int
	Ties   int
}

type ReportData struct {
	LeagueName string
	LeagueURL  string
	Week       int

	Standings       []*models.Team
	MedianStandings []*models.Team
	Matchups        []*models.Matchup

	Tables       *metrics.Tables
	ScoreZScores map[string]float64

	Awards        *awards.Awards
	BestOfTheRest *BestOfTheRest
}

type Builder struct {
	breakTies bool
	dqTeams   []string

	// opaque per-team pass-through values; nil maps leave the metric columns
	// zeroed
	BadBoyPoints    map[string]float64
	Beef            map[string]float64
	HighRollerFines map[string]float64
}

func NewBuilder(breakTies bool, dqTeams []string) *Builder {
	return &Builder{breakTies: breakTies, dqTeams: dqTeams}
}

func (b *Builder) Build(league *models.League) *ReportData {
	week := league.WeekForReport
	weekKey := models.WeekKey(week)
	teams := league.TeamsByWeek[weekKey]
	matchups := league.MatchupsByWeek[weekKey]

	data := &ReportData{
		LeagueName:      league.Name,
		LeagueURL:       league.URL,
		Week:            week,
		Standings:       league.CurrentStandings,
		MedianStandings: league.CurrentMedianStandings,
		Matchups:        matchups,
	}

	results := b.teamResults(league, teams, matchups)
	engine := metrics.NewEngine(b.breakTies, b.dqTeams)
	data.Tables = engine.Compute(results)

	data.ScoreZScores = seasonScoreZScores(teams)
	data.Awards = awards.Compute(league, week)
	data.BestOfTheRest = bestOfTheRest(league, week, teams)

	return data
}

func (b *Builder) teamResults(league *models.League, teams map[string]*models.Team, matchups []*models.Matchup) []metrics.TeamResult {
	results := make([]metrics.TeamResult, 0, len(teams))

	teamIDs := make([]string, 0, len(teams))
	for teamID := range teams {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	for _, teamID := range teamIDs {
		team := teams[teamID]

		var benchPoints float64
		var starters []*models.Player
		for _, p := range team.Roster {
			if league.IsBenchPosition(p.SelectedPosition) {
				benchPoints += p.Points
			} else if p.SelectedPosition != "" {
				starters = append(starters, p)
			}
		}

		result := metrics.TeamResult{
			TeamID:        teamID,
			TeamName:      team.Name,
			Points:        team.Points,
			BenchPoints:   benchPoints,
			OptimalPoints: metrics.OptimalPoints(team.Roster, league.RosterActiveSlots, league.FlexPositions),
			Luck:          luck(team, teams, matchups),
		}
		if b.BadBoyPoints != nil {
			result.BadBoyPoints = b.BadBoyPoints[teamID]
		}
		if b.Beef != nil {
			result.Beef = b.Beef[teamID]
		}
		if b.HighRollerFines != nil {
			result.HighRollerFines = b.HighRollerFines[teamID]
		}
		results = append(results, result)
	}
	return results
}

// luck compares the matchup outcome a team actually got with the outcome its
// score deserved against the whole league: the gap between actual result and
// the fraction of opponents it would have beaten, scaled to a percentage.
func luck(team *models.Team, teams map[string]*models.Team, matchups []*models.Matchup) float64 {
	others := 0
	wouldBeat := 0.0
	for teamID, other := range teams {
		if teamID == team.TeamID {
			continue
		}
		others++
		switch {
		case team.Points > other.Points:
			wouldBeat++
		case team.Points == other.Points:
			wouldBeat += 0.5
		}
	}
	if others == 0 {
		return 0
	}

	actual := 0.0
	for _, m := range matchups {
		switch {
		case m.Winner != nil && m.Winner.TeamID == team.TeamID:
			actual = 1
		case m.Tied && matchupHasTeam(m, team.TeamID):
			actual = 0.5
		}
	}

	return (actual - wouldBeat/float64(others)) * 100
}

func matchupHasTeam(m *models.Matchup, teamID string) bool {
	for _, t := range m.Teams {
		if t.TeamID == teamID {
			return true
		}
	}
	return false
}

// seasonScoreZScores standardizes cumulative points for across the league.
func seasonScoreZScores(teams map[string]*models.Team) map[string]float64 {
	values := make(map[string]*float64, len(teams))
	for teamID, team := range teams {
		if team.CurrentRecord == nil {
			values[teamID] = nil
			continue
		}
		pf := team.CurrentRecord.PointsFor
		values[teamID] = &pf
	}
	return metrics.ZScores(values)
}

// bestOfTheRest builds the optimal lineup from the week's free agents and
// scores it against every team as a mock record.
func bestOfTheRest(league *models.League, week int, teams map[string]*models.Team) *BestOfTheRest {
	freeAgents := league.FreeAgentsByWeek[models.WeekKey(week)]
	if len(freeAgents) == 0 {
		slog.Info("Best of the rest unavailable, no free agents", "week", week)
		return nil
	}

	pool := make([]*models.Player, 0, len(freeAgents))
	for _, p := range freeAgents {
		pool = append(pool, p)
	}

	lineup, points := metrics.OptimalLineup(pool, league.RosterActiveSlots, league.FlexPositions)
	if len(lineup) == 0 {
		return nil
	}

	botr := &BestOfTheRest{Lineup: lineup, Points: points}
	for _, team := range teams {
		switch {
		case points > team.Points:
			botr.Wins++
		case points < team.Points:
			botr.Losses++
		default:
			botr.Ties++
		}
	}
	return botr
}
