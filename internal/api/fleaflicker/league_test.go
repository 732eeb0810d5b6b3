package fleaflicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

func TestApplyRosterPositions(t *testing.T) {
	a := &API{league: testLeague()}

	rules := &models.RulesResponse{
		RosterPositions: []models.RosterPositionResponse{
			{Label: "QB", Start: 1},
			{Label: "RB", Start: 2},
			{Label: "RB/WR/TE", Start: 1},
			{Label: "BN", Max: 5},
			{Label: "IR", Max: 2},
		},
	}
	a.applyRosterPositions(rules)

	league := a.league
	assert.Equal(t, []models.RosterSlot{
		{Position: "QB", Count: 1},
		{Position: "RB", Count: 2},
		{Position: "FLEX", Count: 1},
		{Position: "BN", Count: 5},
		{Position: "IR", Count: 0},
	}, league.RosterPositions)

	assert.Equal(t, []string{"QB", "RB", "RB", "FLEX"}, league.RosterActiveSlots)
	assert.Equal(t, []string{"RB", "WR", "TE"}, league.FlexPositions["FLEX"])
	assert.True(t, league.IsBenchPosition("BN"))
	assert.True(t, league.IsBenchPosition("IR"))
	assert.False(t, league.IsBenchPosition("FLEX"))
}

func TestApplyStandings(t *testing.T) {
	a := &API{league: testLeague()}

	standings := &models.LeagueStandingsResponse{
		League: models.LeagueInfoResponse{
			Name:                "Test League",
			Size:                4,
			DefaultWaiverBudget: 100,
		},
		Divisions: []models.DivisionResponse{
			{
				ID:   10,
				Name: "East",
				Teams: []models.StandingTeamResponse{
					{ID: 1, Name: "Alpha", RecordOverall: models.RecordResponse{Rank: 2}},
					{ID: 2, Name: "Bravo", RecordOverall: models.RecordResponse{Rank: 4}},
				},
			},
			{
				ID:   11,
				Name: "West",
				Teams: []models.StandingTeamResponse{
					{ID: 3, Name: "Charlie", RecordOverall: models.RecordResponse{Rank: 1}},
					{ID: 4, Name: "Delta", RecordOverall: models.RecordResponse{Rank: 3}},
				},
			},
		},
	}

	teamInfo, ranked := a.applyStandings(standings)

	league := a.league
	assert.Equal(t, "Test League", league.Name)
	assert.Equal(t, 4, league.NumTeams)
	assert.Equal(t, 100, league.FAABBudget)
	assert.True(t, league.IsFAAB)
	assert.True(t, league.HasDivisions)
	assert.Equal(t, 2, league.NumDivisions)
	assert.Equal(t, "East", league.Divisions["10"])

	assert.Equal(t, []string{"3", "1", "4", "2"}, ranked)
	assert.Equal(t, "10", teamInfo["1"].divisionID)
	assert.Equal(t, "West", teamInfo["4"].divisionName)
}

func scoreOf(value float64) *models.ScoreObject {
	return &models.ScoreObject{Score: &models.FormattedValue{Value: value, Formatted: "x"}}
}

func TestComputeMedians(t *testing.T) {
	a := &API{league: testLeague()}
	a.league.WeekForReport = 2

	scoreboards := map[int]*models.ScoreboardResponse{
		1: {
			Games: []models.GameResponse{
				{HomeScore: scoreOf(100), AwayScore: scoreOf(110)},
				{HomeScore: scoreOf(90), AwayScore: scoreOf(120)},
			},
		},
		// week 2 has no parseable scores
		2: {
			Games: []models.GameResponse{
				{HomeScore: &models.ScoreObject{}, AwayScore: nil},
			},
		},
	}

	a.computeMedians(scoreboards)

	m, ok := a.league.WeekMedian(1)
	require.True(t, ok)
	assert.Equal(t, 105.0, m)

	_, ok = a.league.WeekMedian(2)
	assert.False(t, ok)
}

func TestBuildWeeks(t *testing.T) {
	a := &API{league: testLeague()}
	league := a.league
	league.WeekForReport = 1
	league.MedianScoreByWeek[models.WeekKey(1)] = 105.0

	home := models.StandingTeamResponse{
		ID:   1,
		Name: "Alpha",
		Owners: []models.OwnerResponse{
			{ID: 51, DisplayName: "Pat"},
		},
		RecordOverall: models.RecordResponse{Wins: 1, Rank: 1},
		Streak:        &models.FormattedValue{Value: 1},
	}
	away := models.StandingTeamResponse{
		ID:            2,
		Name:          "Bravo",
		RecordOverall: models.RecordResponse{Losses: 1, Rank: 2},
		Streak:        &models.FormattedValue{Value: -1},
	}

	scoreboards := map[int]*models.ScoreboardResponse{
		1: {
			SchedulePeriod: models.SchedulePeriodResponse{Value: 1},
			Games: []models.GameResponse{
				{
					Home:       home,
					Away:       away,
					HomeScore:  scoreOf(110),
					AwayScore:  scoreOf(100),
					HomeResult: "WIN",
					AwayResult: "LOSE",
					FinalScore: true,
				},
			},
		},
	}

	teamInfo := map[string]teamStanding{
		"1": {raw: home, divisionID: "10", divisionName: "East"},
		"2": {raw: away, divisionID: "10", divisionName: "East"},
	}
	moveCounts := map[string]*teamMoveCounts{
		"1": {moves: 3, trades: 1},
	}

	a.buildWeeks(scoreboards, teamInfo, moveCounts)

	matchups := league.MatchupsByWeek[models.WeekKey(1)]
	require.Len(t, matchups, 1)
	matchup := matchups[0]
	assert.True(t, matchup.Complete)
	assert.True(t, matchup.DivisionMatchup)
	require.NotNil(t, matchup.Winner)
	assert.Equal(t, "1", matchup.Winner.TeamID)
	require.NotNil(t, matchup.Loser)
	assert.Equal(t, "2", matchup.Loser.TeamID)

	teams := league.TeamsByWeek[models.WeekKey(1)]
	require.Len(t, teams, 2)

	alpha := teams["1"]
	assert.Equal(t, 110.0, alpha.Points)
	assert.Equal(t, "Pat", alpha.ManagerNames)
	assert.Equal(t, "3*", alpha.NumMoves)
	assert.Equal(t, "1*", alpha.NumTrades)
	assert.Equal(t, "W-1", alpha.StreakStr)
	assert.Equal(t, 1, alpha.CurrentRecord.Wins)

	bravo := teams["2"]
	assert.Equal(t, "0*", bravo.NumMoves)
	assert.Equal(t, "L-1", bravo.StreakStr)

	// 110 beats the 105 median, 100 loses to it, and both fold the
	// differential into points for
	require.NotNil(t, alpha.CurrentMedianRecord)
	assert.Equal(t, 1, alpha.CurrentMedianRecord.Wins)
	assert.InDelta(t, 5.0, alpha.CurrentMedianRecord.PointsFor, 0.001)
	assert.Equal(t, 1, bravo.CurrentMedianRecord.Losses)
	assert.InDelta(t, -5.0, bravo.CurrentMedianRecord.PointsFor, 0.001)
	assert.InDelta(t, 105.0, bravo.CurrentMedianRecord.PointsAgainst, 0.001)
}
