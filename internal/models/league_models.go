package models

import "strconv"

// WeekKey converts a week ordinal into the string key used by every per-week
// collection on League.
func WeekKey(week int) string {
	return strconv.Itoa(week)
}

type RosterSlot struct {
	Position string
	Count    int
}

type League struct {
	LeagueID              string
	Season                int
	Name                  string
	URL                   string
	Week                  int
	StartWeek             int
	WeekForReport         int
	NumTeams              int
	NumRegularSeasonWeeks int
	NumPlayoffSlots       int
	NumDivisions          int
	Divisions             map[string]string
	HasDivisions          bool
	HasMedianMatchup      bool
	HasWaiverPriorities   bool
	FAABBudget            int
	IsFAAB                bool

	RosterPositions   []RosterSlot
	RosterActiveSlots []string
	BenchPositions    []string
	FlexPositions     map[string][]string

	// MedianScoreByWeek has no entry for weeks with zero parsed scores.
	MedianScoreByWeek map[string]float64

	TeamsByWeek        map[string]map[string]*Team
	MatchupsByWeek     map[string][]*Matchup
	PlayersByWeek      map[string]map[string]*Player
	FreeAgentsByWeek   map[string]map[string]*Player
	TransactionsByWeek map[string]*TransactionLog

	CurrentStandings       []*Team
	CurrentMedianStandings []*Team
}

func NewLeague(leagueID string, season int) *League {
	return &League{
		LeagueID:           leagueID,
		Season:             season,
		Divisions:          make(map[string]string),
		FlexPositions:      make(map[string][]string),
		MedianScoreByWeek:  make(map[string]float64),
		TeamsByWeek:        make(map[string]map[string]*Team),
		MatchupsByWeek:     make(map[string][]*Matchup),
		PlayersByWeek:      make(map[string]map[string]*Player),
		FreeAgentsByWeek:   make(map[string]map[string]*Player),
		TransactionsByWeek: make(map[string]*TransactionLog),
	}
}

// WeekMedian reports the median score for a week, distinguishing a missing
// median from a genuine zero.
func (l *League) WeekMedian(week int) (float64, bool) {
	m, ok := l.MedianScoreByWeek[WeekKey(week)]
	return m, ok
}

func (l *League) IsBenchPosition(position string) bool {
	for _, bn := range l.BenchPositions {
		if position == bn {
			return true
		}
	}
	return false
}

type Matchup struct {
	Week            int
	Teams           []*Team
	Complete        bool
	Tied            bool
	DivisionMatchup bool
	Winner          *Team
	Loser           *Team
}

type TransactionLog struct {
	Adds   []TransactionEvent
	Claims []TransactionEvent
	Drops  []TransactionEvent
	Trades []TradeEvent
}

type TransactionEvent struct {
	TeamID   string
	PlayerID string
}

type TradeEvent struct {
	TeamID          string
	PlayersReceived []string
	PlayersSent     []string
	TradeID         int64
	Timestamp       int64
}
