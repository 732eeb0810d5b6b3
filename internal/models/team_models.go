package models

import (
	"fmt"
	"strings"
)

type Manager struct {
	ManagerID string
	Name      string
	Email     string
}

// Team is an immutable weekly snapshot except for CurrentMedianRecord, which
// is shared by reference across weeks and accumulated by the median engine.
type Team struct {
	TeamID              string
	Week                int
	Name                string
	URL                 string
	Managers            []Manager
	ManagerNames        string
	Division            string
	Points              float64
	NumMoves            string
	NumTrades           string
	WaiverPriority      int
	FAAB                float64
	StreakStr           string
	DivisionStreakStr   string
	CurrentRecord       *Record
	CurrentMedianRecord *Record
	Roster              []*Player
}

func JoinManagerNames(managers []Manager) string {
	names := make([]string, 0, len(managers))
	for _, m := range managers {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

type Record struct {
	TeamID   string
	TeamName string

	Wins       int
	Losses     int
	Ties       int
	Percentage float64

	PointsFor     float64
	PointsAgainst float64

	StreakType string
	StreakLen  int
	Rank       int

	Division           string
	DivisionWins       int
	DivisionLosses     int
	DivisionTies       int
	DivisionPercentage float64
	DivisionRank       int
}

func NewRecord(teamID, teamName string) *Record {
	return &Record{TeamID: teamID, TeamName: teamName}
}

func (r *Record) AddWin() {
	r.Wins++
	r.updatePercentage()
}

func (r *Record) AddLoss() {
	r.Losses++
	r.updatePercentage()
}

func (r *Record) AddTie() {
	r.Ties++
	r.updatePercentage()
}

func (r *Record) AddPointsFor(points float64) {
	r.PointsFor += points
}

func (r *Record) AddPointsAgainst(points float64) {
	r.PointsAgainst += points
}

func (r *Record) updatePercentage() {
	games := r.Wins + r.Losses + r.Ties
	if games == 0 {
		r.Percentage = 0
		return
	}
	r.Percentage = (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
}

func (r *Record) Str() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

func (r *Record) Streak() string {
	return fmt.Sprintf("%s-%d", r.StreakType, r.StreakLen)
}
