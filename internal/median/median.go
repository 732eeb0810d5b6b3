// Package median maintains the cumulative median-matchup record every team
// accrues across the scored weeks of a season.
package median

import (
	"log/slog"
	"math"
	"sort"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

// WeeklyMedian computes the statistical median of a week's parsed scores,
// rounded to two decimals. Weeks with no parsed scores yield no median.
func WeeklyMedian(scores []float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	var m float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		m = sorted[mid]
	}
	return math.Round(m*100) / 100, true
}

// Engine owns one cumulative Record per team for the lifetime of a report
// run. Records are handed out by reference so a week's Team snapshot always
// reflects the full history folded in so far.
type Engine struct {
	records map[string]*models.Record
}

func NewEngine() *Engine {
	return &Engine{records: make(map[string]*models.Record)}
}

func (e *Engine) Record(teamID, teamName string) *models.Record {
	rec, ok := e.records[teamID]
	if !ok {
		rec = models.NewRecord(teamID, teamName)
		e.records[teamID] = rec
	}
	return rec
}

// FoldIn applies one week's score-vs-median result to the team's cumulative
// record and returns the shared record. Weeks without a median leave the
// record untouched; the fold must run in strict week order because points
// against is replaced with the latest median rather than summed.
func (e *Engine) FoldIn(week int, teamID, teamName string, score float64, weekMedian float64, hasMedian bool) *models.Record {
	rec := e.Record(teamID, teamName)

	if !hasMedian {
		slog.Debug("Median missing, skipping median record fold-in", "week", week, "team_id", teamID, "points", score)
		return rec
	}

	rec.AddPointsFor(score - weekMedian)
	rec.AddPointsAgainst(-rec.PointsAgainst + weekMedian)
	switch {
	case score > weekMedian:
		rec.AddWin()
	case score < weekMedian:
		rec.AddLoss()
	default:
		rec.AddTie()
	}

	return rec
}

// Attach stamps every team snapshot for the report week with its cumulative
// record, carrying history forward even when that week itself had no median.
func (e *Engine) Attach(teams map[string]*models.Team) {
	for teamID, rec := range e.records {
		if team, ok := teams[teamID]; ok {
			team.CurrentMedianRecord = rec
		}
	}
}

// SortStandings orders teams by their median records: more wins first, then
// fewer losses, more ties, and higher cumulative points for versus the
// median.
func SortStandings(teams []*models.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i].CurrentMedianRecord, teams[j].CurrentMedianRecord
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		if a.Ties != b.Ties {
			return a.Ties > b.Ties
		}
		return a.PointsFor > b.PointsFor
	})
}
