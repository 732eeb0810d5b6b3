// Package metrics computes the ranked report tables and applies the
// deterministic tie-break rules. Tables are computed in a fixed dependency
// order; power rankings run last because they consume the already
// tie-resolved score, coaching efficiency, and luck tables.
package metrics

import (
	"log/slog"
	"sort"
)

// TeamResult carries one team's normalized weekly inputs. Bad boy, beef, and
// high roller values arrive as opaque per-team numbers from upstream.
type TeamResult struct {
	TeamID   string
	TeamName string

	Points        float64
	BenchPoints   float64
	OptimalPoints float64

	Luck            float64
	BadBoyPoints    float64
	Beef            float64
	HighRollerFines float64
}

// Row is one ranked table entry. DQ rows sort as 0 but stay in the table.
type Row struct {
	TeamID   string
	TeamName string
	Value    float64
	DQ       bool
}

// Tables holds every ranked table for the report week.
type Tables struct {
	Scores             []Row
	CoachingEfficiency []Row
	Luck               []Row
	BadBoy             []Row
	Beef               []Row
	HighRoller         []Row
	PowerRankings      []Row

	ScoreTies              int
	CoachingEfficiencyTies int
	LuckTies               int
}

type Engine struct {
	breakTies bool
	dq        *DQMatcher
}

func NewEngine(breakTies bool, dqTeamNames []string) *Engine {
	return &Engine{
		breakTies: breakTies,
		dq:        NewDQMatcher(dqTeamNames),
	}
}

// Compute builds every table from the per-team results.
func (e *Engine) Compute(results []TeamResult) *Tables {
	t := &Tables{}

	scoreResults := ResolveScoreTies(results, e.breakTies)
	t.Scores = make([]Row, 0, len(scoreResults))
	for _, r := range scoreResults {
		t.Scores = append(t.Scores, Row{TeamID: r.TeamID, TeamName: r.TeamName, Value: r.Points})
	}
	t.ScoreTies = TiesCount(t.Scores)

	t.CoachingEfficiency = e.coachingEfficiencyTable(scoreResults)
	t.CoachingEfficiencyTies = TiesCount(t.CoachingEfficiency)

	t.Luck = rankedTable(results, func(r TeamResult) float64 { return r.Luck })
	t.LuckTies = TiesCount(t.Luck)

	t.BadBoy = rankedTable(results, func(r TeamResult) float64 { return r.BadBoyPoints })
	t.Beef = rankedTable(results, func(r TeamResult) float64 { return r.Beef })
	t.HighRoller = rankedTable(results, func(r TeamResult) float64 { return r.HighRollerFines })

	t.PowerRankings = PowerRankings(t.Scores, t.CoachingEfficiency, t.Luck)

	return t
}

func (e *Engine) coachingEfficiencyTable(results []TeamResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		value, ok := CoachingEfficiency(r.Points, r.OptimalPoints)
		dq := !ok
		if e.dq.Match(r.TeamName) {
			slog.Info("Coaching efficiency disqualification", "team", r.TeamName)
			dq = true
		}
		if dq {
			value = 0
		}
		rows = append(rows, Row{TeamID: r.TeamID, TeamName: r.TeamName, Value: value, DQ: dq})
	}
	sortRows(rows)
	if e.breakTies {
		resolveRowTies(rows, results, func(r TeamResult) float64 { return r.Points })
	}
	return rows
}

// CoachingEfficiency is the percentage of the optimal lineup's points the
// started lineup actually scored. A team with no computable optimal lineup is
// disqualified.
func CoachingEfficiency(actual, optimal float64) (float64, bool) {
	if optimal <= 0 {
		return 0, false
	}
	return actual / optimal * 100, true
}

func rankedTable(results []TeamResult, value func(TeamResult) float64) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{TeamID: r.TeamID, TeamName: r.TeamName, Value: value(r)})
	}
	sortRows(rows)
	return rows
}

// sortRows orders descending by value with DQ rows treated as 0, breaking
// exact value ties by team ID so ordering is stable across runs.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := sortValue(rows[i]), sortValue(rows[j])
		if vi != vj {
			return vi > vj
		}
		return false
	})
}

func sortValue(r Row) float64 {
	if r.DQ {
		return 0
	}
	return r.Value
}

// TiesCount reports how many rows share the table's top value. DQ rows never
// participate in first place. A count of 1 means no tie.
func TiesCount(rows []Row) int {
	top, found := 0.0, false
	count := 0
	for _, r := range rows {
		if r.DQ {
			continue
		}
		if !found {
			top, found = r.Value, true
		}
		if r.Value == top {
			count++
		}
	}
	return count
}

// ResolveScoreTies orders results descending by points. When tie breaking is
// enabled, tied groups are reordered descending by bench points; the
// operation is idempotent, so resolving an already resolved table changes
// nothing.
func ResolveScoreTies(results []TeamResult, breakTies bool) []TeamResult {
	out := make([]TeamResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if breakTies && out[i].BenchPoints != out[j].BenchPoints {
			return out[i].BenchPoints > out[j].BenchPoints
		}
		return false
	})
	return out
}

// resolveRowTies reorders tied row groups using a secondary key taken from
// the team results.
func resolveRowTies(rows []Row, results []TeamResult, key func(TeamResult) float64) {
	secondary := make(map[string]float64, len(results))
	for _, r := range results {
		secondary[r.TeamID] = key(r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := sortValue(rows[i]), sortValue(rows[j])
		if vi != vj {
			return vi > vj
		}
		return secondary[rows[i].TeamID] > secondary[rows[j].TeamID]
	})
}

// PowerRankings blends the tie-resolved score, coaching efficiency, and luck
// tables into one composite ordinal: each team's value is the mean of its
// three table ranks, lower is better.
func PowerRankings(scores, coachingEfficiency, luck []Row) []Row {
	rankOf := func(rows []Row) map[string]float64 {
		ranks := make(map[string]float64, len(rows))
		for i, r := range rows {
			ranks[r.TeamID] = float64(i + 1)
		}
		return ranks
	}
	scoreRank := rankOf(scores)
	ceRank := rankOf(coachingEfficiency)
	luckRank := rankOf(luck)

	rows := make([]Row, 0, len(scores))
	for _, r := range scores {
		composite := (scoreRank[r.TeamID] + ceRank[r.TeamID] + luckRank[r.TeamID]) / 3
		rows = append(rows, Row{TeamID: r.TeamID, TeamName: r.TeamName, Value: composite})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value < rows[j].Value
	})
	return rows
}
