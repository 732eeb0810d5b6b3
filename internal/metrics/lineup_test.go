package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

func lineupPlayer(id string, points float64, positions ...string) *models.Player {
	p := models.NewPlayer(id, 1)
	p.Points = points
	for _, pos := range positions {
		p.EligiblePositions[pos] = true
	}
	return p
}

func TestOptimalLineup(t *testing.T) {
	flexPositions := map[string][]string{"FLEX": {"RB", "WR", "TE"}}
	activeSlots := []string{"QB", "RB", "WR", "FLEX"}

	pool := []*models.Player{
		lineupPlayer("qb1", 22, "QB"),
		lineupPlayer("rb1", 18, "RB", "FLEX"),
		lineupPlayer("rb2", 15, "RB", "FLEX"),
		lineupPlayer("wr1", 12, "WR", "FLEX"),
		lineupPlayer("wr2", 9, "WR", "FLEX"),
		lineupPlayer("te1", 6, "TE", "FLEX"),
	}

	lineup, total := OptimalLineup(pool, activeSlots, flexPositions)
	require.Len(t, lineup, 4)
	// QB 22 + RB 18 + WR 12 + flex RB 15
	assert.InDelta(t, 67.0, total, 0.001)

	ids := make(map[string]bool)
	for _, p := range lineup {
		ids[p.PlayerID] = true
	}
	assert.True(t, ids["qb1"] && ids["rb1"] && ids["wr1"] && ids["rb2"])
}

func TestOptimalLineupFlexFilledAfterDedicatedSlots(t *testing.T) {
	flexPositions := map[string][]string{"FLEX": {"RB", "WR", "TE"}}
	// flex listed first must not steal the only running back
	activeSlots := []string{"FLEX", "RB"}

	pool := []*models.Player{
		lineupPlayer("rb1", 20, "RB", "FLEX"),
		lineupPlayer("wr1", 10, "WR", "FLEX"),
	}

	lineup, total := OptimalLineup(pool, activeSlots, flexPositions)
	require.Len(t, lineup, 2)
	assert.InDelta(t, 30.0, total, 0.001)
}

func TestOptimalLineupShortPool(t *testing.T) {
	pool := []*models.Player{lineupPlayer("qb1", 20, "QB")}
	lineup, total := OptimalLineup(pool, []string{"QB", "RB"}, nil)
	require.Len(t, lineup, 1)
	assert.InDelta(t, 20.0, total, 0.001)

	assert.Equal(t, 0.0, OptimalPoints(nil, []string{"QB"}, nil))
}
