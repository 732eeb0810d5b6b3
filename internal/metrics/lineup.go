package metrics

import (
	"sort"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

// OptimalLineup fills the active roster slots with the highest scoring
// eligible players from the pool, each player used at most once. Specific
// position slots are filled before flex slots so a flex never steals a player
// a dedicated slot needs. Returns the chosen players and their total points.
func OptimalLineup(pool []*models.Player, activeSlots []string, flexPositions map[string][]string) ([]*models.Player, float64) {
	ordered := make([]string, len(activeSlots))
	copy(ordered, activeSlots)
	sort.SliceStable(ordered, func(i, j int) bool {
		_, iFlex := flexPositions[ordered[i]]
		_, jFlex := flexPositions[ordered[j]]
		return !iFlex && jFlex
	})

	byPoints := make([]*models.Player, len(pool))
	copy(byPoints, pool)
	sort.SliceStable(byPoints, func(i, j int) bool {
		return byPoints[i].Points > byPoints[j].Points
	})

	used := make(map[string]bool)
	var lineup []*models.Player
	var total float64

	for _, slot := range ordered {
		for _, p := range byPoints {
			if used[p.PlayerID] || !p.EligibleAt(slot) {
				continue
			}
			used[p.PlayerID] = true
			lineup = append(lineup, p)
			total += p.Points
			break
		}
	}
	return lineup, total
}

// OptimalPoints is OptimalLineup reduced to the total.
func OptimalPoints(pool []*models.Player, activeSlots []string, flexPositions map[string][]string) float64 {
	_, total := OptimalLineup(pool, activeSlots, flexPositions)
	return total
}
