// Package awards computes the single best/worst row per award category for
// the report week. Historical weeks are never awarded.
package awards

import (
	"log/slog"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

type StartSit struct {
	TeamID       string
	TeamName     string
	BenchPlayer  string
	Starter      string
	BenchPoints  float64
	StartPoints  float64
	Delta        float64
}

type Pickup struct {
	TeamID     string
	TeamName   string
	PlayerID   string
	PlayerName string
	Points     float64
	Started    bool
}

type Drop struct {
	TeamID     string
	TeamName   string
	PlayerID   string
	PlayerName string
	Points     float64
}

type Trade struct {
	TeamID         string
	TeamName       string
	ReceivedPoints float64
	SentPoints     float64
	Net            float64
}

// Awards holds the report week's award rows. A nil row means the category
// degraded to unavailable.
type Awards struct {
	WorstStartSit *StartSit

	BestPickup                  *Pickup
	BestPickupHonorableMention  *Pickup
	WorstPickup                 *Pickup
	WorstPickupHonorableMention *Pickup

	BestDrop  *Drop
	WorstDrop *Drop

	BestTrade  *Trade
	WorstTrade *Trade
}

func Compute(league *models.League, week int) *Awards {
	a := &Awards{}
	weekKey := models.WeekKey(week)

	teams := league.TeamsByWeek[weekKey]
	players := league.PlayersByWeek[weekKey]
	freeAgents := league.FreeAgentsByWeek[weekKey]
	log := league.TransactionsByWeek[weekKey]

	a.WorstStartSit = worstStartSit(league, teams)

	if log != nil {
		events := append(append([]models.TransactionEvent{}, log.Adds...), log.Claims...)
		pickups := collectPickups(league, week, excludeTradeReceived(events, log.Trades), teams, players, freeAgents)
		a.BestPickup, a.BestPickupHonorableMention = pickPickup(pickups, true)
		a.WorstPickup, a.WorstPickupHonorableMention = pickPickup(pickups, false)
		a.BestDrop, a.WorstDrop = pickDrops(log.Drops, teams, players, freeAgents)
		a.BestTrade, a.WorstTrade = pickTrades(log.Trades, teams, players, freeAgents)
	}

	return a
}

// worstStartSit finds the league's largest positive bench-minus-starter
// delta over eligible swaps. Teams with no eligible swap contribute nothing.
func worstStartSit(league *models.League, teams map[string]*models.Team) *StartSit {
	var worst *StartSit

	for _, team := range teams {
		for _, bench := range team.Roster {
			if !league.IsBenchPosition(bench.SelectedPosition) {
				continue
			}
			for _, starter := range team.Roster {
				if league.IsBenchPosition(starter.SelectedPosition) || starter.SelectedPosition == "" {
					continue
				}
				if !bench.EligibleAt(starter.SelectedPosition) {
					continue
				}
				delta := bench.Points - starter.Points
				if delta <= 0 {
					continue
				}
				if worst == nil || delta > worst.Delta {
					worst = &StartSit{
						TeamID:      team.TeamID,
						TeamName:    team.Name,
						BenchPlayer: bench.FullName,
						Starter:     starter.FullName,
						BenchPoints: bench.Points,
						StartPoints: starter.Points,
						Delta:       delta,
					}
				}
			}
		}
	}

	if worst == nil {
		slog.Info("Worst start/sit unavailable, no positive eligible swap")
	}
	return worst
}

// excludeTradeReceived drops add events for players a team acquired via a
// trade that same week, so a trade surfacing as add activity cannot compete
// as a free-agent pickup.
func excludeTradeReceived(events []models.TransactionEvent, trades []models.TradeEvent) []models.TransactionEvent {
	received := make(map[string]map[string]bool)
	for _, trade := range trades {
		set := received[trade.TeamID]
		if set == nil {
			set = make(map[string]bool)
			received[trade.TeamID] = set
		}
		for _, playerID := range trade.PlayersReceived {
			set[playerID] = true
		}
	}
	if len(received) == 0 {
		return events
	}

	kept := events[:0]
	for _, ev := range events {
		if received[ev.TeamID][ev.PlayerID] {
			slog.Debug("Pickup excluded, player received via trade", "team_id", ev.TeamID, "player_id", ev.PlayerID)
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

func collectPickups(league *models.League, week int, events []models.TransactionEvent, teams map[string]*models.Team, players, freeAgents map[string]*models.Player) []Pickup {
	var pickups []Pickup
	for _, ev := range events {
		pickup := Pickup{
			TeamID:   ev.TeamID,
			TeamName: teamName(teams, ev.TeamID),
			PlayerID: ev.PlayerID,
		}
		if player, ok := players[ev.PlayerID]; ok {
			pickup.PlayerName = player.FullName
			pickup.Points = player.Points
			pickup.Started = player.SelectedPosition != "" && !league.IsBenchPosition(player.SelectedPosition)
		} else {
			// Never scored on a roster this week, keep as a zero-point
			// benched candidate.
			slog.Debug("Pickup player missing from weekly rosters", "player_id", ev.PlayerID)
			pickup.PlayerName = resolvePickupName(league, week, ev.PlayerID, freeAgents)
		}
		pickups = append(pickups, pickup)
	}
	return pickups
}

// resolvePickupName finds a display name for a player absent from the report
// week's rosters: the prior week's players, then the free-agent pool, then
// any other week, then the raw ID.
func resolvePickupName(league *models.League, week int, playerID string, freeAgents map[string]*models.Player) string {
	if prev := league.PlayersByWeek[models.WeekKey(week-1)]; prev != nil {
		if p := prev[playerID]; p != nil && p.FullName != "" {
			return p.FullName
		}
	}
	if p := freeAgents[playerID]; p != nil && p.FullName != "" {
		return p.FullName
	}
	for _, weekPlayers := range league.PlayersByWeek {
		if p := weekPlayers[playerID]; p != nil && p.FullName != "" {
			return p.FullName
		}
	}
	return playerID
}

// pickPickup chooses the winner from the started group when any started
// pickups exist, falling back to the benched group otherwise. A benched
// honorable mention is reported only when it strictly beats the winner.
func pickPickup(pickups []Pickup, best bool) (*Pickup, *Pickup) {
	var started, benched []Pickup
	for _, p := range pickups {
		if p.Started {
			started = append(started, p)
		} else {
			benched = append(benched, p)
		}
	}

	better := func(a, b float64) bool {
		if best {
			return a > b
		}
		return a < b
	}

	extreme := func(group []Pickup) *Pickup {
		var out *Pickup
		for i := range group {
			if out == nil || better(group[i].Points, out.Points) {
				out = &group[i]
			}
		}
		return out
	}

	winner := extreme(started)
	if winner == nil {
		return extreme(benched), nil
	}

	mention := extreme(benched)
	if mention != nil && better(mention.Points, winner.Points) {
		return winner, mention
	}
	return winner, nil
}

// pickDrops: the best drop shed the fewest points, the worst drop gave away
// the most.
func pickDrops(drops []models.TransactionEvent, teams map[string]*models.Team, players, freeAgents map[string]*models.Player) (*Drop, *Drop) {
	var best, worst *Drop
	for _, ev := range drops {
		player := players[ev.PlayerID]
		if player == nil {
			player = freeAgents[ev.PlayerID]
		}
		if player == nil {
			slog.Debug("Dropped player missing from weekly data", "player_id", ev.PlayerID)
			continue
		}
		row := &Drop{
			TeamID:     ev.TeamID,
			TeamName:   teamName(teams, ev.TeamID),
			PlayerID:   ev.PlayerID,
			PlayerName: player.FullName,
			Points:     player.Points,
		}
		if best == nil || row.Points < best.Points {
			best = row
		}
		if worst == nil || row.Points > worst.Points {
			worst = row
		}
	}
	return best, worst
}

// pickTrades ranks trades by net points swing. Sides with no received or no
// sent players (pick-only trades) are excluded. A non-negative net competes
// for best, a negative net for worst.
func pickTrades(trades []models.TradeEvent, teams map[string]*models.Team, players, freeAgents map[string]*models.Player) (*Trade, *Trade) {
	lookup := func(playerID string) (float64, bool) {
		if p := players[playerID]; p != nil {
			return p.Points, true
		}
		if p := freeAgents[playerID]; p != nil {
			return p.Points, true
		}
		return 0, false
	}

	sum := func(playerIDs []string) float64 {
		var total float64
		for _, id := range playerIDs {
			if points, ok := lookup(id); ok {
				total += points
			}
		}
		return total
	}

	var best, worst *Trade
	for _, trade := range trades {
		if len(trade.PlayersReceived) == 0 || len(trade.PlayersSent) == 0 {
			continue
		}
		received := sum(trade.PlayersReceived)
		sent := sum(trade.PlayersSent)
		row := &Trade{
			TeamID:         trade.TeamID,
			TeamName:       teamName(teams, trade.TeamID),
			ReceivedPoints: received,
			SentPoints:     sent,
			Net:            received - sent,
		}
		if row.Net >= 0 {
			if best == nil || row.Net > best.Net {
				best = row
			}
		} else {
			if worst == nil || row.Net < worst.Net {
				worst = row
			}
		}
	}
	return best, worst
}

func teamName(teams map[string]*models.Team, teamID string) string {
	if t, ok := teams[teamID]; ok {
		return t.Name
	}
	return teamID
}
