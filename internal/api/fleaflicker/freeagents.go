package fleaflicker

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

const freeAgentPageSize = 30

type cachedFreeAgent struct {
	FullName          string   `json:"full_name"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	NFLTeamAbbr       string   `json:"nfl_team_abbr"`
	PrimaryPosition   string   `json:"primary_position"`
	EligiblePositions []string `json:"eligible_positions"`
	Points            float64  `json:"points"`
}

// freeAgentStrategy is one step of the ordered fallback chain used against
// the inconsistent player listing endpoints.
type freeAgentStrategy struct {
	name     string
	endpoint string
	params   func(week, offset int) map[string]string
}

func (a *API) freeAgentStrategies() []freeAgentStrategy {
	leagueID := a.league.LeagueID
	season := strconv.Itoa(a.league.Season)
	return []freeAgentStrategy{
		{
			name:     "listing snake_case",
			endpoint: "/api/FetchPlayerListing",
			params: func(week, offset int) map[string]string {
				p := map[string]string{
					"sport":                  "NFL",
					"league_id":              leagueID,
					"filter.free_agent_only": "true",
					"sort":                   "SORT_SCORING_PERIOD",
					"sort_period":            strconv.Itoa(week),
					"sort_season":            season,
				}
				if offset > 0 {
					p["result_offset"] = strconv.Itoa(offset)
				}
				return p
			},
		},
		{
			name:     "listing camelCase",
			endpoint: "/api/FetchPlayerListing",
			params: func(week, offset int) map[string]string {
				p := map[string]string{
					"sport":                "NFL",
					"leagueId":             leagueID,
					"filter.freeAgentOnly": "true",
					"sort":                 "SORT_SCORING_PERIOD",
					"sortPeriod":           strconv.Itoa(week),
					"sortSeason":           season,
				}
				if offset > 0 {
					p["resultOffset"] = strconv.Itoa(offset)
				}
				return p
			},
		},
		{
			name:     "players fallback",
			endpoint: "/api/FetchPlayers",
			params: func(week, offset int) map[string]string {
				return map[string]string{
					"sport":                "NFL",
					"leagueId":             leagueID,
					"filter.freeAgentOnly": "true",
					"scoringPeriod":        strconv.Itoa(week),
					"resultOffset":         strconv.Itoa(offset),
					"resultLimit":          strconv.Itoa(freeAgentPageSize),
				}
			},
		},
	}
}

// fetchFreeAgentsForWeek retrieves the league's free agents for one week,
// preferring the per-week cache, then walking the endpoint fallback chain,
// and finally probing a broad unfiltered listing filtered locally by missing
// owner.
func (a *API) fetchFreeAgentsForWeek(week int) map[string]*models.Player {
	freeAgents := make(map[string]*models.Player)
	cacheKey := fmt.Sprintf("week_%d/free_agents.json", week)

	var cached map[string]cachedFreeAgent
	if a.cache.Load(cacheKey, &cached) {
		for playerID, entry := range cached {
			p := models.NewPlayer(playerID, week)
			p.FullName = entry.FullName
			p.FirstName = entry.FirstName
			p.LastName = entry.LastName
			p.NFLTeamAbbr = entry.NFLTeamAbbr
			p.PrimaryPosition = entry.PrimaryPosition
			p.DisplayPosition = entry.PrimaryPosition
			for _, pos := range entry.EligiblePositions {
				p.EligiblePositions[pos] = true
			}
			p.Points = entry.Points
			freeAgents[playerID] = p
		}
		slog.Info("Loaded cached free agents", "week", week, "count", len(freeAgents))
		return freeAgents
	}

	if a.offline {
		return freeAgents
	}

	strategies := a.freeAgentStrategies()
	strategyIdx := 0
	offset := 0

	for strategyIdx < len(strategies) {
		strategy := strategies[strategyIdx]

		var page models.PlayerListingResponse
		if err := a.client.GetJSON(strategy.endpoint, strategy.params(week, offset), &page); err != nil {
			if strategyIdx+1 < len(strategies) {
				slog.Info("Free agent strategy failed, falling back",
					"week", week, "strategy", strategy.name, "error", err)
				strategyIdx++
				offset = 0
				continue
			}
			slog.Info("Free agent retrieval aborted", "week", week, "error", err)
			break
		}

		entries := page.Entries()
		if len(entries) == 0 {
			if offset == 0 && strategyIdx+1 < len(strategies) {
				slog.Info("Free agent strategy returned nothing, falling back",
					"week", week, "strategy", strategy.name)
				strategyIdx++
				continue
			}
			break
		}

		for i := range entries {
			if p := a.mapFreeAgent(&entries[i], week); p != nil {
				freeAgents[p.PlayerID] = p
			}
		}

		if next, ok := page.NextOffset(); ok {
			offset = next
		} else if len(entries) < freeAgentPageSize {
			break
		} else {
			offset += freeAgentPageSize
		}
	}

	if len(freeAgents) == 0 {
		a.probeFreeAgents(week, freeAgents)
	}

	slog.Info("Free agent retrieval complete", "week", week, "count", len(freeAgents))

	if len(freeAgents) > 0 && a.saveData {
		serializable := make(map[string]cachedFreeAgent, len(freeAgents))
		for playerID, p := range freeAgents {
			eligible := make([]string, 0, len(p.EligiblePositions))
			for pos := range p.EligiblePositions {
				eligible = append(eligible, pos)
			}
			serializable[playerID] = cachedFreeAgent{
				FullName:          p.FullName,
				FirstName:         p.FirstName,
				LastName:          p.LastName,
				NFLTeamAbbr:       p.NFLTeamAbbr,
				PrimaryPosition:   p.PrimaryPosition,
				EligiblePositions: eligible,
				Points:            p.Points,
			}
		}
		a.cache.Save(cacheKey, serializable)
	}

	return freeAgents
}

// probeFreeAgents requests a broad unfiltered listing and keeps only players
// with no owner.
func (a *API) probeFreeAgents(week int, freeAgents map[string]*models.Player) {
	params := map[string]string{
		"sport":         "NFL",
		"league_id":     a.league.LeagueID,
		"sort":          "SORT_SCORING_PERIOD",
		"sort_period":   strconv.Itoa(week),
		"sort_season":   strconv.Itoa(a.league.Season),
		"result_limit":  "200",
		"result_offset": "0",
	}

	var page models.PlayerListingResponse
	if err := a.client.GetJSON("/api/FetchPlayerListing", params, &page); err != nil {
		slog.Info("Free agent probe failed", "week", week, "error", err)
		return
	}

	entries := page.Entries()
	added := 0
	for i := range entries {
		leaguePlayer := entries[i].League()
		if leaguePlayer != nil && leaguePlayer.Owner != nil && leaguePlayer.Owner.ID != 0 {
			continue
		}
		if p := a.mapFreeAgent(&entries[i], week); p != nil {
			freeAgents[p.PlayerID] = p
			added++
		}
	}
	slog.Info("Free agent probe finished", "week", week, "added", added)
}

func (a *API) mapFreeAgent(entry *models.PlayerListingEntry, week int) *models.Player {
	pro := entry.Pro()
	if pro == nil || pro.ID == 0 {
		return nil
	}

	p := models.NewPlayer(strconv.Itoa(pro.ID), week)
	p.FullName = pro.FullName()
	p.FirstName = pro.FirstName()
	p.LastName = pro.LastName()
	p.NFLTeamAbbr = pro.Team().Abbreviation
	p.PrimaryPosition = mappedPosition(pro.Position)
	p.DisplayPosition = p.PrimaryPosition

	for _, pos := range pro.Eligibility() {
		applyEligibility(p.EligiblePositions, pos, a.league.FlexPositions)
	}

	if leaguePlayer := entry.League(); leaguePlayer != nil && leaguePlayer.ViewingActualPoints != nil {
		p.Points = leaguePlayer.ViewingActualPoints.Value
	}
	if pro.Injury != nil {
		p.Status = pro.Injury.TypeAbbreviation
	}

	return p
}
