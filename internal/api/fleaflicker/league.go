package fleaflicker

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/omarshaarawi/flickerreport/internal/cache"
	"github.com/omarshaarawi/flickerreport/internal/median"
	"github.com/omarshaarawi/flickerreport/internal/models"
	"github.com/omarshaarawi/flickerreport/internal/schedule"
)

// API maps Fleaflicker league payloads into the common league model.
type API struct {
	client   *Client
	cache    *cache.FileCache
	offline  bool
	saveData bool

	defaultNumPlayoffSlots       int
	defaultNumRegularSeasonWeeks int

	league *models.League
}

type Options struct {
	LeagueID string
	Season   int
	DataDir  string
	Offline  bool
	SaveData bool

	DefaultNumPlayoffSlots       int
	DefaultNumRegularSeasonWeeks int
}

func NewAPI(client *Client, opts Options) *API {
	return &API{
		client:                       client,
		cache:                        cache.NewFileCache(opts.DataDir),
		offline:                      opts.Offline,
		saveData:                     opts.SaveData,
		defaultNumPlayoffSlots:       opts.DefaultNumPlayoffSlots,
		defaultNumRegularSeasonWeeks: opts.DefaultNumRegularSeasonWeeks,
		league:                       models.NewLeague(opts.LeagueID, opts.Season),
	}
}

// Populate fetches every payload the report needs and assembles the fully
// populated league model. Transport failures on required fetches abort the
// run; best-effort scraped fields degrade field by field.
func (a *API) Populate(startWeek, weekForReport int) (*models.League, error) {
	league := a.league
	league.StartWeek = startWeek
	league.URL = fmt.Sprintf("%s/nfl/leagues/%s", defaultBaseURL, league.LeagueID)

	a.scrapeBestEffortFields()

	// an unset report week follows the scraped current week
	if weekForReport <= 0 {
		weekForReport = league.Week
	}
	if weekForReport < startWeek {
		weekForReport = startWeek
	}
	league.WeekForReport = weekForReport

	standings, err := a.fetchStandings()
	if err != nil {
		return nil, err
	}

	rules, err := a.fetchRules()
	if err != nil {
		return nil, err
	}

	teamInfo, rankedTeamIDs := a.applyStandings(standings)
	a.applyRosterPositions(rules)

	scoreboards, weekStarts, err := a.fetchScoreboards()
	if err != nil {
		return nil, err
	}
	resolver := schedule.NewWeekWindowResolver(weekStarts)
	a.logWeekWindows(resolver)

	a.computeMedians(scoreboards)

	normalizer := &transactionNormalizer{
		client:   a.client,
		league:   league,
		resolver: resolver,
		cache:    a.cache,
		offline:  a.offline,
		saveData: a.saveData,
	}
	normalizer.initWeeks()
	moveCounts := normalizer.normalizeActivity()
	normalizer.normalizeTrades()
	normalizer.normalizeTeamTransactions(rankedTeamIDs)
	normalizer.logSummary()

	a.buildWeeks(scoreboards, teamInfo, moveCounts)

	if err := a.fetchRosters(rankedTeamIDs); err != nil {
		return nil, err
	}

	for wk := startWeek; wk <= weekForReport; wk++ {
		league.FreeAgentsByWeek[models.WeekKey(wk)] = a.fetchFreeAgentsForWeek(wk)
	}

	a.finalizeStandings()

	return league, nil
}

// scrapeBestEffortFields derives the current week and playoff configuration
// from the league web pages. Every failure here degrades to a conservative
// default instead of aborting.
func (a *API) scrapeBestEffortFields() {
	league := a.league

	currentWeek := ScrapedField{Status: FieldUnavailable}
	if doc, err := a.client.GetHTML(fmt.Sprintf("/nfl/leagues/%s/scores", league.LeagueID)); err != nil {
		slog.Error("Unable to fetch league scores page", "error", err)
	} else if wk, ok := scrapeCurrentWeek(doc); ok {
		currentWeek = ScrapedField{Value: wk, Status: FieldOK}
	} else {
		slog.Error("Unable to scrape the current week from the scores page")
	}
	if currentWeek.Status == FieldOK {
		league.Week = currentWeek.Value
	} else {
		league.Week = league.StartWeek
		slog.Info("Current week degraded to start week", "week", league.Week)
	}

	rules := scrapedRules{
		playoffSlots:          ScrapedField{Status: FieldUnavailable},
		numRegularSeasonWeeks: ScrapedField{Status: FieldUnavailable},
	}
	if doc, err := a.client.GetHTML(fmt.Sprintf("/nfl/leagues/%s/rules", league.LeagueID)); err != nil {
		slog.Error("Unable to fetch league rules page", "error", err)
	} else {
		rules = scrapeLeagueRules(doc, league.Season)
	}

	if rules.playoffSlots.Status == FieldOK {
		league.NumPlayoffSlots = rules.playoffSlots.Value
	} else {
		league.NumPlayoffSlots = a.defaultNumPlayoffSlots
		slog.Info("Playoff slots degraded to configured default", "slots", league.NumPlayoffSlots)
	}

	switch rules.numRegularSeasonWeeks.Status {
	case FieldOK:
		league.NumRegularSeasonWeeks = rules.numRegularSeasonWeeks.Value
	case FieldDegraded:
		league.NumRegularSeasonWeeks = rules.numRegularSeasonWeeks.Value
		slog.Info("Regular season length degraded to season default", "weeks", league.NumRegularSeasonWeeks)
	default:
		if a.defaultNumRegularSeasonWeeks > 0 {
			league.NumRegularSeasonWeeks = a.defaultNumRegularSeasonWeeks
		} else {
			league.NumRegularSeasonWeeks = defaultRegularSeasonWeeks(league.Season)
		}
		slog.Info("Regular season length unavailable, using default", "weeks", league.NumRegularSeasonWeeks)
	}
}

func (a *API) fetchStandings() (*models.LeagueStandingsResponse, error) {
	var standings models.LeagueStandingsResponse
	params := map[string]string{"leagueId": a.league.LeagueID}
	if a.league.Season > 0 {
		params["season"] = strconv.Itoa(a.league.Season)
	}
	if err := a.client.GetJSON("/api/FetchLeagueStandings", params, &standings); err != nil {
		return nil, fmt.Errorf("fetching league standings: %w", err)
	}
	return &standings, nil
}

func (a *API) fetchRules() (*models.RulesResponse, error) {
	var rules models.RulesResponse
	params := map[string]string{"leagueId": a.league.LeagueID}
	if err := a.client.GetJSON("/api/FetchLeagueRules", params, &rules); err != nil {
		return nil, fmt.Errorf("fetching league rules: %w", err)
	}
	return &rules, nil
}

type teamStanding struct {
	raw          models.StandingTeamResponse
	divisionID   string
	divisionName string
}

// applyStandings records league metadata, divisions, and a rank-ordered team
// list.
func (a *API) applyStandings(standings *models.LeagueStandingsResponse) (map[string]teamStanding, []string) {
	league := a.league

	league.Name = standings.League.Name
	league.NumTeams = standings.League.Size
	league.FAABBudget = standings.League.DefaultWaiverBudget
	league.IsFAAB = league.FAABBudget > 0
	// Fleaflicker supports median and mean matchup formats but does not
	// expose the setting through the API
	league.HasMedianMatchup = false

	teamInfo := make(map[string]teamStanding)
	var ranked []models.StandingTeamResponse
	rankedDivision := make(map[int]string)

	for _, division := range standings.Divisions {
		divisionID := strconv.Itoa(division.ID)
		league.Divisions[divisionID] = division.Name
		league.NumDivisions++
		for _, team := range division.Teams {
			teamInfo[strconv.Itoa(team.ID)] = teamStanding{
				raw:          team,
				divisionID:   divisionID,
				divisionName: division.Name,
			}
			rankedDivision[team.ID] = divisionID
			ranked = append(ranked, team)
		}
	}
	league.HasDivisions = league.NumDivisions > 0

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RecordOverall.Rank < ranked[j].RecordOverall.Rank
	})

	rankedIDs := make([]string, 0, len(ranked))
	for _, team := range ranked {
		rankedIDs = append(rankedIDs, strconv.Itoa(team.ID))
	}
	return teamInfo, rankedIDs
}

// applyRosterPositions maps platform roster labels into the canonical roster
// layout, registering flex categories on the league.
func (a *API) applyRosterPositions(rules *models.RulesResponse) {
	league := a.league
	league.BenchPositions = benchPositions

	for _, position := range rules.RosterPositions {
		attrs, known := positionMapping[position.Label]
		if !known {
			slog.Debug("Unknown roster position label", "label", position.Label)
			attrs = positionAttributes{base: position.Label}
		}

		count := 0
		switch {
		case position.Start > 0:
			count = position.Start
		case position.Label == "BN":
			count = position.Max
		}

		if attrs.isFlex {
			league.FlexPositions[attrs.base] = attrs.flexPositions
		}

		league.RosterPositions = append(league.RosterPositions, models.RosterSlot{
			Position: attrs.base,
			Count:    count,
		})
		if !league.IsBenchPosition(attrs.base) {
			for i := 0; i < count; i++ {
				league.RosterActiveSlots = append(league.RosterActiveSlots, attrs.base)
			}
		}
	}
}

// fetchScoreboards retrieves every regular season week's scoreboard and
// collects the week start boundaries used to build the window resolver.
func (a *API) fetchScoreboards() (map[int]*models.ScoreboardResponse, map[int]int64, error) {
	league := a.league
	scoreboards := make(map[int]*models.ScoreboardResponse)
	weekStarts := make(map[int]int64)

	for wk := league.StartWeek; wk <= league.NumRegularSeasonWeeks; wk++ {
		params := map[string]string{
			"leagueId":      league.LeagueID,
			"scoringPeriod": strconv.Itoa(wk),
		}
		if league.Season > 0 {
			params["season"] = strconv.Itoa(league.Season)
		}

		var scoreboard models.ScoreboardResponse
		if err := a.client.GetJSON("/api/FetchLeagueScoreboard", params, &scoreboard); err != nil {
			return nil, nil, fmt.Errorf("fetching scoreboard for week %d: %w", wk, err)
		}
		scoreboards[wk] = &scoreboard
		slog.Debug("Scoreboard fetched", "week", wk, "games", len(scoreboard.Games))

		if scoreboard.SchedulePeriod.Low != nil {
			if start, ok := scoreboard.SchedulePeriod.Low.StartMillis(); ok {
				weekStarts[wk] = start
			}
		}
	}

	return scoreboards, weekStarts, nil
}

func (a *API) logWeekWindows(resolver *schedule.WeekWindowResolver) {
	for _, wk := range resolver.Weeks() {
		start, end, _ := resolver.Window(wk)
		slog.Info("Week window",
			"week", wk,
			"start", time.UnixMilli(start).Format("2006-01-02"),
			"end", time.UnixMilli(end).Format("2006-01-02"))
	}
}

// computeMedians derives the weekly median score for every scored week up to
// the report week. Weeks with no parsed scores get no entry.
func (a *API) computeMedians(scoreboards map[int]*models.ScoreboardResponse) {
	league := a.league

	lastWeek := league.WeekForReport
	if league.NumRegularSeasonWeeks < lastWeek {
		lastWeek = league.NumRegularSeasonWeeks
	}

	for wk := league.StartWeek; wk <= lastWeek; wk++ {
		scoreboard := scoreboards[wk]
		if scoreboard == nil {
			continue
		}

		var scores []float64
		for _, game := range scoreboard.Games {
			for side, scoreObj := range map[string]*models.ScoreObject{"home": game.HomeScore, "away": game.AwayScore} {
				if value, ok := scoreObj.ScoreValue(); ok {
					scores = append(scores, value)
				} else {
					slog.Debug("Score parse miss", "week", wk, "side", side)
				}
			}
		}

		if m, ok := median.WeeklyMedian(scores); ok {
			league.MedianScoreByWeek[models.WeekKey(wk)] = m
			slog.Info("Weekly median", "week", wk, "scores", len(scores), "median", m)
		} else {
			slog.Info("Weekly median unavailable", "week", wk)
		}
	}
}

// buildWeeks constructs the per-week team snapshots and matchups, folding
// each week's score-vs-median result into the cumulative median records in
// strict week order.
func (a *API) buildWeeks(scoreboards map[int]*models.ScoreboardResponse, teamInfo map[string]teamStanding, moveCounts map[string]*teamMoveCounts) {
	league := a.league
	medianEngine := median.NewEngine()

	weeks := make([]int, 0, len(scoreboards))
	for wk := range scoreboards {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)

	for _, wk := range weeks {
		scoreboard := scoreboards[wk]
		weekKey := models.WeekKey(wk)
		matchupWeek := scoreboard.SchedulePeriod.Value
		if matchupWeek == 0 {
			matchupWeek = wk
		}

		league.TeamsByWeek[weekKey] = make(map[string]*models.Team)
		league.MatchupsByWeek[weekKey] = nil

		for _, game := range scoreboard.Games {
			matchup := &models.Matchup{
				Week:     matchupWeek,
				Complete: game.FinalScore,
				Tied:     game.HomeResult == "TIE",
			}

			sides := []struct {
				team   models.StandingTeamResponse
				other  models.StandingTeamResponse
				score  *models.ScoreObject
				result string
			}{
				{game.Home, game.Away, game.HomeScore, game.HomeResult},
				{game.Away, game.Home, game.AwayScore, game.AwayResult},
			}

			for _, side := range sides {
				team := a.buildTeam(wk, side.team, teamInfo, moveCounts)

				teamDivision := teamInfo[team.TeamID].divisionID
				otherDivision := teamInfo[strconv.Itoa(side.other.ID)].divisionID
				if teamDivision != "" && teamDivision == otherDivision {
					matchup.DivisionMatchup = true
					team.DivisionStreakStr = team.CurrentRecord.Streak()
				}

				if points, ok := side.score.ScoreValue(); ok {
					team.Points = points
				}

				weekMedian, hasMedian := league.WeekMedian(wk)
				team.CurrentMedianRecord = medianEngine.FoldIn(wk, team.TeamID, team.Name, team.Points, weekMedian, hasMedian)

				matchup.Teams = append(matchup.Teams, team)
				league.TeamsByWeek[weekKey][team.TeamID] = team

				switch side.result {
				case "WIN":
					matchup.Winner = team
				case "LOSE":
					matchup.Loser = team
				}
			}

			league.MatchupsByWeek[weekKey] = append(league.MatchupsByWeek[weekKey], matchup)
		}
	}

	// carry cumulative median records onto the report week snapshots even
	// when the report week itself had no resolvable median
	if teams, ok := league.TeamsByWeek[models.WeekKey(league.WeekForReport)]; ok {
		medianEngine.Attach(teams)
	}
}

func (a *API) buildTeam(week int, raw models.StandingTeamResponse, teamInfo map[string]teamStanding, moveCounts map[string]*teamMoveCounts) *models.Team {
	league := a.league
	teamID := strconv.Itoa(raw.ID)
	info := teamInfo[teamID]

	team := &models.Team{
		TeamID:   teamID,
		Week:     week,
		Name:     raw.Name,
		Division: info.divisionID,
		URL:      fmt.Sprintf("%s/nfl/leagues/%s/teams/%s", defaultBaseURL, league.LeagueID, teamID),
	}

	for _, owner := range info.raw.Owners {
		team.Managers = append(team.Managers, models.Manager{
			ManagerID: strconv.Itoa(owner.ID),
			Name:      owner.DisplayName,
		})
	}
	team.ManagerNames = models.JoinManagerNames(team.Managers)

	// the activity feed silently paginates, so these counts are best-effort
	moves, trades := 0, 0
	if counts, ok := moveCounts[teamID]; ok {
		moves, trades = counts.moves, counts.trades
	}
	team.NumMoves = fmt.Sprintf("%d*", moves)
	team.NumTrades = fmt.Sprintf("%d*", trades)

	team.WaiverPriority = raw.WaiverPosition
	if team.WaiverPriority > 0 {
		league.HasWaiverPriorities = true
	}
	if raw.WaiverAcquisitionBudget != nil {
		team.FAAB = raw.WaiverAcquisitionBudget.Value
	}

	streakType := "T"
	streakLen := 0
	if raw.Streak != nil {
		switch {
		case raw.Streak.Value > 0:
			streakType = "W"
		case raw.Streak.Value < 0:
			streakType = "L"
		}
		streakLen = int(raw.Streak.Value)
		if streakLen < 0 {
			streakLen = -streakLen
		}
	}

	record := models.NewRecord(teamID, team.Name)
	record.Wins = raw.RecordOverall.Wins
	record.Losses = raw.RecordOverall.Losses
	record.Ties = raw.RecordOverall.Ties
	if raw.RecordOverall.WinPercentage != nil {
		record.Percentage = round3(raw.RecordOverall.WinPercentage.Value)
	}
	if raw.PointsFor != nil {
		record.PointsFor = raw.PointsFor.Value
	}
	if raw.PointsAgainst != nil {
		record.PointsAgainst = raw.PointsAgainst.Value
	}
	record.StreakType = streakType
	record.StreakLen = streakLen
	record.Rank = raw.RecordOverall.Rank
	record.Division = info.divisionID
	record.DivisionWins = raw.RecordDivision.Wins
	record.DivisionLosses = raw.RecordDivision.Losses
	record.DivisionTies = raw.RecordDivision.Ties
	if raw.RecordDivision.WinPercentage != nil {
		record.DivisionPercentage = round3(raw.RecordDivision.WinPercentage.Value)
	}
	record.DivisionRank = raw.RecordDivision.Rank

	team.CurrentRecord = record
	team.StreakStr = record.Streak()

	return team
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

// fetchRosters retrieves each team's roster for every week up to the report
// week and maps the players into the weekly player collections.
func (a *API) fetchRosters(teamIDs []string) error {
	league := a.league

	for wk := league.StartWeek; wk <= league.WeekForReport; wk++ {
		weekKey := models.WeekKey(wk)
		league.PlayersByWeek[weekKey] = make(map[string]*models.Player)

		for _, teamID := range teamIDs {
			params := map[string]string{
				"leagueId":      league.LeagueID,
				"teamId":        teamID,
				"scoringPeriod": strconv.Itoa(wk),
			}
			if league.Season > 0 {
				params["season"] = strconv.Itoa(league.Season)
			}

			var roster models.RosterResponse
			if err := a.client.GetJSON("/api/FetchRoster", params, &roster); err != nil {
				return fmt.Errorf("fetching roster for team %s week %d: %w", teamID, wk, err)
			}

			team := league.TeamsByWeek[weekKey][teamID]
			for _, group := range roster.Groups {
				for _, slot := range group.Slots {
					player := a.mapRosterPlayer(wk, slot)
					if player == nil {
						continue
					}
					if team != nil {
						team.Roster = append(team.Roster, player)
					}
					league.PlayersByWeek[weekKey][player.PlayerID] = player
				}
			}
		}
	}

	return nil
}

func (a *API) mapRosterPlayer(week int, slot models.RosterSlotResponse) *models.Player {
	leaguePlayer := slot.LeaguePlayer
	if leaguePlayer == nil || leaguePlayer.ProPlayer == nil {
		return nil
	}
	pro := leaguePlayer.ProPlayer

	player := models.NewPlayer(strconv.Itoa(pro.ID), week)
	player.ByeWeek = pro.NFLByeWeek
	player.DisplayPosition = mappedPosition(pro.Position)
	player.PrimaryPosition = player.DisplayPosition
	player.PositionType = positionType(player.PrimaryPosition)
	player.NFLTeamAbbr = pro.ProTeam.Abbreviation
	player.NFLTeamName = fmt.Sprintf("%s %s", pro.ProTeam.Location, pro.ProTeam.Name)

	if slot.Position.Label == "D/ST" {
		player.FirstName = pro.NameFull
		// Fleaflicker has no D/ST logos; ESPN serves higher resolution ones
		player.HeadshotURL = fmt.Sprintf("https://a.espncdn.com/combiner/i?img=/i/teamlogos/nfl/500/%s.png", player.NFLTeamAbbr)
	} else {
		player.FirstName = pro.NameFirst
		player.LastName = pro.NameLast
		player.HeadshotURL = pro.HeadshotURL
	}
	player.FullName = pro.NameFull

	if leaguePlayer.Owner != nil {
		player.OwnerTeamID = strconv.Itoa(leaguePlayer.Owner.ID)
		player.OwnerTeamName = leaguePlayer.Owner.Name
	}
	if leaguePlayer.ViewingActualPoints != nil {
		player.Points = leaguePlayer.ViewingActualPoints.Value
	}

	for _, eligible := range pro.PositionEligibility {
		applyEligibility(player.EligiblePositions, eligible, a.league.FlexPositions)
	}

	player.SelectedPosition = mappedPosition(slot.Position.Label)
	player.SelectedPositionIsFlex = isFlexLabel(slot.Position.Label)

	if pro.Injury != nil {
		player.Status = pro.Injury.TypeAbbreviation
	}

	for _, stat := range leaguePlayer.ViewingActualStats {
		value := 0.0
		if stat.Value != nil {
			value = stat.Value.Value
		}
		player.Stats = append(player.Stats, models.Stat{
			StatID: stat.Category.ID,
			Name:   stat.Category.Abbreviation,
			Value:  value,
		})
	}

	return player
}

// finalizeStandings orders the report week's teams by platform rank and by
// cumulative median record.
func (a *API) finalizeStandings() {
	league := a.league
	teams, ok := league.TeamsByWeek[models.WeekKey(league.WeekForReport)]
	if !ok {
		return
	}

	standings := make([]*models.Team, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, team)
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].CurrentRecord.Rank < standings[j].CurrentRecord.Rank
	})
	league.CurrentStandings = standings

	medianStandings := make([]*models.Team, len(standings))
	copy(medianStandings, standings)
	median.SortStandings(medianStandings)
	league.CurrentMedianStandings = medianStandings
}
