package fleaflicker

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/flickerreport/internal/cache"
	"github.com/omarshaarawi/flickerreport/internal/models"
	"github.com/omarshaarawi/flickerreport/internal/schedule"
)

// transactionNormalizer reconciles the league activity feed, the completed
// trades feed, and per-team transaction feeds into week-bucketed events on
// the league. Epoch-window mapping is ground truth for week attribution;
// platform ordinals are overridden when they disagree.
type transactionNormalizer struct {
	client   *Client
	league   *models.League
	resolver *schedule.WeekWindowResolver
	cache    *cache.FileCache
	offline  bool
	saveData bool

	droppedEvents int
	droppedTrades int
}

type teamMoveCounts struct {
	moves  int
	trades int
}

type cachedTeamEvent struct {
	Kind     string `json:"kind"`
	PlayerID string `json:"player_id"`
}

func (n *transactionNormalizer) initWeeks() {
	for wk := n.league.StartWeek; wk <= n.league.NumRegularSeasonWeeks; wk++ {
		n.league.TransactionsByWeek[models.WeekKey(wk)] = &models.TransactionLog{}
	}
}

// resolveWeek picks a week for an event, preferring the epoch-derived window
// over the platform-reported ordinal when both exist and disagree.
func (n *transactionNormalizer) resolveWeek(ordinal int, hasOrdinal bool, timestampMillis int64, context string) (int, bool) {
	mapped, mappedOK := 0, false
	if !n.resolver.Empty() && timestampMillis > 0 {
		mapped, mappedOK = n.resolver.MapEpoch(timestampMillis)
	}

	switch {
	case hasOrdinal && mappedOK && mapped != ordinal:
		slog.Info("Week ordinal mismatch, epoch window wins",
			"context", context, "ordinal", ordinal, "epoch_week", mapped)
		return mapped, true
	case hasOrdinal:
		return ordinal, true
	case mappedOK:
		slog.Debug("Week derived from epoch window", "context", context, "week", mapped)
		return mapped, true
	default:
		return 0, false
	}
}

func (n *transactionNormalizer) bucket(week int) (*models.TransactionLog, bool) {
	log, ok := n.league.TransactionsByWeek[models.WeekKey(week)]
	return log, ok
}

func eventOrdinal(player *models.LeaguePlayerResponse) (int, bool) {
	if player == nil || len(player.RequestedGames) == 0 || player.RequestedGames[0].Period == nil {
		return 0, false
	}
	return player.RequestedGames[0].Period.Ordinal, true
}

func eventPlayerID(tx *models.TransactionResponse) (string, bool) {
	if tx.Player != nil && tx.Player.ProPlayer != nil {
		return strconv.Itoa(tx.Player.ProPlayer.ID), true
	}
	if len(tx.Players) > 0 && tx.Players[0].ProPlayer != nil {
		return strconv.Itoa(tx.Players[0].ProPlayer.ID), true
	}
	return "", false
}

// normalizeActivity buckets league-wide adds, claims, and drops by week and
// tallies best-effort per-team move and trade counts.
func (n *transactionNormalizer) normalizeActivity() map[string]*teamMoveCounts {
	counts := make(map[string]*teamMoveCounts)

	items, err := n.fetchActivityPages()
	if err != nil {
		slog.Debug("League activity pagination failed", "error", err)
		return counts
	}

	seasonStart := time.Date(n.league.Season, time.September, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	seasonEnd := time.Date(n.league.Season+1, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	for _, item := range items {
		millis, ok := item.Millis()
		if !ok || item.Transaction == nil {
			continue
		}
		if millis <= seasonStart || millis >= seasonEnd {
			continue
		}

		tx := item.Transaction
		txType := tx.Type
		if txType == "" {
			txType = "TRANSACTION_ADD"
		}

		teamID := ""
		if tx.Team != nil {
			teamID = strconv.Itoa(tx.Team.ID)
		}

		isTrade := strings.Contains(txType, "TRADE")
		isMove := strings.Contains(txType, "CLAIM") || strings.Contains(txType, "ADD") || strings.Contains(txType, "DROP")
		if teamID != "" && (isMove || isTrade) {
			c, ok := counts[teamID]
			if !ok {
				c = &teamMoveCounts{}
				counts[teamID] = c
			}
			if isMove {
				c.moves++
			}
			if isTrade {
				c.trades++
			}
		}

		ordinal, hasOrdinal := eventOrdinal(tx.Player)
		week, ok := n.resolveWeek(ordinal, hasOrdinal, millis, "activity "+txType)
		if !ok {
			n.droppedEvents++
			slog.Info("Activity event dropped, no week attribution",
				"type", txType, "team_id", teamID, "timestamp_ms", millis)
			continue
		}

		playerID, hasPlayer := eventPlayerID(tx)
		bucket, inRange := n.bucket(week)
		if !hasPlayer || teamID == "" || !inRange {
			continue
		}

		event := models.TransactionEvent{TeamID: teamID, PlayerID: playerID}
		switch {
		case strings.Contains(txType, "DROP"):
			bucket.Drops = append(bucket.Drops, event)
		case strings.Contains(txType, "CLAIM"):
			bucket.Claims = append(bucket.Claims, event)
		case strings.Contains(txType, "ADD"):
			bucket.Adds = append(bucket.Adds, event)
		}
	}

	return counts
}

func (n *transactionNormalizer) fetchActivityPages() ([]models.ActivityItem, error) {
	var items []models.ActivityItem
	params := map[string]string{"leagueId": n.league.LeagueID}
	for {
		var page models.ActivityResponse
		if err := n.client.GetJSON("/api/FetchLeagueActivity", params, &page); err != nil {
			return items, err
		}
		items = append(items, page.Items...)
		next := string(page.ResultOffsetNext)
		if next == "" || next == "0" {
			return items, nil
		}
		params = map[string]string{"leagueId": n.league.LeagueID, "resultOffset": next}
	}
}

// normalizeTrades attributes each completed trade to every participating
// team, deriving the sent list as the union of every other team's receipts.
// Trades with no resolvable week for any received player are discarded whole.
func (n *transactionNormalizer) normalizeTrades() {
	trades, err := n.fetchTradePages()
	if err != nil {
		slog.Debug("Completed trades fetch failed", "error", err)
		return
	}

	earliestStart, hasEarliest := n.resolver.EarliestStart()

	for _, trade := range trades {
		tradeMillis, hasMillis := trade.Millis()

		type receipt struct {
			teamID    string
			playerIDs []string
			week      int
		}
		var receipts []receipt

		for _, entry := range trade.Teams {
			if entry.Team == nil {
				continue
			}
			teamID := strconv.Itoa(entry.Team.ID)

			var playerIDs []string
			week, weekOK := 0, false
			if hasMillis {
				week, weekOK = n.resolveWeek(0, false, tradeMillis, "trade")
			}
			for _, obtained := range entry.PlayersObtained {
				if obtained.ProPlayer != nil {
					playerIDs = append(playerIDs, strconv.Itoa(obtained.ProPlayer.ID))
				}
				if !weekOK && len(obtained.RequestedGames) > 0 && obtained.RequestedGames[0].Period != nil {
					if start, err := obtained.RequestedGames[0].Period.StartEpochMilli.Int64(); err == nil {
						week, weekOK = n.resolveWeek(0, false, start, "trade requested game")
					}
				}
			}

			// offseason moves are attributed to the league's first week
			if !weekOK && hasMillis && hasEarliest && tradeMillis < earliestStart {
				week, weekOK = n.league.StartWeek, true
				slog.Info("Offseason trade attributed to start week",
					"trade_id", trade.ID, "team_id", teamID, "week", week)
			}

			if len(playerIDs) == 0 {
				continue
			}
			if !weekOK {
				n.droppedTrades++
				slog.Info("Trade discarded, no week attribution", "trade_id", trade.ID, "team_id", teamID)
				receipts = nil
				break
			}
			receipts = append(receipts, receipt{teamID: teamID, playerIDs: playerIDs, week: week})
		}

		for i, rec := range receipts {
			var sent []string
			for j, other := range receipts {
				if j == i {
					continue
				}
				sent = append(sent, other.playerIDs...)
			}
			bucket, inRange := n.bucket(rec.week)
			if !inRange {
				continue
			}
			bucket.Trades = append(bucket.Trades, models.TradeEvent{
				TeamID:          rec.teamID,
				PlayersReceived: rec.playerIDs,
				PlayersSent:     sent,
				TradeID:         trade.ID,
				Timestamp:       tradeMillis,
			})
		}
	}
}

func (n *transactionNormalizer) fetchTradePages() ([]models.TradeResponse, error) {
	var trades []models.TradeResponse
	params := map[string]string{"leagueId": n.league.LeagueID, "filter": "TRADES_COMPLETED"}
	for {
		var page models.TradesResponse
		if err := n.client.GetJSON("/api/FetchTrades", params, &page); err != nil {
			return trades, err
		}
		trades = append(trades, page.Trades...)
		next := string(page.ResultOffsetNext)
		if next == "" || next == "0" {
			return trades, nil
		}
		params = map[string]string{
			"leagueId":     n.league.LeagueID,
			"filter":       "TRADES_COMPLETED",
			"resultOffset": next,
		}
	}
}

// normalizeTeamTransactions hydrates week buckets from each team's own
// transaction feed. Paging stops early once a page's oldest item predates the
// earliest known week window. Offline runs are served entirely from the
// per-week cache; a cache miss is an empty result, never an error.
func (n *transactionNormalizer) normalizeTeamTransactions(teamIDs []string) {
	earliestStart, hasEarliest := n.resolver.EarliestStart()

	for _, teamID := range teamIDs {
		eventsByWeek := make(map[string][]cachedTeamEvent)

		if n.offline {
			for wk := n.league.StartWeek; wk <= n.league.WeekForReport; wk++ {
				key := models.WeekKey(wk)
				var cached []cachedTeamEvent
				if n.cache.Load(teamTransactionsCacheKey(wk, teamID), &cached) {
					eventsByWeek[key] = cached
				}
			}
			n.hydrateTeamEvents(teamID, eventsByWeek)
			continue
		}

		params := map[string]string{
			"sport":     "NFL",
			"league_id": n.league.LeagueID,
			"team_id":   teamID,
		}
	paging:
		for {
			var page models.ActivityResponse
			if err := n.client.GetJSON("/api/FetchLeagueTransactions", params, &page); err != nil {
				slog.Debug("Per-team transaction fetch failed", "team_id", teamID, "error", err)
				break
			}
			if len(page.Items) == 0 {
				break
			}

			var oldest int64
			for _, item := range page.Items {
				millis, hasMillis := item.Millis()
				if hasMillis && (oldest == 0 || millis < oldest) {
					oldest = millis
				}
				if item.Transaction == nil {
					continue
				}
				tx := item.Transaction
				txType := tx.Type
				if txType == "" {
					txType = "TRANSACTION_ADD"
				}

				ordinal, hasOrdinal := eventOrdinal(tx.Player)
				week, ok := n.resolveWeek(ordinal, hasOrdinal, millis, "team transaction "+txType)
				if !ok {
					n.droppedEvents++
					slog.Info("Team transaction dropped, no week attribution",
						"team_id", teamID, "type", txType, "timestamp_ms", millis)
					continue
				}
				if week < n.league.StartWeek || week > n.league.NumRegularSeasonWeeks {
					continue
				}

				var kind string
				switch {
				case strings.Contains(txType, "DROP"):
					kind = "drops"
				case strings.Contains(txType, "CLAIM"):
					kind = "claims"
				case strings.Contains(txType, "ADD"):
					kind = "adds"
				default:
					continue
				}

				playerID, hasPlayer := eventPlayerID(tx)
				if !hasPlayer {
					continue
				}
				key := models.WeekKey(week)
				eventsByWeek[key] = append(eventsByWeek[key], cachedTeamEvent{Kind: kind, PlayerID: playerID})
				slog.Debug("Team transaction mapped",
					"team_id", teamID, "kind", kind, "player_id", playerID, "week", week)
			}

			next := string(page.ResultOffsetNext)
			if next == "" || next == "0" {
				break paging
			}
			if hasEarliest && oldest > 0 && oldest < earliestStart {
				break paging
			}
			params = map[string]string{
				"sport":        "NFL",
				"league_id":    n.league.LeagueID,
				"team_id":      teamID,
				"resultOffset": next,
			}
		}

		n.hydrateTeamEvents(teamID, eventsByWeek)

		if n.saveData {
			for key, events := range eventsByWeek {
				wk, err := strconv.Atoi(key)
				if err != nil {
					continue
				}
				n.cache.Save(teamTransactionsCacheKey(wk, teamID), events)
			}
		}
	}
}

func (n *transactionNormalizer) hydrateTeamEvents(teamID string, eventsByWeek map[string][]cachedTeamEvent) {
	for key, events := range eventsByWeek {
		bucket, ok := n.league.TransactionsByWeek[key]
		if !ok {
			continue
		}
		for _, ev := range events {
			event := models.TransactionEvent{TeamID: teamID, PlayerID: ev.PlayerID}
			switch ev.Kind {
			case "adds":
				bucket.Adds = append(bucket.Adds, event)
			case "claims":
				bucket.Claims = append(bucket.Claims, event)
			case "drops":
				bucket.Drops = append(bucket.Drops, event)
			}
		}
	}
}

func (n *transactionNormalizer) logSummary() {
	for wk := n.league.StartWeek; wk <= n.league.WeekForReport && wk <= n.league.NumRegularSeasonWeeks; wk++ {
		if bucket, ok := n.bucket(wk); ok {
			slog.Info("Transaction summary",
				"week", wk,
				"adds", len(bucket.Adds),
				"claims", len(bucket.Claims),
				"drops", len(bucket.Drops),
				"trades", len(bucket.Trades))
		}
	}
	if n.droppedEvents > 0 || n.droppedTrades > 0 {
		slog.Info("Unattributable transactions dropped",
			"events", n.droppedEvents, "trades", n.droppedTrades)
	}
}

func teamTransactionsCacheKey(week int, teamID string) string {
	return fmt.Sprintf("week_%d/team_%s_transactions.json", week, teamID)
}
