package report

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/flickerreport/internal/metrics"
)

// Render formats the report data as a single Telegram-markdown message.
func Render(data *ReportData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🏈 *%s — Week %d Report*\n\n", data.LeagueName, data.Week))

	if len(data.Matchups) > 0 {
		sb.WriteString("*Matchups*\n")
		for _, m := range data.Matchups {
			if len(m.Teams) != 2 {
				continue
			}
			home, away := m.Teams[0], m.Teams[1]
			sb.WriteString(fmt.Sprintf("%s %.2f - %.2f %s", home.Name, home.Points, away.Points, away.Name))
			if m.Tied {
				sb.WriteString(" (Tie)")
			}
			if m.DivisionMatchup {
				sb.WriteString(" (Division)")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(data.Standings) > 0 {
		sb.WriteString("🏆 *Standings*\n")
		for i, team := range data.Standings {
			record := ""
			if team.CurrentRecord != nil {
				record = team.CurrentRecord.Str()
			}
			sb.WriteString(fmt.Sprintf("%d. %s (%s) Moves: %s Trades: %s\n",
				i+1, team.Name, record, team.NumMoves, team.NumTrades))
		}
		sb.WriteString("\n")
	}

	if len(data.MedianStandings) > 0 {
		sb.WriteString("📊 *Standings vs. Median*\n")
		for i, team := range data.MedianStandings {
			if team.CurrentMedianRecord == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, team.Name, team.CurrentMedianRecord.Str()))
		}
		sb.WriteString("\n")
	}

	renderTables(&sb, data.Tables)
	renderZScores(&sb, data)
	renderAwards(&sb, data)
	renderBestOfTheRest(&sb, data.BestOfTheRest)

	sb.WriteString(fmt.Sprintf("League: %s\n", data.LeagueURL))
	return sb.String()
}

func renderTables(sb *strings.Builder, t *metrics.Tables) {
	if t == nil {
		return
	}

	writeTable(sb, "🔥 *Weekly Scores*", t.Scores, "%.2f")
	if t.ScoreTies > 1 {
		sb.WriteString(fmt.Sprintf("_%d teams tied for first_\n", t.ScoreTies))
	}
	sb.WriteString("\n")

	sb.WriteString("🎯 *Coaching Efficiency*\n")
	for i, row := range t.CoachingEfficiency {
		if row.DQ {
			sb.WriteString(fmt.Sprintf("%d. %s (DQ)\n", i+1, row.TeamName))
			continue
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%.2f%%)\n", i+1, row.TeamName, row.Value))
	}
	if t.CoachingEfficiencyTies > 1 {
		sb.WriteString(fmt.Sprintf("_%d teams tied for first_\n", t.CoachingEfficiencyTies))
	}
	sb.WriteString("\n")

	writeTable(sb, "🍀 *Luck*", t.Luck, "%.2f")
	sb.WriteString("\n")

	if tableHasValues(t.BadBoy) {
		writeTable(sb, "👮 *Bad Boy Points*", t.BadBoy, "%.0f")
		sb.WriteString("\n")
	}
	if tableHasValues(t.Beef) {
		writeTable(sb, "🥩 *Beef*", t.Beef, "%.3f")
		sb.WriteString("\n")
	}
	if tableHasValues(t.HighRoller) {
		writeTable(sb, "💸 *High Roller Fines*", t.HighRoller, "$%.2f")
		sb.WriteString("\n")
	}

	writeTable(sb, "⚡ *Power Rankings*", t.PowerRankings, "%.2f")
	sb.WriteString("\n")
}

func writeTable(sb *strings.Builder, header string, rows []metrics.Row, valueFormat string) {
	sb.WriteString(header + "\n")
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s (", i+1, row.TeamName))
		sb.WriteString(fmt.Sprintf(valueFormat, row.Value))
		sb.WriteString(")\n")
	}
}

func tableHasValues(rows []metrics.Row) bool {
	for _, row := range rows {
		if row.Value != 0 {
			return true
		}
	}
	return false
}

func renderZScores(sb *strings.Builder, data *ReportData) {
	// an all-undefined column is omitted from the report entirely
	if data.ScoreZScores == nil {
		return
	}
	sb.WriteString("📈 *Season Score Z-Scores*\n")
	for _, team := range data.Standings {
		z, ok := data.ScoreZScores[team.TeamID]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %+.2f\n", team.Name, z))
	}
	sb.WriteString("\n")
}

func renderAwards(sb *strings.Builder, data *ReportData) {
	a := data.Awards
	if a == nil {
		return
	}

	sb.WriteString("🏅 *Awards*\n")

	if a.WorstStartSit != nil {
		sb.WriteString(fmt.Sprintf("Worst start/sit: %s benched %s (%.2f) behind %s (%.2f)\n",
			a.WorstStartSit.TeamName, a.WorstStartSit.BenchPlayer, a.WorstStartSit.BenchPoints,
			a.WorstStartSit.Starter, a.WorstStartSit.StartPoints))
	} else {
		sb.WriteString("Worst start/sit: unavailable\n")
	}

	if a.BestPickup != nil {
		sb.WriteString(fmt.Sprintf("Best pickup: %s added %s (%.2f)\n",
			a.BestPickup.TeamName, a.BestPickup.PlayerName, a.BestPickup.Points))
		if a.BestPickupHonorableMention != nil {
			hm := a.BestPickupHonorableMention
			sb.WriteString(fmt.Sprintf("  honorable mention: %s added %s (%.2f) but left them benched\n",
				hm.TeamName, hm.PlayerName, hm.Points))
		}
	}
	if a.WorstPickup != nil {
		sb.WriteString(fmt.Sprintf("Worst pickup: %s added %s (%.2f)\n",
			a.WorstPickup.TeamName, a.WorstPickup.PlayerName, a.WorstPickup.Points))
		if a.WorstPickupHonorableMention != nil {
			hm := a.WorstPickupHonorableMention
			sb.WriteString(fmt.Sprintf("  honorable mention: %s added %s (%.2f)\n",
				hm.TeamName, hm.PlayerName, hm.Points))
		}
	}

	if a.BestDrop != nil {
		sb.WriteString(fmt.Sprintf("Best drop: %s cut %s (%.2f)\n",
			a.BestDrop.TeamName, a.BestDrop.PlayerName, a.BestDrop.Points))
	}
	if a.WorstDrop != nil {
		sb.WriteString(fmt.Sprintf("Worst drop: %s cut %s (%.2f)\n",
			a.WorstDrop.TeamName, a.WorstDrop.PlayerName, a.WorstDrop.Points))
	}

	if a.BestTrade != nil {
		sb.WriteString(fmt.Sprintf("Best trade: %s netted %+.2f (received %.2f, sent %.2f)\n",
			a.BestTrade.TeamName, a.BestTrade.Net, a.BestTrade.ReceivedPoints, a.BestTrade.SentPoints))
	}
	if a.WorstTrade != nil {
		sb.WriteString(fmt.Sprintf("Worst trade: %s netted %+.2f (received %.2f, sent %.2f)\n",
			a.WorstTrade.TeamName, a.WorstTrade.Net, a.WorstTrade.ReceivedPoints, a.WorstTrade.SentPoints))
	}

	sb.WriteString("\n")
}

func renderBestOfTheRest(sb *strings.Builder, botr *BestOfTheRest) {
	if botr == nil {
		return
	}
	sb.WriteString("🧢 *Best of the Rest*\n")
	sb.WriteString(fmt.Sprintf("Optimal free agent lineup: %.2f points (would go %d-%d-%d)\n",
		botr.Points, botr.Wins, botr.Losses, botr.Ties))
	for _, p := range botr.Lineup {
		sb.WriteString(fmt.Sprintf("  %s %s (%.2f)\n", p.PrimaryPosition, p.FullName, p.Points))
	}
	sb.WriteString("\n")
}
