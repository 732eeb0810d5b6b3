package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

const testWeek = 5

func newTestLeague() *models.League {
	league := models.NewLeague("12345", 2024)
	league.BenchPositions = []string{"BN", "IR"}
	weekKey := models.WeekKey(testWeek)
	league.TeamsByWeek[weekKey] = make(map[string]*models.Team)
	league.PlayersByWeek[weekKey] = make(map[string]*models.Player)
	league.FreeAgentsByWeek[weekKey] = make(map[string]*models.Player)
	league.TransactionsByWeek[weekKey] = &models.TransactionLog{}
	return league
}

func addTeam(league *models.League, teamID, name string) *models.Team {
	team := &models.Team{TeamID: teamID, Name: name, Week: testWeek}
	league.TeamsByWeek[models.WeekKey(testWeek)][teamID] = team
	return team
}

func addPlayer(league *models.League, team *models.Team, playerID, name, selected string, points float64, eligible ...string) *models.Player {
	p := models.NewPlayer(playerID, testWeek)
	p.FullName = name
	p.SelectedPosition = selected
	p.Points = points
	for _, pos := range eligible {
		p.EligiblePositions[pos] = true
	}
	if team != nil {
		p.OwnerTeamID = team.TeamID
		team.Roster = append(team.Roster, p)
	}
	league.PlayersByWeek[models.WeekKey(testWeek)][playerID] = p
	return p
}

func TestWorstStartSit(t *testing.T) {
	league := newTestLeague()
	team := addTeam(league, "1", "Alpha")

	addPlayer(league, team, "s1", "Weak Starter", "WR", 4, "WR")
	addPlayer(league, team, "b1", "Hot Bench", "BN", 21, "WR", "FLEX")
	// eligible elsewhere but a smaller delta
	addPlayer(league, team, "s2", "Solid Starter", "RB", 15, "RB")
	addPlayer(league, team, "b2", "Other Bench", "BN", 18, "RB")

	a := Compute(league, testWeek)
	require.NotNil(t, a.WorstStartSit)
	assert.Equal(t, "Alpha", a.WorstStartSit.TeamName)
	assert.Equal(t, "Hot Bench", a.WorstStartSit.BenchPlayer)
	assert.Equal(t, "Weak Starter", a.WorstStartSit.Starter)
	assert.InDelta(t, 17.0, a.WorstStartSit.Delta, 0.001)
}

func TestWorstStartSitNoEligibleSwap(t *testing.T) {
	league := newTestLeague()
	team := addTeam(league, "1", "Alpha")

	addPlayer(league, team, "s1", "Starter", "QB", 10, "QB")
	// the bench player cannot fill the starter's slot
	addPlayer(league, team, "b1", "Bench", "BN", 25, "RB")

	a := Compute(league, testWeek)
	assert.Nil(t, a.WorstStartSit)
}

func TestPickupStartedPriorityWithHonorableMention(t *testing.T) {
	league := newTestLeague()
	teamT := addTeam(league, "1", "Team T")
	teamU := addTeam(league, "2", "Team U")

	addPlayer(league, teamT, "p", "Started Pickup", "WR", 12.5, "WR")
	addPlayer(league, teamU, "q", "Benched Pickup", "BN", 20.0, "WR")

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	log.Adds = []models.TransactionEvent{
		{TeamID: "1", PlayerID: "p"},
		{TeamID: "2", PlayerID: "q"},
	}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestPickup)
	assert.Equal(t, "Team T", a.BestPickup.TeamName)
	assert.Equal(t, "Started Pickup", a.BestPickup.PlayerName)
	assert.InDelta(t, 12.5, a.BestPickup.Points, 0.001)

	// the benched 20.0 beats the started 12.5 and earns the mention
	require.NotNil(t, a.BestPickupHonorableMention)
	assert.Equal(t, "Benched Pickup", a.BestPickupHonorableMention.PlayerName)

	// for worst, the started pickup already loses, so no mention
	require.NotNil(t, a.WorstPickup)
	assert.Equal(t, "Started Pickup", a.WorstPickup.PlayerName)
	assert.Nil(t, a.WorstPickupHonorableMention)
}

func TestPickupFallsBackToBenchedGroup(t *testing.T) {
	league := newTestLeague()
	team := addTeam(league, "1", "Alpha")
	addPlayer(league, team, "q", "Benched Only", "BN", 8, "TE")

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	log.Claims = []models.TransactionEvent{{TeamID: "1", PlayerID: "q"}}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestPickup)
	assert.Equal(t, "Benched Only", a.BestPickup.PlayerName)
	assert.Nil(t, a.BestPickupHonorableMention)
}

func TestPickupExcludesTradeReceivedPlayers(t *testing.T) {
	league := newTestLeague()
	team := addTeam(league, "1", "Alpha")

	addPlayer(league, team, "t1", "Traded Star", "WR", 30, "WR")
	addPlayer(league, team, "f1", "Real Pickup", "RB", 10, "RB")

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	// the trade also surfaces as an add-activity event
	log.Adds = []models.TransactionEvent{
		{TeamID: "1", PlayerID: "t1"},
		{TeamID: "1", PlayerID: "f1"},
	}
	log.Trades = []models.TradeEvent{
		{TeamID: "1", PlayersReceived: []string{"t1"}, PlayersSent: []string{"x"}},
	}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestPickup)
	assert.Equal(t, "Real Pickup", a.BestPickup.PlayerName)
}

func TestPickupTradeExclusionIsPerTeam(t *testing.T) {
	league := newTestLeague()
	teamA := addTeam(league, "1", "Alpha")
	addTeam(league, "2", "Beta")

	addPlayer(league, teamA, "p", "Shared Target", "WR", 18, "WR")

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	log.Adds = []models.TransactionEvent{{TeamID: "1", PlayerID: "p"}}
	// another team received the same player id via trade, which must not
	// suppress Alpha's pickup
	log.Trades = []models.TradeEvent{
		{TeamID: "2", PlayersReceived: []string{"p"}, PlayersSent: []string{"x"}},
	}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestPickup)
	assert.Equal(t, "Alpha", a.BestPickup.TeamName)
	assert.Equal(t, "Shared Target", a.BestPickup.PlayerName)
}

func TestPickupMissingPlayerKeptAsZeroPointCandidate(t *testing.T) {
	league := newTestLeague()
	addTeam(league, "1", "Alpha")

	// the picked-up player never appears on a weekly roster, only in the
	// free-agent pool
	ghost := models.NewPlayer("g1", testWeek)
	ghost.FullName = "Ghost Pickup"
	ghost.Points = 6.0
	league.FreeAgentsByWeek[models.WeekKey(testWeek)]["g1"] = ghost

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	log.Adds = []models.TransactionEvent{{TeamID: "1", PlayerID: "g1"}}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestPickup)
	assert.Equal(t, "Ghost Pickup", a.BestPickup.PlayerName)
	assert.Zero(t, a.BestPickup.Points)
	assert.False(t, a.BestPickup.Started)
}

func TestResolvePickupNameFallsBackToPriorWeek(t *testing.T) {
	league := newTestLeague()
	prevKey := models.WeekKey(testWeek - 1)
	league.PlayersByWeek[prevKey] = make(map[string]*models.Player)
	prev := models.NewPlayer("p9", testWeek-1)
	prev.FullName = "Last Week Guy"
	league.PlayersByWeek[prevKey]["p9"] = prev

	freeAgents := league.FreeAgentsByWeek[models.WeekKey(testWeek)]
	assert.Equal(t, "Last Week Guy", resolvePickupName(league, testWeek, "p9", freeAgents))
	assert.Equal(t, "unknown-id", resolvePickupName(league, testWeek, "unknown-id", freeAgents))
}

func TestDrops(t *testing.T) {
	league := newTestLeague()
	addTeam(league, "1", "Alpha")

	// dropped players show up in the free agent pool, not on rosters
	dud := models.NewPlayer("d1", testWeek)
	dud.FullName = "Dud"
	dud.Points = 1.5
	stud := models.NewPlayer("d2", testWeek)
	stud.FullName = "Stud"
	stud.Points = 24.0
	weekKey := models.WeekKey(testWeek)
	league.FreeAgentsByWeek[weekKey]["d1"] = dud
	league.FreeAgentsByWeek[weekKey]["d2"] = stud

	log := league.TransactionsByWeek[weekKey]
	log.Drops = []models.TransactionEvent{
		{TeamID: "1", PlayerID: "d1"},
		{TeamID: "1", PlayerID: "d2"},
		{TeamID: "1", PlayerID: "missing"},
	}

	a := Compute(league, testWeek)
	require.NotNil(t, a.BestDrop)
	assert.Equal(t, "Dud", a.BestDrop.PlayerName)
	require.NotNil(t, a.WorstDrop)
	assert.Equal(t, "Stud", a.WorstDrop.PlayerName)
}

func TestTrades(t *testing.T) {
	league := newTestLeague()
	team := addTeam(league, "1", "Alpha")

	addPlayer(league, team, "a", "Player A", "WR", 7, "WR")
	addPlayer(league, team, "b", "Player B", "RB", 8, "RB")
	sentAway := models.NewPlayer("c", testWeek)
	sentAway.FullName = "Player C"
	sentAway.Points = 20
	league.PlayersByWeek[models.WeekKey(testWeek)]["c"] = sentAway

	log := league.TransactionsByWeek[models.WeekKey(testWeek)]
	log.Trades = []models.TradeEvent{
		{
			TeamID:          "1",
			PlayersReceived: []string{"a", "b"},
			PlayersSent:     []string{"c"},
		},
		// pick-only side, excluded
		{
			TeamID:          "1",
			PlayersReceived: []string{"a"},
		},
	}

	a := Compute(league, testWeek)
	// received 15.0 minus sent 20.0 lands in worst, never best
	assert.Nil(t, a.BestTrade)
	require.NotNil(t, a.WorstTrade)
	assert.InDelta(t, -5.0, a.WorstTrade.Net, 0.001)
	assert.InDelta(t, 15.0, a.WorstTrade.ReceivedPoints, 0.001)
	assert.InDelta(t, 20.0, a.WorstTrade.SentPoints, 0.001)
}

func TestComputeWithEmptyWeek(t *testing.T) {
	league := newTestLeague()
	a := Compute(league, testWeek)
	assert.Nil(t, a.WorstStartSit)
	assert.Nil(t, a.BestPickup)
	assert.Nil(t, a.BestDrop)
	assert.Nil(t, a.BestTrade)
}
