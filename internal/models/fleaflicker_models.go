package models

import (
	"encoding/json"
	"strconv"
)

// Fleaflicker API payload shapes. The API is inconsistent about numeric
// encoding (protobuf JSON emits 64-bit values as strings) and about
// snake_case vs camelCase keys on some endpoints, so the loose fields below
// carry accessor methods with explicit fallback chains instead of being read
// directly.

type FormattedValue struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

type ScoreObject struct {
	Score     *FormattedValue `json:"score"`
	Value     *float64        `json:"value"`
	Formatted string          `json:"formatted"`
}

// ScoreValue resolves a score trying score.value, then value, then the
// formatted string.
func (s *ScoreObject) ScoreValue() (float64, bool) {
	if s == nil {
		return 0, false
	}
	if s.Score != nil && (s.Score.Value != 0 || s.Score.Formatted != "") {
		return s.Score.Value, true
	}
	if s.Value != nil {
		return *s.Value, true
	}
	if s.Formatted != "" {
		if v, err := strconv.ParseFloat(s.Formatted, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

type LeagueStandingsResponse struct {
	League    LeagueInfoResponse `json:"league"`
	Divisions []DivisionResponse `json:"divisions"`
}

type LeagueInfoResponse struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Size                int    `json:"size"`
	DefaultWaiverBudget int    `json:"defaultWaiverBudget"`
}

type DivisionResponse struct {
	ID    int                    `json:"id"`
	Name  string                 `json:"name"`
	Teams []StandingTeamResponse `json:"teams"`
}

type StandingTeamResponse struct {
	ID                      int             `json:"id"`
	Name                    string          `json:"name"`
	Owners                  []OwnerResponse `json:"owners"`
	RecordOverall           RecordResponse  `json:"recordOverall"`
	RecordDivision          RecordResponse  `json:"recordDivision"`
	PointsFor               *FormattedValue `json:"pointsFor"`
	PointsAgainst           *FormattedValue `json:"pointsAgainst"`
	Streak                  *FormattedValue `json:"streak"`
	WaiverPosition          int             `json:"waiverPosition"`
	WaiverAcquisitionBudget *FormattedValue `json:"waiverAcquisitionBudget"`
}

type OwnerResponse struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
}

type RecordResponse struct {
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	Ties          int             `json:"ties"`
	WinPercentage *FormattedValue `json:"winPercentage"`
	Rank          int             `json:"rank"`
}

type ScoreboardResponse struct {
	Games          []GameResponse         `json:"games"`
	SchedulePeriod SchedulePeriodResponse `json:"schedulePeriod"`
}

type SchedulePeriodResponse struct {
	Value int               `json:"value"`
	Low   *ScheduleBoundary `json:"low"`
}

type ScheduleBoundary struct {
	StartEpochMilli json.Number `json:"startEpochMilli"`
}

// StartMillis parses the epoch boundary, tolerating both string and numeric
// encodings.
func (b *ScheduleBoundary) StartMillis() (int64, bool) {
	if b == nil || b.StartEpochMilli == "" {
		return 0, false
	}
	if v, err := b.StartEpochMilli.Int64(); err == nil {
		return v, true
	}
	if f, err := b.StartEpochMilli.Float64(); err == nil {
		return int64(f), true
	}
	return 0, false
}

type GameResponse struct {
	ID         json.Number          `json:"id"`
	Home       StandingTeamResponse `json:"home"`
	Away       StandingTeamResponse `json:"away"`
	HomeScore  *ScoreObject         `json:"homeScore"`
	AwayScore  *ScoreObject         `json:"awayScore"`
	HomeResult string               `json:"homeResult"`
	AwayResult string               `json:"awayResult"`
	FinalScore bool                 `json:"isFinalScore"`
}

type RulesResponse struct {
	RosterPositions []RosterPositionResponse `json:"rosterPositions"`
}

type RosterPositionResponse struct {
	Label string `json:"label"`
	Group string `json:"group"`
	Start int    `json:"start"`
	Max   int    `json:"max"`
}

type RosterResponse struct {
	Groups []RosterGroupResponse `json:"groups"`
}

type RosterGroupResponse struct {
	Slots []RosterSlotResponse `json:"slots"`
}

type RosterSlotResponse struct {
	Position     PositionResponse      `json:"position"`
	LeaguePlayer *LeaguePlayerResponse `json:"leaguePlayer"`
}

type PositionResponse struct {
	Label string `json:"label"`
}

type LeaguePlayerResponse struct {
	ProPlayer           *ProPlayerResponse   `json:"proPlayer"`
	Owner               *OwnerRefResponse    `json:"owner"`
	ViewingActualPoints *FormattedValue      `json:"viewingActualPoints"`
	ViewingActualStats  []PlayerStatResponse `json:"viewingActualStats"`
	RequestedGames      []RequestedGame      `json:"requestedGames"`
}

type OwnerRefResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProPlayerResponse struct {
	ID                  int             `json:"id"`
	NameFull            string          `json:"nameFull"`
	NameFirst           string          `json:"nameFirst"`
	NameLast            string          `json:"nameLast"`
	Position            string          `json:"position"`
	ProTeam             ProTeamResponse `json:"proTeam"`
	NFLByeWeek          int             `json:"nflByeWeek"`
	HeadshotURL         string          `json:"headshotUrl"`
	PositionEligibility []string        `json:"positionEligibility"`
	Injury              *InjuryResponse `json:"injury"`

	// snake_case variants served by the player listing endpoint
	NameFullSnake            string          `json:"name_full"`
	NameFirstSnake           string          `json:"name_first"`
	NameLastSnake            string          `json:"name_last"`
	ProTeamSnake             ProTeamResponse `json:"pro_team"`
	PositionEligibilitySnake []string        `json:"position_eligibility"`
}

func (p *ProPlayerResponse) FullName() string {
	if p.NameFull != "" {
		return p.NameFull
	}
	return p.NameFullSnake
}

func (p *ProPlayerResponse) FirstName() string {
	if p.NameFirst != "" {
		return p.NameFirst
	}
	if p.NameFirstSnake != "" {
		return p.NameFirstSnake
	}
	return p.FullName()
}

func (p *ProPlayerResponse) LastName() string {
	if p.NameLast != "" {
		return p.NameLast
	}
	return p.NameLastSnake
}

func (p *ProPlayerResponse) Team() ProTeamResponse {
	if p.ProTeam.Abbreviation != "" {
		return p.ProTeam
	}
	return p.ProTeamSnake
}

func (p *ProPlayerResponse) Eligibility() []string {
	if len(p.PositionEligibility) > 0 {
		return p.PositionEligibility
	}
	return p.PositionEligibilitySnake
}

type ProTeamResponse struct {
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location"`
	Name         string `json:"name"`
}

type InjuryResponse struct {
	// typeAbbreviaition is misspelled in the API data
	TypeAbbreviation string `json:"typeAbbreviaition"`
}

type PlayerStatResponse struct {
	Category StatCategoryResponse `json:"category"`
	Value    *FormattedValue      `json:"value"`
}

type StatCategoryResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type RequestedGame struct {
	Period *GamePeriod `json:"period"`
}

type GamePeriod struct {
	Ordinal         int         `json:"ordinal"`
	StartEpochMilli json.Number `json:"startEpochMilli"`
}

type ActivityResponse struct {
	Items            []ActivityItem `json:"items"`
	ResultOffsetNext json.Number    `json:"resultOffsetNext"`
}

type ActivityItem struct {
	TimeEpochMilli json.Number          `json:"timeEpochMilli"`
	Transaction    *TransactionResponse `json:"transaction"`
}

func (a *ActivityItem) Millis() (int64, bool) {
	if a.TimeEpochMilli == "" {
		return 0, false
	}
	if v, err := a.TimeEpochMilli.Int64(); err == nil {
		return v, true
	}
	if f, err := a.TimeEpochMilli.Float64(); err == nil {
		return int64(f), true
	}
	return 0, false
}

type TransactionResponse struct {
	Type    string                 `json:"type"`
	Team    *OwnerRefResponse      `json:"team"`
	Player  *LeaguePlayerResponse  `json:"player"`
	Players []LeaguePlayerResponse `json:"players"`
}

type TradesResponse struct {
	Trades           []TradeResponse `json:"trades"`
	ResultOffsetNext json.Number     `json:"resultOffsetNext"`
}

type TradeResponse struct {
	ID         int64               `json:"id"`
	Teams      []TradeTeamResponse `json:"teams"`
	ApprovedOn json.Number         `json:"approvedOn"`
	ProposedOn json.Number         `json:"proposedOn"`
}

// Millis resolves the trade timestamp, preferring approval time.
func (t *TradeResponse) Millis() (int64, bool) {
	for _, n := range []json.Number{t.ApprovedOn, t.ProposedOn} {
		if n == "" {
			continue
		}
		if v, err := n.Int64(); err == nil {
			return v, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

type TradeTeamResponse struct {
	Team            *OwnerRefResponse      `json:"team"`
	PlayersObtained []LeaguePlayerResponse `json:"playersObtained"`
}

type PlayerListingResponse struct {
	Players           []PlayerListingEntry `json:"players"`
	Results           []PlayerListingEntry `json:"results"`
	Data              []PlayerListingEntry `json:"data"`
	ResultOffsetNext  json.Number          `json:"resultOffsetNext"`
	ResultOffsetSnake json.Number          `json:"result_offset_next"`
}

// Entries resolves the listing payload, which nests results under different
// keys depending on the endpoint.
func (r *PlayerListingResponse) Entries() []PlayerListingEntry {
	if len(r.Players) > 0 {
		return r.Players
	}
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Data
}

func (r *PlayerListingResponse) NextOffset() (int, bool) {
	for _, n := range []json.Number{r.ResultOffsetNext, r.ResultOffsetSnake} {
		if n == "" {
			continue
		}
		if v, err := n.Int64(); err == nil {
			return int(v), true
		}
	}
	return 0, false
}

type PlayerListingEntry struct {
	ProPlayer         *ProPlayerResponse    `json:"proPlayer"`
	ProPlayerSnake    *ProPlayerResponse    `json:"pro_player"`
	LeaguePlayer      *LeaguePlayerResponse `json:"leaguePlayer"`
	LeaguePlayerSnake *LeaguePlayerResponse `json:"league_player"`
	Player            *PlayerListingNested  `json:"player"`
}

type PlayerListingNested struct {
	ProPlayer      *ProPlayerResponse `json:"proPlayer"`
	ProPlayerSnake *ProPlayerResponse `json:"pro_player"`
}

func (e *PlayerListingEntry) Pro() *ProPlayerResponse {
	if e.ProPlayer != nil {
		return e.ProPlayer
	}
	if e.ProPlayerSnake != nil {
		return e.ProPlayerSnake
	}
	if e.Player != nil {
		if e.Player.ProPlayer != nil {
			return e.Player.ProPlayer
		}
		return e.Player.ProPlayerSnake
	}
	return nil
}

func (e *PlayerListingEntry) League() *LeaguePlayerResponse {
	if e.LeaguePlayer != nil {
		return e.LeaguePlayer
	}
	return e.LeaguePlayerSnake
}
