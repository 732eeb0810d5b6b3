package models

type Stat struct {
	StatID int
	Name   string
	Value  float64
}

// Player is a weekly snapshot. Free agents carry no owner or selected
// position.
type Player struct {
	PlayerID      string
	WeekForReport int

	FullName  string
	FirstName string
	LastName  string

	NFLTeamAbbr string
	NFLTeamName string
	ByeWeek     int
	HeadshotURL string

	PrimaryPosition        string
	DisplayPosition        string
	SelectedPosition       string
	SelectedPositionIsFlex bool
	PositionType           string
	EligiblePositions      map[string]bool

	Points       float64
	PercentOwned float64

	OwnerTeamID   string
	OwnerTeamName string

	Status string
	Stats  []Stat
}

func NewPlayer(playerID string, week int) *Player {
	return &Player{
		PlayerID:          playerID,
		WeekForReport:     week,
		EligiblePositions: make(map[string]bool),
	}
}

func (p *Player) EligibleAt(position string) bool {
	return p.EligiblePositions[position]
}
