package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	Fleaflicker Fleaflicker
	Report      Report
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Fleaflicker struct {
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	Season   int    `envconfig:"SEASON" required:"true"`
	DataDir  string `envconfig:"DATA_DIR" default:"output/data"`
	Offline  bool   `envconfig:"OFFLINE"`
	SaveData bool   `envconfig:"SAVE_DATA" default:"true"`
}

type Report struct {
	StartWeek             int    `envconfig:"START_WEEK" default:"1"`
	WeekForReport         int    `envconfig:"WEEK_FOR_REPORT"`
	NumRegularSeasonWeeks int    `envconfig:"NUM_REGULAR_SEASON_WEEKS"`
	NumPlayoffSlots       int    `envconfig:"NUM_PLAYOFF_SLOTS" default:"4"`
	BreakTies             bool   `envconfig:"BREAK_TIES"`
	DQCoachingEfficiency  bool   `envconfig:"DQ_COACHING_EFFICIENCY"`
	DQTeams               string `envconfig:"DQ_TEAMS"`
	Schedule              string `envconfig:"REPORT_SCHEDULE" default:"30 7 * * 2"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
		return nil, fmt.Errorf("invalid REPORT_SCHEDULE %q: %w", c.Report.Schedule, err)
	}
	return &c, nil
}
