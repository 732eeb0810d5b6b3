package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/omarshaarawi/flickerreport/internal/api/fleaflicker"
	"github.com/omarshaarawi/flickerreport/internal/bot"
	"github.com/omarshaarawi/flickerreport/internal/config"
	"github.com/omarshaarawi/flickerreport/internal/report"
	"github.com/omarshaarawi/flickerreport/internal/repository/memory"
	"github.com/omarshaarawi/flickerreport/internal/scheduler"
	"github.com/omarshaarawi/flickerreport/internal/service"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	app := &cli.App{
		Name:  "flickerreport",
		Usage: "generate and deliver Fleaflicker fantasy football weekly reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "league-id", Usage: "Fleaflicker league ID (overrides LEAGUE_ID)"},
			&cli.IntFlag{Name: "season", Usage: "season year (overrides SEASON)"},
			&cli.IntFlag{Name: "week", Usage: "week to report on (0 derives the current week)"},
			&cli.IntFlag{Name: "start-week", Usage: "first week of the season to fetch"},
			&cli.BoolFlag{Name: "offline", Usage: "serve transactions and free agents from the local cache"},
			&cli.BoolFlag{Name: "break-ties", Usage: "reorder tied metric groups with secondary keys"},
		},
		Action: generateAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the Telegram bot and the scheduled weekly delivery",
				Action: serveAction,
			},
		},
	}

	return app.Run(args)
}

func buildService(c *cli.Context) (*service.ReportService, *config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("league-id") {
		cfg.Fleaflicker.LeagueID = c.String("league-id")
	}
	if c.IsSet("season") {
		cfg.Fleaflicker.Season = c.Int("season")
	}
	if c.IsSet("week") {
		cfg.Report.WeekForReport = c.Int("week")
	}
	if c.IsSet("start-week") {
		cfg.Report.StartWeek = c.Int("start-week")
	}
	if c.IsSet("offline") {
		cfg.Fleaflicker.Offline = c.Bool("offline")
	}
	if c.IsSet("break-ties") {
		cfg.Report.BreakTies = c.Bool("break-ties")
	}

	client := fleaflicker.NewClient()
	api := fleaflicker.NewAPI(client, fleaflicker.Options{
		LeagueID:                     cfg.Fleaflicker.LeagueID,
		Season:                       cfg.Fleaflicker.Season,
		DataDir:                      cfg.Fleaflicker.DataDir,
		Offline:                      cfg.Fleaflicker.Offline,
		SaveData:                     cfg.Fleaflicker.SaveData,
		DefaultNumPlayoffSlots:       cfg.Report.NumPlayoffSlots,
		DefaultNumRegularSeasonWeeks: cfg.Report.NumRegularSeasonWeeks,
	})

	builder := report.NewBuilder(cfg.Report.BreakTies, dqTeams(cfg))
	repo := memory.NewRepository()
	svc := service.NewReportService(api, repo, builder, cfg.Report.StartWeek, cfg.Report.WeekForReport)
	return svc, cfg, nil
}

func dqTeams(cfg *config.Config) []string {
	if !cfg.Report.DQCoachingEfficiency || cfg.Report.DQTeams == "" {
		return nil
	}
	return strings.Split(cfg.Report.DQTeams, ",")
}

// generateAction runs the pipeline once and prints the rendered report.
func generateAction(c *cli.Context) error {
	svc, _, err := buildService(c)
	if err != nil {
		return err
	}

	rendered, err := svc.GenerateReport()
	if err != nil {
		return err
	}

	fmt.Println(rendered)
	return nil
}

// serveAction runs the Telegram bot and the cron-scheduled delivery until
// interrupted.
func serveAction(c *cli.Context) error {
	svc, cfg, err := buildService(c)
	if err != nil {
		return err
	}
	if cfg.TelegramBot.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required for serve mode")
	}

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, svc)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(svc, telegramBot.SendMessage, cfg.Report.Schedule)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")
	return nil
}
