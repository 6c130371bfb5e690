package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"confhub-backend/internal/app"
	"confhub-backend/internal/config"
	"confhub-backend/internal/logger"
	"confhub-backend/internal/reminder"
)

func main() {
	cliApp := &cli.App{
		Name:  "send_reminders",
		Usage: "Run the bookmark reminder job once.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "at", Usage: "evaluate as of this date (YYYY-MM-DD) instead of now"},
			&cli.BoolFlag{Name: "email", Usage: "email new reminders regardless of configuration"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("send_reminders failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Bool("email") {
		cfg.Reminder.SendEmail = true
	}
	log := logger.New(cfg.Log)

	a, err := app.New(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := reminder.New(log, cfg.Reminder.Schedule, a.Location, a.Notifications, a.Auth)
	if err != nil {
		return err
	}
	if raw := c.String("at"); raw != "" {
		at, err := time.ParseInLocation("2006-01-02", raw, a.Location)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		sched.SetClock(func() time.Time { return at })
	}

	report, err := sched.RunOnce(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Bookmarks: %d  due: %d  created: %d  emailed: %d  failed: %d\n",
		report.Bookmarks, report.Due, report.Created, report.Emailed, report.Failed)
	return nil
}
