package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"confhub-backend/internal/app"
	"confhub-backend/internal/config"
	"confhub-backend/internal/events"
	"confhub-backend/internal/logger"
	"confhub-backend/internal/models"
)

func main() {
	cliApp := &cli.App{
		Name:  "list_events",
		Usage: "Print stored events with their countdowns.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tags", Usage: "comma-separated tags to keep"},
			&cli.StringFlag{Name: "q", Usage: "search query"},
			&cli.StringFlag{Name: "timeframe", Value: "all", Usage: "all, upcoming or past"},
			&cli.StringFlag{Name: "group-by", Value: "month", Usage: "none, month or quarter"},
			&cli.BoolFlag{Name: "urls", Usage: "show website URLs"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("list_events failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	tf, err := events.ParseTimeframe(c.String("timeframe"))
	if err != nil {
		return err
	}
	gb, err := events.ParseGroupBy(c.String("group-by"))
	if err != nil {
		return err
	}
	filter := events.FilterConfig{SearchQuery: c.String("q"), Timeframe: tf, GroupBy: gb}
	for _, t := range strings.Split(c.String("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter.SelectedTags = append(filter.SelectedTags, models.Tag(t))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(c.Context, cfg, logger.New(cfg.Log))
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Events.Browse(c.Context, uuid.Nil, filter)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Current time: %s\n", res.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "Events found: %d\n", res.Total)
	for _, g := range res.Groups {
		if g.Key != "" {
			fmt.Fprintf(w, "\n%s\n", g.Key)
		}
		for _, e := range g.Events {
			fmt.Fprintf(w, "  %s  %-9s %4dd  %s\n", e.StartDate.Format("2006-01-02"), e.Countdown.Urgency, e.Countdown.Days, e.Title)
			if c.Bool("urls") && e.WebsiteURL != "" {
				fmt.Fprintf(w, "      %s\n", e.WebsiteURL)
			}
		}
	}
	return nil
}
