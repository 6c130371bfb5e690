package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"confhub-backend/internal/app"
	"confhub-backend/internal/config"
	"confhub-backend/internal/events"
	"confhub-backend/internal/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "seed",
		Usage: "Import the conference table into an empty event store.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "data/events.csv", Usage: "CSV with title,start_date[,end_date] rows"},
			&cli.StringFlag{Name: "force-store", Usage: "override the configured store (postgres or supabase)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "normalize and report without writing"},
			&cli.BoolFlag{Name: "random-images", Usage: "pick placeholder images at random instead of by title hash"},
			&cli.Uint64Flag{Name: "image-seed", Usage: "seed for --random-images (default: current time)"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if store := c.String("force-store"); store != "" {
		cfg.Store.Backend = strings.ToLower(store)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log := logger.New(cfg.Log)

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	if c.Bool("dry-run") {
		return dryRun(c, cfg, log, f)
	}

	a, err := app.New(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Seeder(imageOption(c, a.Catalog)).Seed(c.Context, f)
	if err != nil {
		return err
	}
	if report.AlreadySeeded {
		fmt.Printf("Store %q already has events, nothing to do.\n", a.StoreName())
		return nil
	}

	printImport(report.Import)
	fmt.Printf("Inserted %d events in %d batches (%d failed) into %q.\n",
		report.Inserted, report.Batches, report.FailedBatches, a.StoreName())
	return nil
}

func dryRun(c *cli.Context, cfg *config.Config, log *slog.Logger, f *os.File) error {
	catalog := events.DefaultCatalog()
	if cfg.Catalog.Path != "" {
		loaded, err := events.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		catalog = loaded
	}

	records, err := events.ParseCSV(f)
	if err != nil {
		return err
	}
	n := events.NewNormalizer(log, catalog, events.WithLocation(cfg.Location()), imageOption(c, catalog))
	list, report := n.Normalize(records)

	for _, e := range list {
		fmt.Fprintf(c.App.Writer, "%s  %-50s  %s\n", e.StartDate.Format("2006-01-02"), e.Title, joinTags(e.Tags))
	}
	printImport(report)
	return nil
}

func imageOption(c *cli.Context, catalog *events.Catalog) events.NormalizerOption {
	seed := c.Uint64("image-seed")
	if !c.IsSet("image-seed") {
		seed = uint64(time.Now().UnixNano())
	}
	return events.WithImagePicker(events.NewImagePicker(catalog, c.Bool("random-images"), seed))
}

func printImport(r events.Report) {
	fmt.Printf("Read %d rows: %d accepted, %d empty, %d duplicate, %d rejected.\n",
		r.Read, r.Accepted, r.Empty, r.Duplicates, len(r.Rejected))
	for _, rej := range r.Rejected {
		fmt.Printf("  %s\n", rej.Error())
	}
}

func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
