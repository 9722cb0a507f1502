// Command curator manages a personal spaced-repetition knowledge base from
// the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/scheduler"
	"github.com/curatorhq/curator/internal/services"
	"github.com/curatorhq/curator/internal/storage"
	"github.com/curatorhq/curator/internal/storage/postgres"
	"github.com/curatorhq/curator/internal/storage/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	svc := services.NewReviewService(store)
	ctx := context.Background()

	var cmdErr error
	switch os.Args[1] {
	case "add":
		cmdErr = runAdd(ctx, svc, os.Args[2:])
	case "list":
		cmdErr = runList(ctx, svc, os.Args[2:])
	case "review":
		cmdErr = runReview(ctx, svc, os.Args[2:])
	case "due":
		cmdErr = runDue(ctx, svc, cfg, os.Args[2:])
	case "stats":
		cmdErr = runStats(ctx, svc, os.Args[2:])
	case "retention":
		cmdErr = runRetention(ctx, svc, os.Args[2:])
	case "reset":
		cmdErr = runReset(ctx, svc, os.Args[2:])
	case "import":
		cmdErr = runImport(ctx, svc, os.Args[2:])
	case "reschedule":
		cmdErr = runReschedule(ctx, svc, cfg)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		log.Fatalf("%v", cmdErr)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: curator <command> [flags]

Commands:
  add         Add a new learning item
  list        List items
  review      Record a review for an item
  due         Show the review queue (most urgent first)
  stats       Show review statistics for an item
  retention   Show estimated recall probability for an item
  reset       Reset an item's scheduling state to defaults
  import      Import Markdown files from a directory
  reschedule  Repair inconsistent next-review dates across all items

Configuration is read from CURATOR_* environment variables
(CURATOR_STORAGE_ENGINE, CURATOR_DATA_PATH, CURATOR_POSTGRES_DSN, ...).
`)
}

// openStore opens the configured storage backend.
func openStore(cfg *config.Config) (storage.ItemStore, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		return postgres.NewItemStore(cfg.Storage.PostgresDSN)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return sqlite.NewItemStore(cfg.DatabasePath())
	}
}

func runAdd(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "Item title (required)")
	content := fs.String("content", "", "Item content")
	kind := fs.String("kind", "note", "Item kind: note, bookmark, goal, log, card")
	tags := fs.String("tags", "", "Comma-separated tags")
	fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("add: -title is required")
	}

	item, err := svc.CreateItem(ctx, *title, *content, *kind, splitTags(*tags))
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", item.ID, item.Title)
	return nil
}

func runList(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := fs.String("kind", "", "Filter by kind")
	tag := fs.String("tag", "", "Filter by tag")
	page := fs.Int("page", 1, "Page number")
	limit := fs.Int("limit", 20, "Items per page")
	fs.Parse(args)

	result, err := svc.List(ctx, storage.ListOptions{
		Page: *page, Limit: *limit, Kind: *kind, Tag: *tag,
	})
	if err != nil {
		return err
	}

	for _, item := range result.Items {
		fmt.Printf("%s  [%s]  %s  (%s)\n",
			item.ID, item.Kind, item.Title,
			scheduler.MasteryLevel(item.Scheduling.Interval))
	}
	fmt.Printf("Page %d, %d of %d items\n", result.Page, len(result.Items), result.Total)
	return nil
}

func runReview(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	id := fs.String("id", "", "Item ID (required)")
	quality := fs.Int("quality", -1, "Recall quality 0-5 (required)")
	timeSpent := fs.Int("time-spent", 0, "Seconds spent on the review (optional)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("review: -id is required")
	}
	if *quality < 0 {
		return fmt.Errorf("review: -quality is required")
	}

	var spent *int
	if *timeSpent > 0 {
		spent = timeSpent
	}

	outcome, err := svc.RecordReview(ctx, *id, *quality, spent)
	if err != nil {
		return err
	}
	if outcome == nil {
		fmt.Println("Scheduling is disabled for this item; review not recorded.")
		return nil
	}

	fmt.Printf("Recorded quality %d: interval %dd, ease %.2f, reps %d, next review %s\n",
		*quality, outcome.Interval, outcome.EaseFactor, outcome.Repetitions,
		outcome.NextReview.Format("2006-01-02"))
	return nil
}

func runDue(ctx context.Context, svc *services.ReviewService, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("due", flag.ExitOnError)
	limit := fs.Int("limit", cfg.Review.QueueLimit, "Maximum queue length (0 = unlimited)")
	fs.Parse(args)

	entries, err := svc.DueList(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Nothing due for review.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-13s retention %.2f  %s  %s\n",
			e.Urgency, e.Retention, e.Item.ID, e.Item.Title)
	}
	return nil
}

func runStats(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	id := fs.String("id", "", "Item ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("stats: -id is required")
	}

	stats, err := svc.Stats(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Total reviews:   %d\n", stats.TotalReviews)
	fmt.Printf("Average quality: %.2f\n", stats.AverageQuality)
	fmt.Printf("Success rate:    %.0f%%\n", stats.SuccessRate*100)
	fmt.Printf("Current streak:  %d\n", stats.CurrentStreak)
	return nil
}

func runRetention(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("retention", flag.ExitOnError)
	id := fs.String("id", "", "Item ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("retention: -id is required")
	}

	retention, err := svc.Retention(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Estimated retention: %.2f\n", retention)
	return nil
}

func runReset(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	id := fs.String("id", "", "Item ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("reset: -id is required")
	}

	if err := svc.Reset(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Scheduling state reset to defaults.")
	return nil
}

func runImport(ctx context.Context, svc *services.ReviewService, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory of Markdown files (required)")
	fs.Parse(args)

	if *dir == "" {
		return fmt.Errorf("import: -dir is required")
	}

	n, err := svc.Import(ctx, *dir)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d items.\n", n)
	return nil
}

func runReschedule(ctx context.Context, svc *services.ReviewService, cfg *config.Config) error {
	n, err := svc.BulkReschedule(ctx, cfg.Review.RescheduleRate, cfg.Review.RescheduleBurst)
	if err != nil {
		return err
	}
	fmt.Printf("Repaired %d items.\n", n)
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
