package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"foodfindr/config"
	"foodfindr/models"
	"foodfindr/scraper/menupages"
	"foodfindr/services"
	"foodfindr/storage"
	"foodfindr/utils"
)

const (
	restaurantInfoFile = "restaurant_info.csv"
	menuWordsFile      = "menu_words.csv"
)

var scrapeFlags struct {
	listingURL  string
	baseURL     string
	outputDir   string
	fetchMode   string
	menuDelay   time.Duration
	maxFeatures int
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrapes every listing page and menu, writing restaurant_info.csv and menu_words.csv.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		applyScrapeFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runScrape(cmd.Context(), cfg, logger)
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeFlags.listingURL, "listing-url", "", "listing endpoint the page number is appended to (overrides LISTING_URL)")
	f.StringVar(&scrapeFlags.baseURL, "base-url", "", "site root prefixed to detail links (overrides BASE_URL)")
	f.StringVar(&scrapeFlags.outputDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	f.StringVar(&scrapeFlags.fetchMode, "fetch-mode", "", "http or browser (overrides FETCH_MODE)")
	f.DurationVar(&scrapeFlags.menuDelay, "menu-delay", 0, "pause between menu page fetches (overrides MENU_DELAY_MS)")
	f.IntVar(&scrapeFlags.maxFeatures, "max-features", 0, "vocabulary size of the term-count table (overrides MAX_FEATURES)")
	rootCmd.AddCommand(scrapeCmd)
}

func applyScrapeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("listing-url") {
		cfg.ListingURL = scrapeFlags.listingURL
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = scrapeFlags.baseURL
	}
	if flags.Changed("out") {
		cfg.OutputDir = scrapeFlags.outputDir
	}
	if flags.Changed("fetch-mode") {
		cfg.FetchMode = scrapeFlags.fetchMode
	}
	if flags.Changed("menu-delay") {
		cfg.MenuDelayMs = int(scrapeFlags.menuDelay / time.Millisecond)
	}
	if flags.Changed("max-features") {
		cfg.MaxFeatures = scrapeFlags.maxFeatures
	}
}

func newFetcher(ctx context.Context, cfg *config.Config, logger *utils.Logger) (menupages.Fetcher, func(), error) {
	timeout := time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	var fetcher menupages.Fetcher
	closeFn := func() {}
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		bf, err := menupages.NewBrowserFetcher(ctx, cfg.UserAgent, cfg.ChromeBin, timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		fetcher, closeFn = bf, bf.Close
	default:
		fetcher = menupages.NewHTTPFetcher(cfg.UserAgent, timeout)
	}

	return menupages.WithRetry(fetcher, &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		Logger:      logger,
	}), closeFn, nil
}

func runScrape(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== foodfindr scrape starting ===")
	logger.Info("Config: listing %s | fetch mode %s | menu delay %dms | max features %d",
		cfg.ListingURL, cfg.FetchMode, cfg.MenuDelayMs, cfg.MaxFeatures)

	fetcher, closeFetcher, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	infoPath := filepath.Join(cfg.OutputDir, restaurantInfoFile)
	csvWriter, err := storage.NewCSVWriter(infoPath)
	if err != nil {
		return err
	}
	defer csvWriter.Close()

	cleaner := services.NewCleaner(logger)
	insights := services.NewInsightService(logger)

	var links, menus []string
	scraper := menupages.New(menupages.Options{
		BaseURL:     cfg.BaseURL,
		ListingURL:  cfg.ListingURL,
		MenuDelayMs: cfg.MenuDelayMs,
		Skip: func(r *models.Restaurant) bool {
			return !cleaner.Admit(r)
		},
	}, fetcher, logger)

	err = scraper.Scrape(ctx, func(r *models.Restaurant) error {
		cleaner.Normalise(r)
		if err := csvWriter.Write(r); err != nil {
			return err
		}
		insights.Observe(r)
		links = append(links, r.Link)
		menus = append(menus, r.MenuTokens)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scrape failed after %d restaurants: %w", csvWriter.Rows(), err)
	}
	if err := csvWriter.Close(); err != nil {
		return fmt.Errorf("close %s: %w", infoPath, err)
	}

	kept, dropped := cleaner.Stats()
	logger.Info("Restaurant info saved to %s (%d kept, %d dropped)", infoPath, kept, dropped)

	table, err := services.BuildTermCounts(links, menus, cfg.MaxFeatures)
	if err != nil {
		return err
	}
	wordsPath := filepath.Join(cfg.OutputDir, menuWordsFile)
	if err := storage.WriteTermCounts(wordsPath, table); err != nil {
		return err
	}
	logger.Info("Term counts saved to %s (%d restaurants x %d terms)", wordsPath, len(table.Links), len(table.Terms))

	insights.Print(os.Stdout, insights.Report(table))
	return nil
}
