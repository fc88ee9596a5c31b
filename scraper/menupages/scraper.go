package menupages

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"foodfindr/models"
	"foodfindr/utils"
)

// Options configures a Scraper.
type Options struct {
	// BaseURL is prefixed to detail links to build menu URLs.
	BaseURL string
	// ListingURL is the listing endpoint; the page number is appended to it.
	ListingURL string
	// MenuDelayMs is the minimum pause between two menu page fetches.
	MenuDelayMs int
	// Skip, when set, is consulted before a restaurant's menu is fetched.
	// Restaurants it returns true for are neither enriched nor emitted.
	Skip func(*models.Restaurant) bool
}

// Scraper walks the paginated listing and each restaurant's menu page.
// It fetches one page at a time.
type Scraper struct {
	opts      Options
	fetcher   Fetcher
	logger    *utils.Logger
	menuPause *utils.Throttle
}

// New creates a Scraper that fetches through fetcher.
func New(opts Options, fetcher Fetcher, logger *utils.Logger) *Scraper {
	return &Scraper{
		opts:      opts,
		fetcher:   fetcher,
		logger:    logger,
		menuPause: utils.NewThrottle(opts.MenuDelayMs),
	}
}

// Scrape reads the result count from the first listing page, visits every
// listing page in order and calls emit once per restaurant, after its menu
// page has been parsed. The first error from fetching, parsing or emit stops
// the run.
func (s *Scraper) Scrape(ctx context.Context, emit func(*models.Restaurant) error) error {
	first, err := s.fetchListing(ctx, 1)
	if err != nil {
		return err
	}

	total, err := ParseTotal(first.doc)
	if err != nil {
		return fmt.Errorf("page 1: %w", err)
	}
	pages := PageCount(total)
	s.logger.Info("[menupages] %d restaurants across %d pages", total, pages)

	emitted := 0
	for page := 1; page <= pages; page++ {
		listing := first
		if page > 1 {
			if listing, err = s.fetchListing(ctx, page); err != nil {
				return err
			}
		}

		restaurants, err := ExtractRestaurants(listing.doc, listing.html)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		s.logger.Debug("[menupages] Page %d: %d restaurants", page, len(restaurants))

		for _, r := range restaurants {
			if s.opts.Skip != nil && s.opts.Skip(r) {
				continue
			}
			if err := s.enrich(ctx, r); err != nil {
				return err
			}
			if err := emit(r); err != nil {
				return err
			}
			emitted++
		}
		s.logger.Info("[menupages] Page %d/%d done, %d restaurants so far", page, pages, emitted)
	}
	return nil
}

// enrich fetches r's menu page and fills in its tokens, tags and gluten flag.
func (s *Scraper) enrich(ctx context.Context, r *models.Restaurant) error {
	if err := s.menuPause.Wait(ctx); err != nil {
		return err
	}

	url := MenuURL(s.opts.BaseURL, r.Link)
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("menu for %s: %w", r.Link, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse menu %s: %w", url, err)
	}

	menu := ParseMenu(doc, string(body))
	r.MenuTokens = menu.Tokens
	r.Tags = menu.Tags
	r.GlutenFree = menu.GlutenFree
	return nil
}

// listingPage is a fetched listing page, parsed and raw.
type listingPage struct {
	doc  *goquery.Document
	html string
}

func (s *Scraper) fetchListing(ctx context.Context, page int) (*listingPage, error) {
	url := ListingPageURL(s.opts.ListingURL, page)
	s.logger.Debug("[menupages] Fetching listing page %d: %s", page, url)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing page %d: %w", page, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing page %d: %w", page, err)
	}
	return &listingPage{doc: doc, html: string(body)}, nil
}
