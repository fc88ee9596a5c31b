package menupages

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"

	"foodfindr/utils"
)

// Fetcher retrieves the markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches pages with plain GET requests.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher that sends userAgent on every request.
// A zero timeout means no client-side timeout.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, res.StatusCode())
	}
	return res.Body(), nil
}

// BrowserFetcher renders pages in headless Chrome and returns the resulting DOM.
type BrowserFetcher struct {
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancel      context.CancelFunc
	timeout     time.Duration
}

// NewBrowserFetcher starts a headless browser. chromeBin may be empty to
// search the usual install locations. Close releases the browser.
func NewBrowserFetcher(ctx context.Context, userAgent, chromeBin string, timeout time.Duration, logger *utils.Logger) (*BrowserFetcher, error) {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[fetch] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// Start the browser now so a missing binary fails fast.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &BrowserFetcher{
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancel:      cancel,
		timeout:     timeout,
	}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	if f.timeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, f.timeout)
		defer cancelTimeout()
	}

	// Propagate cancellation of the caller's context into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	return []byte(html), nil
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() {
	f.cancel()
	f.cancelAlloc()
}

// retryFetcher re-runs failed fetches according to a RetryConfig.
type retryFetcher struct {
	next  Fetcher
	retry *utils.RetryConfig
}

// WithRetry wraps next so each fetch is attempted per retry.
// With MaxAttempts of 1 it behaves exactly like next.
func WithRetry(next Fetcher, retry *utils.RetryConfig) Fetcher {
	if retry == nil || retry.MaxAttempts <= 1 {
		return next
	}
	return &retryFetcher{next: next, retry: retry}
}

func (f *retryFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := f.retry.Do(ctx, "fetch "+url, func() error {
		var err error
		body, err = f.next.Fetch(ctx, url)
		return err
	})
	return body, err
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
