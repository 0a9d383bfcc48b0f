// Package browser provides the headless-browser source adapter. It drives a
// Chrome instance through Google results pages, scrapes (title, url) pairs
// or file-like links, and degrades gracefully: a closed browser, a solved
// CAPTCHA, or an operator interrupt all end with whatever was gathered so
// far rather than an error.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/jonathan/osint-scout/internal/links"
	"github.com/jonathan/osint-scout/internal/report"
	"github.com/jonathan/osint-scout/internal/search"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

const pageTimeout = 30 * time.Second

// consentSelectors are known cookie-consent buttons, tried in order; the
// first one that resolves wins.
var consentSelectors = []string{
	`#L2AGLb`,
	`#W0wltc`,
	`button[aria-label="Accept all"]`,
	`button[aria-label="Reject all"]`,
}

// Prompt is the operator escalation capability. The adapter blocks on it
// when a CAPTCHA is detected so a human can solve it in the visible browser
// window. Tests and non-interactive runs inject a no-op.
type Prompt interface {
	AwaitOperator(message string)
}

// NopPrompt proceeds immediately. Useful when no operator is attached.
type NopPrompt struct{}

func (NopPrompt) AwaitOperator(string) {}

// Adapter scrapes search results pages with a real browser.
type Adapter struct {
	MaxPages int
	Delay    time.Duration
	Headless bool
	Prompt   Prompt
	Reporter report.Reporter
}

// New creates a browser adapter. The browser runs headful by default since
// CAPTCHA escalation needs a window the operator can interact with.
func New(maxPages int, delay time.Duration, prompt Prompt, rep report.Reporter) *Adapter {
	if prompt == nil {
		prompt = NopPrompt{}
	}
	if rep == nil {
		rep = report.Nop{}
	}
	return &Adapter{MaxPages: maxPages, Delay: delay, Prompt: prompt, Reporter: rep}
}

// FetchNamed gathers (title, url) pairs for each query. Results accumulate
// into out as they are scraped, so the caller keeps partial results on
// cancellation or browser loss.
func (a *Adapter) FetchNamed(ctx context.Context, queries []string, out *[]search.RawHit) {
	a.run(ctx, queries, func(html, _ string) {
		*out = append(*out, parseNamed(html)...)
	})
}

// FetchFileLinks gathers file-like links for each query, unwrapping result
// page redirect wrappers. Deduplicates within the call against what is
// already in out.
func (a *Adapter) FetchFileLinks(ctx context.Context, queries []string, out *[]search.FileLink) {
	seen := make(map[string]bool)
	for _, l := range *out {
		seen[l.URL] = true
	}
	a.run(ctx, queries, func(html, dork string) {
		for _, href := range parseAnchors(html) {
			if !links.IsFileLike(href) {
				continue
			}
			cleaned, ok := links.CleanRedirect(href)
			if !ok || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			*out = append(*out, search.FileLink{URL: cleaned, Dork: dork})
		}
	})
}

// run walks every query and page, handing each rendered page's HTML to
// collect. It owns the browser lifecycle and all failure translation.
func (a *Adapter) run(ctx context.Context, queries []string, collect func(html, dork string)) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", a.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1600, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	limiter := rate.NewLimiter(rate.Every(a.Delay), 1)

	for _, q := range queries {
		for page := 0; page < a.MaxPages; page++ {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			a.Reporter.Line("Browser %.40s  page %d", q, page+1)

			html, err := a.renderPage(browserCtx, q, page)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if IsClosedErr(err) {
					a.Reporter.Warn("Browser was closed. Returning results gathered so far.")
					return
				}
				a.Reporter.Warn("  page %d: %v", page+1, err)
				continue
			}

			if hasCaptcha(html) {
				a.Prompt.AwaitOperator("CAPTCHA detected. Solve it in the browser window, then press ENTER.")
				html, err = a.reloadHTML(browserCtx)
				if err != nil {
					if IsClosedErr(err) || ctx.Err() != nil {
						return
					}
					continue
				}
			}

			collect(html, q)

			if !hasNextPage(html) {
				break
			}
		}
	}
}

// renderPage navigates to one results page and returns its rendered HTML.
func (a *Adapter) renderPage(ctx context.Context, q string, page int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(searchURL(q, page)),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(dismissConsent),
		// Trigger lazy-loaded results.
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(800*time.Millisecond),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	return html, nil
}

// reloadHTML re-reads the current page after an operator solved a CAPTCHA.
func (a *Adapter) reloadHTML(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

// dismissConsent clicks the first visible known consent button. Best-effort:
// a page without an overlay is the common case.
func dismissConsent(ctx context.Context) error {
	for _, sel := range consentSelectors {
		attempt, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := chromedp.Click(sel, chromedp.NodeVisible).Do(attempt)
		cancel()
		if err == nil {
			_ = chromedp.Sleep(time.Second).Do(ctx)
			return nil
		}
	}
	return nil
}

// searchURL builds a Google results page URL for a query and zero-based
// page number.
func searchURL(q string, page int) string {
	return fmt.Sprintf("https://www.google.com/search?q=%s&start=%d", url.QueryEscape(q), page*10)
}

// IsClosedErr reports whether an error indicates the browser session or its
// connection was terminated externally. This is the dominant failure mode:
// the operator closed the window mid-run.
func IsClosedErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "has been closed") ||
		strings.Contains(msg, "target closed") ||
		strings.Contains(msg, "connection closed")
}

// hasCaptcha detects anti-bot interstitials in rendered HTML.
func hasCaptcha(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "recaptcha") || strings.Contains(lower, "captcha")
}
