// Package download implements the bulk file download engine: fetch, name,
// and save every URL in a batch with per-file failure isolation, resume
// support, and aggregate statistics.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/osint-scout/internal/bypass"
	"github.com/jonathan/osint-scout/internal/report"
)

// Stats aggregates the outcome of a download batch.
type Stats struct {
	mu         sync.Mutex
	Success    int
	Failed     int
	TotalBytes int64
	ByExt      map[string]int
}

func newStats() *Stats {
	return &Stats{ByExt: make(map[string]int)}
}

func (s *Stats) addSuccess(size int64, ext string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Success++
	s.TotalBytes += size
	if ext != "" {
		s.ByExt[ext]++
	}
}

func (s *Stats) addSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Success++
}

func (s *Stats) addFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
}

// Options configures a download batch.
type Options struct {
	// Dir is the destination directory, created if missing.
	Dir string
	// Proxy is an optional proxy URL for direct fetches.
	Proxy string
	// Bypass, when set, routes every fetch through the anti-bot bypass
	// service instead of requesting directly.
	Bypass *bypass.Client
	// Resume skips URLs whose derived filename already exists.
	Resume bool
	// Concurrency bounds parallel transfers; zero or one means sequential.
	Concurrency int
	// Reporter receives one tick per URL plus per-file outcome lines.
	Reporter report.Reporter
	// Client overrides the HTTP client, used by tests.
	Client *http.Client
}

// All downloads every URL into opts.Dir. Failures are isolated per file and
// tallied; the only errors returned are configuration-level (destination
// not creatable, bad proxy URL).
func All(ctx context.Context, urls []string, opts Options) (*Stats, error) {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", opts.Dir, err)
	}

	client := opts.Client
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.Proxy != "" {
			proxyURL, err := url.Parse(opts.Proxy)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy URL %s: %w", opts.Proxy, err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		client = &http.Client{Timeout: 30 * time.Second, Transport: transport}
	}

	rep := opts.Reporter
	if rep == nil {
		rep = report.Nop{}
	}

	stats := newStats()
	names := newNamer(opts.Dir, opts.Resume)

	var done int
	var doneMu sync.Mutex
	tick := func() {
		doneMu.Lock()
		done++
		d := done
		doneMu.Unlock()
		rep.Tick(d, len(urls))
	}

	g := new(errgroup.Group)
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, u := range urls {
		index, rawURL := i+1, u
		g.Go(func() error {
			if err := fetchOne(ctx, client, opts.Bypass, rawURL, index, names, stats, rep); err != nil {
				stats.addFailure()
				rep.Warn("  ✗ %.60s  %v", rawURL, err)
			}
			tick()
			// Per-file errors never abort the batch.
			return nil
		})
	}
	_ = g.Wait()
	return stats, nil
}

// fetchOne downloads a single URL. Any failure in fetching, naming, or
// writing surfaces as this file's error only.
func fetchOne(ctx context.Context, client *http.Client, bp *bypass.Client, rawURL string, index int, names *namer, stats *Stats, rep report.Reporter) error {
	var resp *http.Response
	var err error
	if bp != nil {
		resp, err = bp.Fetch(ctx, rawURL)
	} else {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		resp, err = client.Do(req)
	}
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	name := deriveFilename(resp.Header, rawURL, index)
	finalPath, skip := names.claim(name)
	if skip {
		stats.addSkip()
		rep.Line("  = %s (already downloaded)", filepath.Base(finalPath))
		return nil
	}

	f, err := os.Create(finalPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(finalPath)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return err
	}
	stats.addSuccess(info.Size(), strings.ToLower(filepath.Ext(finalPath)))
	rep.Line("  ✓ %.50s  %s", filepath.Base(finalPath), report.FormatSize(float64(info.Size())))
	return nil
}
