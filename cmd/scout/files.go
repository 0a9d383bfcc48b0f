package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/osint-scout/internal/aggregate"
	"github.com/jonathan/osint-scout/internal/browser"
	"github.com/jonathan/osint-scout/internal/bypass"
	"github.com/jonathan/osint-scout/internal/config"
	"github.com/jonathan/osint-scout/internal/download"
	"github.com/jonathan/osint-scout/internal/links"
	"github.com/jonathan/osint-scout/internal/output"
	"github.com/jonathan/osint-scout/internal/query"
	"github.com/jonathan/osint-scout/internal/report"
	"github.com/jonathan/osint-scout/internal/search"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Discover and download publicly indexed files",
	Long:  "Runs file-discovery dorks against the configured sources, collects file-like links, and optionally bulk-downloads them with per-file failure isolation.",
	RunE:  runFiles,
}

var (
	filesDorks        []string
	filesDorksFile    string
	filesInputFile    string
	filesCompany      string
	filesDomain       string
	filesPages        int
	filesDelay        int
	filesSource       string
	filesOutputDir    string
	filesOutput       string
	filesFormatOutput string
	filesStdout       bool
	filesDryRun       bool
	filesHeadless     bool
	filesDownload     bool
	filesDownloadDir  string
	filesConcurrency  int
	filesProxy        string
	filesBypass       string
	filesNoResume     bool
)

func init() {
	filesCmd.Flags().StringArrayVarP(&filesDorks, "query", "q", nil, "Dork to run; repeatable, supports {domain} and {company}")
	filesCmd.Flags().StringVar(&filesDorksFile, "dorks-file", "", "File with one dork per line (# comments skipped)")
	filesCmd.Flags().StringVar(&filesInputFile, "input-file", "", "File with URLs to download directly, skipping search")
	filesCmd.Flags().StringVarP(&filesCompany, "company", "c", "", "Value for the {company} placeholder")
	filesCmd.Flags().StringVarP(&filesDomain, "domain", "d", "", "Value for the {domain} placeholder")
	filesCmd.Flags().IntVarP(&filesPages, "pages", "p", 0, "Result pages per query (default: 3)")
	filesCmd.Flags().IntVar(&filesDelay, "delay", 0, "Seconds between browser page loads (default: 5)")
	filesCmd.Flags().StringVar(&filesSource, "source", "", "Data source: auto, api, or browser (default: auto)")
	filesCmd.Flags().StringVarP(&filesOutputDir, "output-dir", "o", "", "Base directory for run output (default: output)")
	filesCmd.Flags().StringVar(&filesOutput, "output", "", "Write results to this single file instead of a run directory")
	filesCmd.Flags().StringVar(&filesFormatOutput, "format-output", "txt", "Output format: txt, json, or csv")
	filesCmd.Flags().BoolVar(&filesStdout, "stdout", false, "Write results to stdout instead of a run directory")
	filesCmd.Flags().BoolVar(&filesDryRun, "dry-run", false, "Print resolved dorks and exit without searching")
	filesCmd.Flags().BoolVar(&filesHeadless, "headless", false, "Run the browser without a window (CAPTCHAs cannot be solved)")
	filesCmd.Flags().BoolVar(&filesDownload, "download", false, "Download every discovered file")
	filesCmd.Flags().StringVar(&filesDownloadDir, "download-dir", "", "Destination for downloads (default: <run dir>/files)")
	filesCmd.Flags().IntVar(&filesConcurrency, "concurrency", 1, "Parallel downloads (1 = sequential)")
	filesCmd.Flags().StringVar(&filesProxy, "proxy", "", "Proxy URL for direct downloads")
	filesCmd.Flags().StringVar(&filesBypass, "bypass", "", "Anti-bot bypass service URL, e.g. http://localhost:8191")
	filesCmd.Flags().BoolVar(&filesNoResume, "no-resume", false, "Re-download files that already exist in the destination")

	rootCmd.AddCommand(filesCmd)
}

func runFiles(_ *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(filesFormatOutput)
	if err != nil {
		return err
	}
	rep := newReporter(filesStdout)

	// Direct mode: a URL list skips discovery entirely.
	if filesInputFile != "" {
		urls, err := readLines(filesInputFile)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			rep.Warn("No URLs in %s.", filesInputFile)
			return nil
		}
		if filesDryRun {
			rep.Line("Would download %d URLs from %s", len(urls), filesInputFile)
			return nil
		}
		dir := config.StringOr(filesDownloadDir, config.StringOr(cfg.DownloadDir, "downloads"))
		return downloadAll(cfg, urls, dir, rep, start)
	}

	domain := config.StringOr(filesDomain, cfg.Domain)
	company := config.StringOr(filesCompany, cfg.Company)
	templates := filesDorks
	if filesDorksFile != "" {
		fromFile, err := readLines(filesDorksFile)
		if err != nil {
			return err
		}
		templates = append(templates, fromFile...)
	}
	if len(templates) == 0 {
		return fmt.Errorf("no dorks given: use --query, --dorks-file, or --input-file")
	}
	dorks, err := query.ResolveAll(templates, domain, company)
	if err != nil {
		return err
	}

	apiKey := config.ResolveAPIKey(rootAPIKey, cfg)
	policy, err := aggregate.ParsePolicy(config.StringOr(filesSource, config.StringOr(cfg.Source, string(aggregate.PolicyAuto))))
	if err != nil {
		return err
	}
	useAPI, useBrowser, err := policy.Resolve(apiKey != "")
	if err != nil {
		return err
	}

	if filesDryRun {
		rep.Line("Source: %s", aggregate.Label(useAPI, useBrowser))
		for _, d := range dorks {
			rep.Line("  %s", d)
		}
		return nil
	}
	if policy == aggregate.PolicyAuto && !useAPI {
		rep.Line("No API key configured; searching with the browser only.")
	}

	pages := config.IntOr(filesPages, config.IntOr(cfg.Pages, 3))
	delay := time.Duration(config.IntOr(filesDelay, config.IntOr(cfg.Delay, 5))) * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var apiLinks, browserLinks []search.FileLink
	if useAPI {
		api := search.NewAdapter(search.NewSerperClient(apiKey), pages, rep)
		apiLinks = api.FetchFileLinks(ctx, dorks)
	}
	if useBrowser && ctx.Err() == nil {
		b := browser.New(pages, delay, stdinPrompt{in: os.Stdin}, rep)
		b.Headless = filesHeadless
		b.FetchFileLinks(ctx, dorks, &browserLinks)
	}

	if ctx.Err() != nil {
		stop()
		if !confirmPartial(os.Stdin) {
			rep.Warn("Aborted.")
			return nil
		}
	}

	merged := aggregate.MergeFileLinks(apiLinks, browserLinks)
	records := make([]links.FileRecord, 0, len(merged))
	for _, l := range merged {
		records = append(records, links.NewFileRecord(l.URL, l.Dork))
	}
	rep.Line("%d file links found", len(records))
	if len(records) == 0 {
		rep.Warn("No files found.")
		return nil
	}

	var downloadDir string
	switch {
	case filesStdout:
		if err := output.Write(os.Stdout, output.FileLinks(records), format); err != nil {
			return err
		}
		downloadDir = config.StringOr(filesDownloadDir, config.StringOr(cfg.DownloadDir, "downloads"))
	case filesOutput != "":
		if err := output.WriteFile(filesOutput, output.FileLinks(records), format); err != nil {
			return err
		}
		rep.Line("Results written to %s", filesOutput)
		downloadDir = config.StringOr(filesDownloadDir, config.StringOr(cfg.DownloadDir, "downloads"))
	default:
		base := config.StringOr(filesOutputDir, config.StringOr(cfg.OutputDir, "output"))
		run, err := output.NewRunDir(base, "files", config.StringOr(domain, "dorks"))
		if err != nil {
			return err
		}
		if err := output.WriteFile(run.File("links."+string(format)), output.FileLinks(records), format); err != nil {
			return err
		}
		if format != output.FormatText {
			if err := output.WriteFile(run.File("links.txt"), output.FileLinks(records), output.FormatText); err != nil {
				return err
			}
		}
		err = run.WriteLog([]string{
			"Date: " + start.Format(time.RFC3339),
			"Source: " + aggregate.Label(useAPI, useBrowser),
			fmt.Sprintf("Dorks: %d", len(dorks)),
			fmt.Sprintf("Links found: %d", len(records)),
			fmt.Sprintf("Elapsed: %s", time.Since(start).Round(time.Second)),
		})
		if err != nil {
			return err
		}
		rep.Line("Results written to %s", run.Path)
		downloadDir = config.StringOr(filesDownloadDir, config.StringOr(cfg.DownloadDir, run.File("files")))
	}

	if !filesDownload {
		return nil
	}
	urls := make([]string, 0, len(records))
	for _, r := range records {
		urls = append(urls, r.URL)
	}
	return downloadAll(cfg, urls, downloadDir, rep, start)
}

// downloadAll runs the download engine over a URL batch and prints the
// summary table.
func downloadAll(cfg *config.Config, urls []string, dir string, rep report.Reporter, start time.Time) error {
	var bp *bypass.Client
	if addr := config.StringOr(filesBypass, cfg.Bypass); addr != "" {
		bp = bypass.NewClient(addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep.Line("Downloading %d files to %s", len(urls), dir)
	stats, err := download.All(ctx, urls, download.Options{
		Dir:         dir,
		Proxy:       config.StringOr(filesProxy, cfg.Proxy),
		Bypass:      bp,
		Resume:      !filesNoResume,
		Concurrency: filesConcurrency,
		Reporter:    rep,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	rep.Line("")
	rep.Line("Downloaded: %d  Failed: %d", stats.Success, stats.Failed)
	rep.Line("Total size: %s", report.FormatSize(float64(stats.TotalBytes)))
	rep.Line("Elapsed: %s", elapsed.Round(time.Second))
	if secs := elapsed.Seconds(); secs > 0 && stats.TotalBytes > 0 {
		rep.Line("Average speed: %s/s", report.FormatSize(float64(stats.TotalBytes)/secs))
	}
	for _, line := range extHistogram(stats.ByExt) {
		rep.Line("  %s", line)
	}
	return nil
}

// extHistogram renders the per-extension counts, most frequent first.
func extHistogram(byExt map[string]int) []string {
	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if byExt[exts[i]] != byExt[exts[j]] {
			return byExt[exts[i]] > byExt[exts[j]]
		}
		return exts[i] < exts[j]
	})
	lines := make([]string, 0, len(exts))
	for _, ext := range exts {
		lines = append(lines, fmt.Sprintf("%-8s %d", ext, byExt[ext]))
	}
	return lines
}
