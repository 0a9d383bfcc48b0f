package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/osint-scout/internal/aggregate"
	"github.com/jonathan/osint-scout/internal/browser"
	"github.com/jonathan/osint-scout/internal/config"
	"github.com/jonathan/osint-scout/internal/email"
	"github.com/jonathan/osint-scout/internal/extract"
	"github.com/jonathan/osint-scout/internal/output"
	"github.com/jonathan/osint-scout/internal/query"
	"github.com/jonathan/osint-scout/internal/search"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Discover employee names and generate candidate emails",
	Long:  "Searches professional-network and contact-aggregator sites for employees of the target company, extracts (first, last) name pairs, and generates candidate email addresses for the target domain.",
	RunE:  runContacts,
}

var (
	contactsCompany      string
	contactsDomain       string
	contactsEmailFormat  int
	contactsPages        int
	contactsDelay        int
	contactsSource       string
	contactsOutputDir    string
	contactsOutput       string
	contactsFormatOutput string
	contactsStdout       bool
	contactsDryRun       bool
	contactsSaveNames    string
	contactsHeadless     bool
)

func init() {
	contactsCmd.Flags().StringVarP(&contactsCompany, "company", "c", "", "Target company name (required unless set in config)")
	contactsCmd.Flags().StringVarP(&contactsDomain, "domain", "d", "", "Target email domain, e.g. acme.com (required unless set in config)")
	contactsCmd.Flags().IntVarP(&contactsEmailFormat, "format", "f", 0, "Email convention: "+email.FormatHelp)
	contactsCmd.Flags().IntVarP(&contactsPages, "pages", "p", 0, "Result pages per query (default: 3)")
	contactsCmd.Flags().IntVar(&contactsDelay, "delay", 0, "Seconds between browser page loads (default: 5)")
	contactsCmd.Flags().StringVar(&contactsSource, "source", "", "Data source: auto, api, or browser (default: auto)")
	contactsCmd.Flags().StringVarP(&contactsOutputDir, "output-dir", "o", "", "Base directory for run output (default: output)")
	contactsCmd.Flags().StringVar(&contactsOutput, "output", "", "Write results to this single file instead of a run directory")
	contactsCmd.Flags().StringVar(&contactsFormatOutput, "format-output", "txt", "Output format: txt, json, or csv")
	contactsCmd.Flags().BoolVar(&contactsStdout, "stdout", false, "Write results to stdout instead of a run directory")
	contactsCmd.Flags().BoolVar(&contactsDryRun, "dry-run", false, "Print resolved queries and exit without searching")
	contactsCmd.Flags().StringVar(&contactsSaveNames, "save-names", "", "Also write extracted names to this file")
	contactsCmd.Flags().BoolVar(&contactsHeadless, "headless", false, "Run the browser without a window (CAPTCHAs cannot be solved)")

	rootCmd.AddCommand(contactsCmd)
}

func runContacts(_ *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	company := config.StringOr(contactsCompany, cfg.Company)
	domain := config.StringOr(contactsDomain, cfg.Domain)
	if company == "" || domain == "" {
		return fmt.Errorf("company and domain are required: set --company and --domain flags or config file values")
	}
	pages := config.IntOr(contactsPages, config.IntOr(cfg.Pages, 3))
	delay := time.Duration(config.IntOr(contactsDelay, config.IntOr(cfg.Delay, 5))) * time.Second
	formatID := config.IntOr(contactsEmailFormat, config.IntOr(cfg.EmailFormat, email.DefaultFormat))

	format, err := output.ParseFormat(contactsFormatOutput)
	if err != nil {
		return err
	}

	apiKey := config.ResolveAPIKey(rootAPIKey, cfg)
	policy, err := aggregate.ParsePolicy(config.StringOr(contactsSource, config.StringOr(cfg.Source, string(aggregate.PolicyAuto))))
	if err != nil {
		return err
	}
	useAPI, useBrowser, err := policy.Resolve(apiKey != "")
	if err != nil {
		return err
	}

	queries, err := query.ResolveAll(query.ContactQueries(), domain, company)
	if err != nil {
		return err
	}

	rep := newReporter(contactsStdout)
	if contactsDryRun {
		rep.Line("Source: %s", aggregate.Label(useAPI, useBrowser))
		for _, q := range queries {
			rep.Line("  %s", q)
		}
		return nil
	}
	if policy == aggregate.PolicyAuto && !useAPI {
		rep.Line("No API key configured; searching with the browser only.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var apiHits, browserHits []search.RawHit
	if useAPI {
		api := search.NewAdapter(search.NewSerperClient(apiKey), pages, rep)
		apiHits = api.FetchNamed(ctx, queries)
	}
	if useBrowser && ctx.Err() == nil {
		b := browser.New(pages, delay, stdinPrompt{in: os.Stdin}, rep)
		b.Headless = contactsHeadless
		b.FetchNamed(ctx, queries, &browserHits)
	}

	if ctx.Err() != nil {
		stop()
		if !confirmPartial(os.Stdin) {
			rep.Warn("Aborted.")
			return nil
		}
	}

	hits := aggregate.MergeHits(apiHits, browserHits)
	candidates := extract.Names(hits)
	records := email.Build(candidates, domain, formatID)
	rep.Line("%d hits, %d names, %d emails", len(hits), len(candidates), len(records))

	if contactsSaveNames != "" {
		if err := output.WriteLines(contactsSaveNames, recordNames(records)); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		rep.Warn("No contacts found.")
		return nil
	}

	if contactsStdout {
		return output.Write(os.Stdout, output.Contacts(records), format)
	}
	if contactsOutput != "" {
		if err := output.WriteFile(contactsOutput, output.Contacts(records), format); err != nil {
			return err
		}
		rep.Line("Results written to %s", contactsOutput)
		return nil
	}

	base := config.StringOr(contactsOutputDir, config.StringOr(cfg.OutputDir, "output"))
	run, err := output.NewRunDir(base, "contacts", company)
	if err != nil {
		return err
	}
	if err := output.WriteFile(run.File("emails."+string(format)), output.Contacts(records), format); err != nil {
		return err
	}
	if format != output.FormatText {
		if err := output.WriteFile(run.File("emails.txt"), output.Contacts(records), output.FormatText); err != nil {
			return err
		}
	}
	if err := output.WriteLines(run.File("names.txt"), recordNames(records)); err != nil {
		return err
	}
	if err := output.WriteLines(run.File("raw_titles.txt"), recordTitles(records)); err != nil {
		return err
	}
	err = run.WriteLog([]string{
		"Date: " + start.Format(time.RFC3339),
		"Company: " + company,
		"Domain: " + domain,
		"Source: " + aggregate.Label(useAPI, useBrowser),
		fmt.Sprintf("Queries: %d", len(queries)),
		fmt.Sprintf("Hits: %d", len(hits)),
		fmt.Sprintf("Names extracted: %d", len(candidates)),
		fmt.Sprintf("Emails generated: %d", len(records)),
		fmt.Sprintf("Elapsed: %s", time.Since(start).Round(time.Second)),
	})
	if err != nil {
		return err
	}
	rep.Line("Results written to %s", run.Path)
	return nil
}

func recordNames(records []email.Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

func recordTitles(records []email.Record) []string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.RawTitle)
	}
	return titles
}
