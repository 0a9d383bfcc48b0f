package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jonathan/osint-scout/internal/report"
)

// newReporter builds the console reporter for a run. In stdout mode the
// progress stream moves to stderr so piped data stays clean.
func newReporter(toStdout bool) report.Reporter {
	out := io.Writer(os.Stdout)
	if toStdout {
		out = os.Stderr
	}
	return report.NewConsole(out, rootQuiet)
}

// stdinPrompt blocks on a line from stdin so an operator can intervene in
// the browser window (solving a CAPTCHA) before scraping resumes.
type stdinPrompt struct {
	in io.Reader
}

func (p stdinPrompt) AwaitOperator(message string) {
	fmt.Fprintf(os.Stderr, "\n%s\n", message)
	r := bufio.NewReader(p.in)
	_, _ = r.ReadString('\n')
}

// confirmPartial asks whether to continue the pipeline with the results
// gathered before an interrupt. A second interrupt or a closed stdin keeps
// the partial results.
func confirmPartial(in io.Reader) bool {
	fmt.Fprint(os.Stderr, "\nInterrupted. Continue with partial results? [Y/n] ")

	lineCh := make(chan string, 1)
	go func() {
		r := bufio.NewReader(in)
		line, _ := r.ReadString('\n')
		lineCh <- line
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	select {
	case line := <-lineCh:
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer != "n" && answer != "no"
	case <-sig:
		return true
	}
}

// readLines loads a file as trimmed non-empty lines, skipping # comments.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
