package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxLabelLen = 40

var unsafeLabelRe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// RunDir is a timestamped per-run output directory.
type RunDir struct {
	Path string
	// ID is a short random identifier recorded in the run log so separate
	// runs in the same second stay distinguishable.
	ID string
}

// NewRunDir creates `<base>/<timestamp>_<kind>_<label>/`, sanitizing the
// label for filesystem use.
func NewRunDir(base, kind, label string) (*RunDir, error) {
	safe := unsafeLabelRe.ReplaceAllString(label, "_")
	if len(safe) > maxLabelLen {
		safe = safe[:maxLabelLen]
	}
	ts := time.Now().Format("2006-01-02_150405")
	dir := filepath.Join(base, fmt.Sprintf("%s_%s_%s", ts, kind, safe))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}
	return &RunDir{Path: dir, ID: uuid.NewString()[:8]}, nil
}

// File returns the path of a file inside the run directory.
func (r *RunDir) File(name string) string {
	return filepath.Join(r.Path, name)
}

// WriteLog writes the human-readable run.log summary.
func (r *RunDir) WriteLog(lines []string) error {
	all := append([]string{"Run ID: " + r.ID}, lines...)
	return os.WriteFile(r.File("run.log"), []byte(strings.Join(all, "\n")+"\n"), 0644)
}
