package download

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// namer assigns final on-disk paths. It serializes the resume check and
// collision-suffix allocation so concurrent downloads can never claim the
// same name; reserved tracks names handed out to in-flight downloads that
// have not hit the disk yet.
type namer struct {
	mu       sync.Mutex
	dir      string
	resume   bool
	reserved map[string]bool
}

func newNamer(dir string, resume bool) *namer {
	return &namer{dir: dir, resume: resume, reserved: make(map[string]bool)}
}

// claim resolves a sanitized filename to its final path. With resume on, an
// existing file short-circuits: skip is true and the file is untouched.
// Otherwise name collisions get an incrementing numeric suffix before the
// extension; existing files are never overwritten.
func (n *namer) claim(name string) (finalPath string, skip bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	p := filepath.Join(n.dir, name)
	if n.resume && fileExists(p) {
		return p, true
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; fileExists(p) || n.reserved[name]; counter++ {
		name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
		p = filepath.Join(n.dir, name)
	}
	n.reserved[name] = true
	return p, false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
