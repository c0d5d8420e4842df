package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// OutputPaths hands out distinct output paths to the jobs of one run.
// Two reports for the same site and date derive the same file name; the
// later one gets a numeric suffix instead of overwriting the earlier one.
// It is safe for concurrent use.
type OutputPaths struct {
	mu    sync.Mutex
	taken map[string]struct{}
}

// NewOutputPaths creates an empty path set.
func NewOutputPaths() *OutputPaths {
	return &OutputPaths{taken: make(map[string]struct{})}
}

// Reserve returns path, or path with "_2", "_3" and so on inserted before
// the extension when an earlier job already holds it.
func (p *OutputPaths) Reserve(path string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	path = filepath.Clean(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	candidate := path
	for n := 2; ; n++ {
		if _, ok := p.taken[candidate]; !ok {
			break
		}
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	p.taken[candidate] = struct{}{}
	return candidate
}
