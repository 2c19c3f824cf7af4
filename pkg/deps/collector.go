package deps

import (
	"context"
	"strings"
)

// Collector turns the content of one kind of lockfile into a stream of
// license records.
type Collector interface {
	// Name returns the ecosystem tag (e.g., "npm", "rust").
	Name() string
	// DependencyFilename returns the lockfile name this collector handles
	// (e.g., "package-lock.json").
	DependencyFilename() string
	// Collect parses content and starts one retrieval per dependency.
	// Malformed content fails before any retrieval starts; a dependency
	// that cannot be resolved never fails the call, it becomes an error
	// record on the stream.
	Collect(ctx context.Context, content string) (Stream, error)
}

// Detect returns the first collector whose dependency filename is
// contained in path. Collectors are tried in order, so callers control
// precedence through registration order.
func Detect(path string, collectors ...Collector) (Collector, bool) {
	for _, c := range collectors {
		if strings.Contains(path, c.DependencyFilename()) {
			return c, true
		}
	}
	return nil, false
}
