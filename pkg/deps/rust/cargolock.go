package rust

import (
	"context"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// CargoLock collects dependencies from Cargo.lock.
//
// Only packages downloaded from a registry are checked. Workspace members
// (no source) and git or path dependencies have no crates.io entry.
type CargoLock struct {
	retriever deps.Retriever
}

// NewCargoLock creates a collector that resolves through r.
func NewCargoLock(r deps.Retriever) *CargoLock {
	return &CargoLock{retriever: r}
}

func (c *CargoLock) Name() string               { return "rust" }
func (c *CargoLock) DependencyFilename() string { return "Cargo.lock" }

func (c *CargoLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParseCargoLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, c.retriever), nil
}

// ParseCargoLock extracts the registry packages of a Cargo.lock.
func ParseCargoLock(content string) ([]deps.Dependency, error) {
	var lock lockFile
	if _, err := toml.Decode(content, &lock); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse Cargo.lock")
	}

	var list []deps.Dependency
	for _, p := range lock.Packages {
		if !isRegistry(p.Source) {
			continue
		}
		if p.Name == "" || p.Version == "" {
			return nil, errs.New(errs.ErrCodeInvalidLockfile, "Cargo.lock: package entry without name or version")
		}
		list = append(list, deps.Dependency{Name: p.Name, Version: p.Version})
	}
	return deps.Unique(list), nil
}

func isRegistry(source string) bool {
	return strings.HasPrefix(source, "registry+") || strings.HasPrefix(source, "sparse+")
}

type lockFile struct {
	Version  int           `toml:"version"`
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Source   string `toml:"source"`
	Checksum string `toml:"checksum"`
}
