package python

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// PoetryLock collects dependencies from poetry.lock.
//
// Packages installed from git, a local directory, a URL or a private index
// carry a [package.source] table and are skipped.
type PoetryLock struct {
	retriever deps.Retriever
}

// NewPoetryLock creates a collector that resolves through r.
func NewPoetryLock(r deps.Retriever) *PoetryLock {
	return &PoetryLock{retriever: r}
}

func (p *PoetryLock) Name() string               { return "python" }
func (p *PoetryLock) DependencyFilename() string { return "poetry.lock" }

func (p *PoetryLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParsePoetryLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, p.retriever), nil
}

// ParsePoetryLock extracts the PyPI packages of a poetry.lock.
func ParsePoetryLock(content string) ([]deps.Dependency, error) {
	var lock lockFile
	if _, err := toml.Decode(content, &lock); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse poetry.lock")
	}

	var list []deps.Dependency
	for _, pkg := range lock.Packages {
		if pkg.Source != nil {
			continue
		}
		if pkg.Name == "" || pkg.Version == "" {
			return nil, errs.New(errs.ErrCodeInvalidLockfile, "poetry.lock: package entry without name or version")
		}
		list = append(list, deps.Dependency{Name: pkg.Name, Version: pkg.Version})
	}
	return deps.Unique(list), nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name        string         `toml:"name"`
	Version     string         `toml:"version"`
	Description string         `toml:"description"`
	Optional    bool           `toml:"optional"`
	Source      *packageSource `toml:"source"`
}

type packageSource struct {
	Type string `toml:"type"`
	URL  string `toml:"url"`
}
