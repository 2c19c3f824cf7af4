package javascript

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// PackageLock collects dependencies from npm's package-lock.json.
//
// lockfileVersion 1 lists packages in a nested "dependencies" map keyed by
// name. Versions 2 and 3 list every install location in a flat "packages"
// map keyed by path ("node_modules/a/node_modules/b"); when present it is
// preferred. Only installed packages count: the root entry, workspace sources
// and links to them are skipped.
type PackageLock struct {
	retriever deps.Retriever
}

// NewPackageLock creates a collector that resolves through r.
func NewPackageLock(r deps.Retriever) *PackageLock {
	return &PackageLock{retriever: r}
}

func (p *PackageLock) Name() string               { return "npm" }
func (p *PackageLock) DependencyFilename() string { return "package-lock.json" }

func (p *PackageLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParsePackageLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, p.retriever), nil
}

// ParsePackageLock extracts the name/version pairs of a package-lock.json.
func ParsePackageLock(content string) ([]deps.Dependency, error) {
	var lock packageLockFile
	if err := json.Unmarshal([]byte(content), &lock); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse package-lock.json")
	}

	var list []deps.Dependency
	if len(lock.Packages) > 0 {
		for path, pkg := range lock.Packages {
			name := packageNameFromPath(path)
			if name == "" || pkg.Link || pkg.Version == "" {
				continue
			}
			if pkg.Name != "" {
				name = pkg.Name
			}
			list = append(list, deps.Dependency{Name: name, Version: pkg.Version})
		}
	} else {
		list = walkV1(lock.Dependencies, list)
	}

	list = deps.Unique(list)
	deps.Sort(list)
	return list, nil
}

func walkV1(m map[string]v1Dependency, list []deps.Dependency) []deps.Dependency {
	for name, d := range m {
		if d.Version != "" && !strings.HasPrefix(d.Version, "file:") {
			list = append(list, deps.Dependency{Name: name, Version: d.Version})
		}
		list = walkV1(d.Dependencies, list)
	}
	return list
}

// packageNameFromPath returns the package name of a "packages" key:
// everything after the last "node_modules/".
func packageNameFromPath(path string) string {
	const marker = "node_modules/"
	if i := strings.LastIndex(path, marker); i >= 0 {
		return path[i+len(marker):]
	}
	return ""
}

type packageLockFile struct {
	LockfileVersion int                     `json:"lockfileVersion"`
	Packages        map[string]v2Package    `json:"packages"`
	Dependencies    map[string]v1Dependency `json:"dependencies"`
}

type v2Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Link    bool   `json:"link"`
}

type v1Dependency struct {
	Version      string                  `json:"version"`
	Dependencies map[string]v1Dependency `json:"dependencies"`
}
