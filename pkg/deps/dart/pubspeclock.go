package dart

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// PubspecLock collects dependencies from pubspec.lock.
type PubspecLock struct {
	retriever deps.Retriever
}

// NewPubspecLock creates a collector that resolves through r.
func NewPubspecLock(r deps.Retriever) *PubspecLock {
	return &PubspecLock{retriever: r}
}

func (c *PubspecLock) Name() string               { return "dart" }
func (c *PubspecLock) DependencyFilename() string { return "pubspec.lock" }

func (c *PubspecLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParsePubspecLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, c.retriever), nil
}

// ParsePubspecLock extracts the hosted packages of a pubspec.lock. SDK, git
// and path packages are skipped because pub.dev knows nothing about them.
func ParsePubspecLock(content string) ([]deps.Dependency, error) {
	var lock lockFile
	if err := yaml.Unmarshal([]byte(content), &lock); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse pubspec.lock")
	}

	var list []deps.Dependency
	for key, p := range lock.Packages {
		if p.Source != "hosted" {
			continue
		}
		name := key
		if p.Description.Name != "" {
			name = p.Description.Name
		}
		if p.Version == "" {
			return nil, errs.New(errs.ErrCodeInvalidLockfile, "pubspec.lock: package %q has no version", key)
		}
		list = append(list, deps.Dependency{Name: name, Version: p.Version})
	}
	deps.Sort(list)
	return list, nil
}

type lockFile struct {
	Packages map[string]lockPackage `yaml:"packages"`
}

type lockPackage struct {
	Dependency  string      `yaml:"dependency"`
	Description description `yaml:"description"`
	Source      string      `yaml:"source"`
	Version     string      `yaml:"version"`
}

// description is a mapping for hosted packages and a plain string for sdk
// packages ("flutter").
type description struct {
	Name string
	URL  string
}

func (d *description) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	var m struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}
	d.Name, d.URL = m.Name, m.URL
	return nil
}
