package javascript

import (
	"bufio"
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// YarnLock collects dependencies from yarn.lock. Both the classic v1 text
// format and the YAML format of yarn 2+ ("berry", recognized by its
// __metadata entry) are understood. Licenses are resolved through npm.
type YarnLock struct {
	retriever deps.Retriever
}

// NewYarnLock creates a collector that resolves through r.
func NewYarnLock(r deps.Retriever) *YarnLock {
	return &YarnLock{retriever: r}
}

func (y *YarnLock) Name() string               { return "yarn" }
func (y *YarnLock) DependencyFilename() string { return "yarn.lock" }

func (y *YarnLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParseYarnLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, y.retriever), nil
}

// ParseYarnLock extracts the name/version pairs of a yarn.lock.
func ParseYarnLock(content string) ([]deps.Dependency, error) {
	var (
		list []deps.Dependency
		err  error
	)
	if isBerry(content) {
		list, err = parseBerry(content)
	} else {
		list, err = parseClassic(content)
	}
	if err != nil {
		return nil, err
	}
	list = deps.Unique(list)
	deps.Sort(list)
	return list, nil
}

func isBerry(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "__metadata:") {
			return true
		}
	}
	return false
}

// parseClassic reads the v1 format:
//
//	"@babel/core@^7.0.0", "@babel/core@^7.1.0":
//	  version "7.12.3"
func parseClassic(content string) ([]deps.Dependency, error) {
	var (
		list    []deps.Dependency
		name    string
		header  string
		pending bool
		lineNo  int
	)

	flush := func() error {
		if pending {
			return errs.New(errs.ErrCodeInvalidLockfile, "yarn.lock: entry %q has no version", header)
		}
		return nil
	}

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !strings.HasPrefix(line, " ") {
			if err := flush(); err != nil {
				return nil, err
			}
			if !strings.HasSuffix(trimmed, ":") {
				return nil, errs.New(errs.ErrCodeInvalidLockfile, "yarn.lock:%d: expected entry header, got %q", lineNo, trimmed)
			}
			header = strings.TrimSuffix(trimmed, ":")
			name = specifierName(firstSpecifier(header))
			if name == "" {
				return nil, errs.New(errs.ErrCodeInvalidLockfile, "yarn.lock:%d: cannot read package name from %q", lineNo, header)
			}
			pending = true
			continue
		}

		// Entry fields sit at two spaces; deeper lines belong to nested maps.
		if pending && strings.HasPrefix(line, "  version ") {
			version := unquote(strings.TrimSpace(strings.TrimPrefix(trimmed, "version ")))
			list = append(list, deps.Dependency{Name: name, Version: version})
			pending = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "read yarn.lock")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return list, nil
}

func firstSpecifier(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return unquote(strings.TrimSpace(first))
}

// specifierName strips the range from "name@range"; scoped names keep
// their leading "@". An npm alias ("alias@npm:real@range") names the
// real package.
func specifierName(spec string) string {
	name, rng := splitSpecifier(spec)
	if target, ok := strings.CutPrefix(rng, "npm:"); ok {
		if aliased, r := splitSpecifier(target); r != "" {
			return aliased
		}
	}
	return name
}

// splitSpecifier cuts spec at the "@" that ends the package name. Versions
// and ranges never contain "@", so rng is empty when spec is a bare name or
// a bare range.
func splitSpecifier(spec string) (name, rng string) {
	if spec == "" {
		return "", ""
	}
	i := strings.Index(spec[1:], "@")
	if i < 0 {
		return spec, ""
	}
	return spec[:i+1], spec[i+2:]
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

type berryEntry struct {
	Version    string `yaml:"version"`
	Resolution string `yaml:"resolution"`
	LinkType   string `yaml:"linkType"`
}

func parseBerry(content string) ([]deps.Dependency, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "parse yarn.lock")
	}

	var list []deps.Dependency
	for key, node := range doc {
		if key == "__metadata" {
			continue
		}
		var e berryEntry
		if err := node.Decode(&e); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "yarn.lock entry %q", key)
		}
		if e.LinkType == "soft" || strings.Contains(e.Resolution, "@workspace:") {
			continue
		}
		// Patched packages always have an unpatched npm: twin.
		if strings.Contains(e.Resolution, "@patch:") || strings.Contains(key, "@patch:") {
			continue
		}
		if e.Version == "" {
			return nil, errs.New(errs.ErrCodeInvalidLockfile, "yarn.lock: entry %q has no version", key)
		}
		spec := e.Resolution
		if spec == "" {
			spec = firstSpecifier(key)
		}
		list = append(list, deps.Dependency{Name: specifierName(spec), Version: e.Version})
	}
	return list, nil
}
