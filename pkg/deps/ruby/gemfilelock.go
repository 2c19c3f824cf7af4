package ruby

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// GemfileLock collects dependencies from Gemfile.lock.
//
// Only the GEM sections are read; gems from GIT and PATH sources are not
// published on RubyGems.
type GemfileLock struct {
	retriever deps.Retriever
}

// NewGemfileLock creates a collector that resolves through r.
func NewGemfileLock(r deps.Retriever) *GemfileLock {
	return &GemfileLock{retriever: r}
}

func (g *GemfileLock) Name() string               { return "ruby" }
func (g *GemfileLock) DependencyFilename() string { return "Gemfile.lock" }

func (g *GemfileLock) Collect(ctx context.Context, content string) (deps.Stream, error) {
	list, err := ParseGemfileLock(content)
	if err != nil {
		return nil, err
	}
	return deps.Fanout(ctx, Ecosystem, list, g.retriever), nil
}

// specPattern matches a resolved gem: four spaces, name, version in parens.
// Dependency constraints of a gem sit two levels deeper and never match.
var specPattern = regexp.MustCompile(`^    ([^\s(]+) \(([^)]+)\)$`)

// ParseGemfileLock extracts the gems of every GEM section. Platform
// suffixes are stripped from versions ("1.15.4-x86_64-linux" => "1.15.4"),
// so a gem locked for several platforms is checked once.
func ParseGemfileLock(content string) ([]deps.Dependency, error) {
	var (
		list      []deps.Dependency
		section   string
		inSpecs   bool
		sawGemSec bool
		lineNo    int
	)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, " ") {
			section, inSpecs = line, false
			if section == "GEM" {
				sawGemSec = true
			}
			continue
		}
		if section != "GEM" {
			continue
		}
		if line == "  specs:" {
			inSpecs = true
			continue
		}
		if !inSpecs || strings.HasPrefix(line, "      ") {
			continue
		}

		m := specPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, errs.New(errs.ErrCodeInvalidLockfile, "Gemfile.lock line %d: unexpected spec %q", lineNo, strings.TrimSpace(line))
		}
		list = append(list, deps.Dependency{Name: m[1], Version: stripPlatform(m[2])})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidLockfile, err, "read Gemfile.lock")
	}
	if !sawGemSec {
		return nil, errs.New(errs.ErrCodeInvalidLockfile, "Gemfile.lock: no GEM section")
	}
	return deps.Unique(list), nil
}

// stripPlatform cuts the platform from a locked version. Gem versions never
// contain a hyphen, platforms always follow one.
func stripPlatform(version string) string {
	if i := strings.IndexByte(version, '-'); i > 0 {
		return version[:i]
	}
	return version
}
