// Package collectors registers every supported lockfile collector.
//
// The order of [Default] is the selection precedence of the pipeline:
//
//	package-lock.json  npm
//	yarn.lock          yarn (npm registry)
//	Cargo.lock         rust
//	pubspec.lock       dart
//	poetry.lock        python
//	Gemfile.lock       ruby
//
// Adding an ecosystem means adding its collector here; the pipeline itself
// does not change.
package collectors

import (
	"github.com/matzehuels/licensebat/pkg/deps"
	"github.com/matzehuels/licensebat/pkg/deps/dart"
	"github.com/matzehuels/licensebat/pkg/deps/javascript"
	"github.com/matzehuels/licensebat/pkg/deps/python"
	"github.com/matzehuels/licensebat/pkg/deps/ruby"
	"github.com/matzehuels/licensebat/pkg/deps/rust"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	"github.com/matzehuels/licensebat/pkg/integrations"
	"github.com/matzehuels/licensebat/pkg/integrations/crates"
	"github.com/matzehuels/licensebat/pkg/integrations/npm"
	"github.com/matzehuels/licensebat/pkg/integrations/pubdev"
	"github.com/matzehuels/licensebat/pkg/integrations/pypi"
	"github.com/matzehuels/licensebat/pkg/integrations/rubygems"
	"github.com/matzehuels/licensebat/pkg/licensetext"
)

// Registries overrides registry base URLs. Empty fields keep the public
// registry.
type Registries struct {
	NPM      string
	Crates   string
	PubDev   string
	PyPI     string
	RubyGems string
}

// loadStore supplies the license texts of the pub.dev license-page
// fallback.
var loadStore = licensetext.Default

// Default returns the collectors for the public registries, all sharing
// client.
func Default(client *integrations.Client) ([]deps.Collector, error) {
	return New(client, Registries{})
}

// New returns the collectors in precedence order, resolving through the
// registries in reg. It fails only when the embedded license texts cannot
// be loaded.
func New(client *integrations.Client, reg Registries) ([]deps.Collector, error) {
	store, err := loadStore()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "license texts")
	}

	npmRetriever := javascript.NewRetriever(npm.NewClient(client, reg.NPM))
	return []deps.Collector{
		javascript.NewPackageLock(npmRetriever),
		javascript.NewYarnLock(npmRetriever),
		rust.NewCargoLock(rust.NewRetriever(crates.NewClient(client, reg.Crates))),
		dart.NewPubspecLock(dart.NewRetriever(pubdev.NewClient(client, reg.PubDev), store)),
		python.NewPoetryLock(python.NewRetriever(pypi.NewClient(client, reg.PyPI))),
		ruby.NewGemfileLock(ruby.NewRetriever(rubygems.NewClient(client, reg.RubyGems))),
	}, nil
}
