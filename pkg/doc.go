// Package pkg provides the core libraries of licensebat, a dependency license
// checker.
//
// # Overview
//
// Licensebat reads a lockfile, looks up the license of every locked
// dependency in the registry of its ecosystem and validates the result
// against a policy. The pkg directory is organized into these areas:
//
//  1. [deps] - Collectors (lockfile parsers) and retrievers (registry lookups)
//  2. [integrations] - HTTP clients for npm, crates.io, pub.dev, PyPI and RubyGems
//  3. [policy] - Allow/deny/ignore rules and the validator
//  4. [pipeline] - Orchestration (select → collect → retrieve → validate)
//  5. [io] - JSON and markdown reports
//
// # Architecture
//
// The data flow of one run:
//
//	lockfile path + content
//	         ↓
//	    [deps.Detect] (first collector whose filename occurs in the path)
//	         ↓
//	    [deps.Collector] (parse lockfile → name/version list)
//	         ↓
//	    [deps.Retriever] × N, concurrently (registry → license record)
//	         ↓
//	    [policy.Policy] (validate each record as it arrives)
//	         ↓
//	    JSON / markdown / terminal table
//
// Every dependency yields exactly one record. Registry failures never abort
// a run; they end up as the record's error text and make it invalid.
//
// # Quick Start
//
//	client := integrations.NewClient(nil)
//	cs, err := collectors.Default(client)
//	coord := pipeline.NewCoordinator(cs...)
//
//	pol, _ := policy.Load(".licrc")
//	recs, err := coord.Check(ctx, "package-lock.json", content, pol)
//	if errors.Is(err, pipeline.ErrUnsupportedLockfile) {
//	    // no collector for this path
//	}
//	_ = io.WriteJSON(os.Stdout, recs)
//
// # Main Packages
//
// [deps] - The Collector and Retriever contracts, the record type
// [deps.RetrievedDependency] and the concurrent fan-out shared by all
// ecosystems. One subpackage per ecosystem:
//
//   - [deps/javascript]: package-lock.json and yarn.lock (npm registry)
//   - [deps/rust]: Cargo.lock (crates.io)
//   - [deps/dart]: pubspec.lock (pub.dev, with a license text fallback)
//   - [deps/python]: poetry.lock (PyPI)
//   - [deps/ruby]: Gemfile.lock (RubyGems)
//
// [deps/collectors] - The default collector registry in selection order.
//
// [licensetext] - Offline classifier that maps a license text to an SPDX
// identifier, used when a registry only publishes the text.
//
// [integrations] - The shared HTTP client (headers, in-flight request
// coalescing, status mapping) and one client per registry.
//
// [policy] - Policies loaded from .licrc TOML or YAML. Validation is
// conjunctive: every license of a dependency must be acceptable.
//
// [pipeline] - The coordinator used by the CLI and the HTTP API. Ensures
// consistent behavior across both entry points.
//
// [io] - Report writers and the JSON importer behind "licensebat report".
//
// [errors] - Structured error codes, exit codes and input validation.
//
// [observability] - Hooks for pipeline and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/deps/...               # Collectors and retrievers
//	go test -run Example ./pkg/...       # Examples only
//
// Registry tests run against net/http/httptest servers; no test touches the
// network.
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps
// [deps.Detect]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps#Detect
// [deps.Collector]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps#Collector
// [deps.Retriever]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps#Retriever
// [deps.RetrievedDependency]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps#RetrievedDependency
// [deps/javascript]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/javascript
// [deps/rust]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/rust
// [deps/dart]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/dart
// [deps/python]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/python
// [deps/ruby]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/ruby
// [deps/collectors]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/deps/collectors
// [licensetext]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/licensetext
// [integrations]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/integrations
// [policy]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/policy
// [policy.Policy]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/policy#Policy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/licensebat/pkg/observability
package pkg
