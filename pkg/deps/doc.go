// Package deps provides the collection half of a license audit: reading a
// lockfile and turning each declared dependency into a license record.
//
// # Overview
//
// licensebat audits the dependencies a lockfile enumerates. For every
// supported ecosystem a subpackage provides:
//
//   - a [Collector] that parses the lockfile into [Dependency] values
//   - a [Retriever] that asks the ecosystem's registry for the license of one
//     dependency and returns a [RetrievedDependency]
//
// # Architecture
//
// The collection system has three layers:
//
//  1. Integrations ([integrations]): Low-level HTTP clients for each registry API
//  2. Ecosystems (subpackages of this package): lockfile parsers and retrievers
//  3. Pipeline ([pipeline]): collector selection, draining and validation
//
// # Streams
//
// [Fanout] starts one goroutine per dependency and returns a [Stream] that
// delivers records in completion order:
//
//	list := []deps.Dependency{{Name: "left-pad", Version: "1.3.0"}}
//	for rec := range deps.Fanout(ctx, "npm", list, retriever) {
//	    fmt.Println(rec.Name, rec.Licenses)
//	}
//
// Retrieval never fails as a whole. A registry error is recorded in the
// record's Error field, and the stream always carries one record per
// dependency. [WithConcurrency] bounds the number of requests in flight.
//
// # Records
//
// [NewRetrieved] is the only constructor retrievers use, so every ecosystem
// reports the same shape:
//
//   - resolved: Licenses set, IsValid true
//   - no license declared: Licenses = [NoLicense] plus a removable Comment
//   - registry failure: Error set, Licenses nil, IsValid false
//
// Policies later set Validated, IsValid and IsIgnored (see [policy]).
//
// # Compound Licenses
//
// [SplitLicenses] breaks SPDX-like expressions into identifiers. Each
// retriever documents which separators its registry uses.
//
// # Supported Ecosystems
//
//   - [javascript]: package-lock.json and yarn.lock via npm
//   - [rust]: Cargo.lock via crates.io
//   - [dart]: pubspec.lock via pub.dev
//   - [python]: poetry.lock via PyPI
//   - [ruby]: Gemfile.lock via RubyGems
//
// [integrations]: github.com/matzehuels/licensebat/pkg/integrations
// [pipeline]: github.com/matzehuels/licensebat/pkg/pipeline
// [policy]: github.com/matzehuels/licensebat/pkg/policy
// [javascript]: github.com/matzehuels/licensebat/pkg/deps/javascript
// [rust]: github.com/matzehuels/licensebat/pkg/deps/rust
// [dart]: github.com/matzehuels/licensebat/pkg/deps/dart
// [python]: github.com/matzehuels/licensebat/pkg/deps/python
// [ruby]: github.com/matzehuels/licensebat/pkg/deps/ruby
package deps
