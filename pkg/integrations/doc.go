// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching license metadata
// from the registries licensebat audits. Each registry has its own subpackage:
//
//   - [npm]: Node Package Manager (package-lock.json, yarn.lock)
//   - [crates]: Rust crates.io (Cargo.lock)
//   - [pubdev]: Dart pub.dev (pubspec.lock)
//   - [pypi]: Python Package Index (poetry.lock)
//   - [rubygems]: Ruby gems (Gemfile.lock)
//
// # Client Pattern
//
// All registry clients wrap one shared [Client]:
//
//	shared := integrations.NewClient(nil)
//	client := npm.NewClient(shared, "")  // "" = public registry
//	pkg, err := client.FetchPackument(ctx, "left-pad")
//
// # Shared Infrastructure
//
// [Client] owns the pooled *http.Client (10s timeout) and coalesces identical
// concurrent GETs, so a lockfile listing the same package twice costs a single
// request. Nothing is cached across requests and nothing is retried: failures
// surface as [ErrNotFound] or [ErrNetwork] and end up as the error text of a
// single dependency record.
//
// Every request emits [observability.HTTPHooks] events.
//
// # Adding a New Registry
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client embedding [*Client]
//  4. Wire it into a retriever under pkg/deps/<ecosystem>
//
// [npm]: github.com/matzehuels/licensebat/pkg/integrations/npm
// [crates]: github.com/matzehuels/licensebat/pkg/integrations/crates
// [pubdev]: github.com/matzehuels/licensebat/pkg/integrations/pubdev
// [pypi]: github.com/matzehuels/licensebat/pkg/integrations/pypi
// [rubygems]: github.com/matzehuels/licensebat/pkg/integrations/rubygems
// [observability.HTTPHooks]: github.com/matzehuels/licensebat/pkg/observability.HTTPHooks
package integrations
