// Package rust collects Cargo.lock dependencies and resolves their licenses
// through crates.io.
//
// # Collection
//
// [CargoLock] reads every [[package]] entry whose source is a registry
// ("registry+" or "sparse+"). Workspace members, git and path dependencies
// are skipped.
//
// # License Resolution
//
// [Retriever] queries https://crates.io/api/v1/crates/<name>/<version> and
// splits the license field on " OR ", " AND " and the legacy "/":
//
//	"MIT OR Apache-2.0"  =>  ["MIT", "Apache-2.0"]
//	"MIT/Apache-2.0"     =>  ["MIT", "Apache-2.0"]
//
// [crates]: github.com/matzehuels/licensebat/pkg/integrations/crates
package rust
