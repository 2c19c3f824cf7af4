// Package javascript collects npm dependencies and resolves their licenses.
//
// # Overview
//
// Two lockfile formats are supported, both resolved through the [npm]
// registry client:
//
//   - package-lock.json ([PackageLock]): lockfileVersion 1, 2 and 3
//   - yarn.lock ([YarnLock]): classic v1 text and yarn 2+ YAML
//
// # License Resolution
//
// [Retriever] fetches the package document of each dependency and takes the
// license declared by the exact version, falling back to the legacy
// "licenses" array and then to the package-level license. Compound
// expressions are split on " OR " and " AND ":
//
//	"(MIT OR Apache-2.0)"  =>  ["MIT", "Apache-2.0"]
//
// Records point at https://www.npmjs.com/package/<name>/v/<version>.
//
// [npm]: github.com/matzehuels/licensebat/pkg/integrations/npm
package javascript
