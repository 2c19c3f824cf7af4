// Package ruby collects Gemfile.lock dependencies and resolves their
// licenses through RubyGems.
//
// [GemfileLock] reads the specs of every GEM section, so both direct and
// transitive gems are checked. [Retriever] queries
// https://rubygems.org/api/v2/rubygems/<name>/versions/<version>.json and
// uses its licenses array as is.
package ruby
