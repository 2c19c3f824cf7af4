// Package dart collects pubspec.lock dependencies and resolves their
// licenses through pub.dev.
//
// # Collection
//
// [PubspecLock] reads the packages map and keeps entries with
// "source: hosted". Flutter SDK packages, git and path dependencies are
// skipped.
//
// # License Resolution
//
// [Retriever] first reads the tags of
// https://pub.dev/api/packages/<name>/score. Tags such as
// "license:bsd-3-clause" are already atomic; the "license:fsf-libre" and
// "license:osi-approved" classifications are ignored. When no license tag
// exists the license page of the version is downloaded and classified with
// a [licensetext.Store].
//
// [licensetext.Store]: github.com/matzehuels/licensebat/pkg/licensetext
package dart
