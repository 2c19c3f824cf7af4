// Package pipeline runs the license check of one lockfile.
//
// The pipeline has three stages:
//
//  1. Select: pick the first registered collector whose dependency
//     filename is contained in the lockfile path
//  2. Collect: parse the lockfile and start one registry lookup per
//     dependency
//  3. Drain: read records in completion order, validating each against a
//     policy as it arrives
//
// Structural failures stop the run before any request is sent: an
// unknown lockfile is [ErrUnsupportedLockfile], a malformed one is
// [ErrParse]. Registry failures never fail the run; they are recorded on
// the dependency they belong to.
//
// # Usage
//
//	cs, err := collectors.Default(client)
//	c := pipeline.NewCoordinator(cs...)
//	recs, err := c.Check(ctx, "package-lock.json", content, pol)
//	if errors.Is(err, pipeline.ErrUnsupportedLockfile) {
//	    // nothing was sent
//	}
//	deps.SortByName(recs)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// Error sentinels, matched with errors.Is by code.
var (
	ErrUnsupportedLockfile = errs.New(errs.ErrCodeUnsupportedLockfile, "unsupported lockfile")
	ErrParse               = errs.New(errs.ErrCodeInvalidLockfile, "invalid lockfile")
)

// Format constants for reports.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ValidFormats is the set of supported report formats.
var ValidFormats = map[string]bool{
	FormatText:     true,
	FormatJSON:     true,
	FormatMarkdown: true,
}

// ValidateFormat checks that format is a supported report format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be text, json, or markdown)", format)
	}
	return nil
}

// Options configures a [Coordinator].
type Options struct {
	// Concurrency bounds in-flight registry lookups. 0 starts one lookup
	// per dependency at once.
	Concurrency int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Result is the outcome of one run.
type Result struct {
	// ID identifies the run in reports and API responses.
	ID string `json:"id"`

	// Lockfile is the path the collector was selected for.
	Lockfile string `json:"lockfile"`

	// Collector is the ecosystem tag of the selected collector.
	Collector string `json:"collector"`

	// Dependencies holds one record per collected dependency, in
	// completion order.
	Dependencies []deps.RetrievedDependency `json:"dependencies"`

	// Validated reports whether a policy was applied.
	Validated bool `json:"validated"`

	Stats Stats `json:"stats"`
}

// Stats contains run statistics.
type Stats struct {
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration_ns"`
}
