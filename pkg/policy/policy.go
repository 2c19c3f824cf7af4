// Package policy decides which dependencies of a report are compliant.
//
// A [Policy] maps license identifiers and dependency identities to an
// [Outcome]. [Policy.Validate] applies it to one record at a time; it does
// no I/O and keeps no state, so a policy can validate records while a
// stream is still being drained.
//
// # Evaluation
//
//  1. A dependency override ("name@version", then "name") wins outright.
//     An ignore override only marks the record ignored and leaves IsValid
//     as retrieved.
//  2. Otherwise every license of the record is looked up; a license no
//     rule covers takes the default. One denied license invalidates the
//     record. Ignored licenses do not count, and a record whose licenses
//     are all ignored is itself ignored.
//  3. A record without licenses stays invalid.
//
// Records carrying a retrieval error never become valid.
package policy

import (
	"strings"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

// Outcome is the verdict of a rule.
type Outcome string

const (
	Allow  Outcome = "allow"
	Deny   Outcome = "deny"
	Ignore Outcome = "ignore"
)

// ParseOutcome parses an outcome name, ignoring case.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case Allow, Deny, Ignore:
		return o, nil
	}
	return "", errs.New(errs.ErrCodeInvalidPolicy, "unknown outcome %q (want allow, deny or ignore)", s)
}

// Policy is the in-memory form of a policy document.
type Policy struct {
	// Default is the outcome of licenses no rule covers.
	Default Outcome
	// Licenses maps license identifiers to outcomes. Lookups ignore case.
	Licenses map[string]Outcome
	// Dependencies maps "name" or "name@version" to an override.
	Dependencies map[string]Outcome

	// HideInvalid asks human-readable reports to omit invalid records.
	// It never changes validation.
	HideInvalid bool
}

// New returns an empty policy with the given default.
func New(def Outcome) *Policy {
	return &Policy{
		Default:      def,
		Licenses:     map[string]Outcome{},
		Dependencies: map[string]Outcome{},
	}
}

// Validate applies the policy to rec and marks it validated.
func (p *Policy) Validate(rec *deps.RetrievedDependency) {
	defer func() { rec.Validated = true }()

	if o, ok := p.override(rec.Name, rec.Version); ok {
		switch o {
		case Ignore:
			rec.IsIgnored = true
		case Allow:
			rec.IsValid = rec.Error == nil
		case Deny:
			rec.IsValid = false
		}
		return
	}

	if rec.Error != nil || len(rec.Licenses) == 0 {
		rec.IsValid = false
		return
	}

	valid, counted := true, 0
	for _, l := range rec.Licenses {
		switch p.license(l) {
		case Deny:
			valid = false
			counted++
		case Ignore:
		default:
			counted++
		}
	}
	rec.IsValid = valid
	if counted == 0 {
		rec.IsIgnored = true
	}
}

// ValidateAll applies the policy to every record of recs.
func (p *Policy) ValidateAll(recs []deps.RetrievedDependency) {
	for i := range recs {
		p.Validate(&recs[i])
	}
}

func (p *Policy) override(name, version string) (Outcome, bool) {
	if o, ok := p.Dependencies[name+"@"+version]; ok {
		return o, true
	}
	o, ok := p.Dependencies[name]
	return o, ok
}

func (p *Policy) license(id string) Outcome {
	if o, ok := p.Licenses[id]; ok {
		return o
	}
	for k, o := range p.Licenses {
		if strings.EqualFold(k, id) {
			return o
		}
	}
	return p.Default
}

// Check verifies the outcomes of p. The parsers validate while decoding, so
// it matters for policies built in code; the pipeline runs it before any
// lookup.
func (p *Policy) Check() error {
	if _, err := ParseOutcome(string(p.Default)); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPolicy, err, "default")
	}
	for k, o := range p.Licenses {
		if _, err := ParseOutcome(string(o)); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPolicy, err, "license %s", k)
		}
	}
	for k, o := range p.Dependencies {
		if _, err := ParseOutcome(string(o)); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPolicy, err, "dependency %s", k)
		}
	}
	return nil
}

// Summary counts validated records by verdict.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
	Ignored int
	Errored int
}

// Summarize counts recs. Ignored records are neither valid nor invalid.
func Summarize(recs []deps.RetrievedDependency) Summary {
	s := Summary{Total: len(recs)}
	for _, r := range recs {
		if r.Error != nil {
			s.Errored++
		}
		switch {
		case r.IsIgnored:
			s.Ignored++
		case r.IsValid:
			s.Valid++
		default:
			s.Invalid++
		}
	}
	return s
}
