package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/licensebat/pkg/deps"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// MarkdownOptions controls [WriteMarkdown].
type MarkdownOptions struct {
	// Lockfile is named in the summary line when set.
	Lockfile string
	// RunID is printed in the footer when set.
	RunID string
	// HideInvalid replaces the invalid table with a count.
	HideInvalid bool
}

// WriteMarkdown renders recs as a markdown report. Records are written in
// the order given.
func WriteMarkdown(w io.Writer, recs []deps.RetrievedDependency, opts MarkdownOptions) error {
	var b strings.Builder
	sum := policy.Summarize(recs)

	b.WriteString("## Licensebat report\n\n")
	if sum.Invalid == 0 {
		b.WriteString(":white_check_mark: ")
	} else {
		b.WriteString(":x: ")
	}
	fmt.Fprintf(&b, "**%d** dependencies checked", sum.Total)
	if opts.Lockfile != "" {
		fmt.Fprintf(&b, " in `%s`", opts.Lockfile)
	}
	fmt.Fprintf(&b, ": %d valid, %d invalid, %d ignored.\n", sum.Valid, sum.Invalid, sum.Ignored)

	var valid, invalid, ignored []deps.RetrievedDependency
	for _, r := range recs {
		switch {
		case r.IsIgnored:
			ignored = append(ignored, r)
		case r.IsValid:
			valid = append(valid, r)
		default:
			invalid = append(invalid, r)
		}
	}

	if opts.HideInvalid {
		if len(invalid) > 0 {
			fmt.Fprintf(&b, "\n_%d invalid dependencies are hidden by configuration._\n", len(invalid))
		}
	} else {
		writeTable(&b, "Invalid dependencies", invalid)
	}
	writeTable(&b, "Valid dependencies", valid)
	writeTable(&b, "Ignored dependencies", ignored)

	if opts.RunID != "" {
		fmt.Fprintf(&b, "\n<sub>licensebat run %s</sub>\n", opts.RunID)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, title string, recs []deps.RetrievedDependency) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	b.WriteString("| Dependency | Version | Type | Licenses | Notes |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range recs {
		name := cell(r.Name)
		if r.URL != nil {
			name = fmt.Sprintf("[%s](%s)", name, *r.URL)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			name, cell(r.Version), cell(r.DependencyType), cell(strings.Join(r.Licenses, ", ")), cell(Notes(r)))
	}
}

// Notes returns the error of r, or its comment when there is no error.
func Notes(r deps.RetrievedDependency) string {
	switch {
	case r.Error != nil:
		return *r.Error
	case r.Comment != nil:
		return r.Comment.Text
	}
	return ""
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
