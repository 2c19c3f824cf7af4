package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/licensebat/pkg/deps"
	lbio "github.com/matzehuels/licensebat/pkg/io"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - valid
	colorYellow = lipgloss.Color("220") // Amber - ignored
	colorRed    = lipgloss.Color("167") // Soft red - invalid
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleDim.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// =============================================================================
// Results
// =============================================================================

// verdict returns the status label of a validated record.
func verdict(r deps.RetrievedDependency) string {
	switch {
	case r.IsIgnored:
		return "ignored"
	case r.IsValid:
		return "valid"
	case r.Error != nil:
		return "error"
	default:
		return "invalid"
	}
}

func verdictStyle(v string) lipgloss.Style {
	switch v {
	case "valid":
		return StyleSuccess
	case "ignored":
		return StyleWarning
	default:
		return StyleError
	}
}

// tableOptions selects the rows of a results table.
type tableOptions struct {
	hideInvalid bool
	showIgnored bool
}

// visible filters recs for human-readable output.
func visible(recs []deps.RetrievedDependency, opts tableOptions) []deps.RetrievedDependency {
	var out []deps.RetrievedDependency
	for _, r := range recs {
		if r.IsIgnored && !opts.showIgnored {
			continue
		}
		if !r.IsIgnored && !r.IsValid && opts.hideInvalid {
			continue
		}
		out = append(out, r)
	}
	return out
}

// renderTable renders records as a rounded lipgloss table.
func renderTable(recs []deps.RetrievedDependency) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		licenses := strings.Join(r.Licenses, ", ")
		if licenses == "" {
			licenses = "—"
		}
		rows = append(rows, []string{verdict(r), r.Name, r.Version, r.DependencyType, licenses, lbio.Notes(r)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Status", "Dependency", "Version", "Type", "Licenses", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			switch col {
			case 0:
				return base.Inherit(verdictStyle(rows[row][0]))
			case 5:
				return base.Foreground(colorGray).MaxWidth(60)
			}
			return base
		})
	return t.Render()
}

// printSummary writes the one-line verdict of a run.
func printSummary(w io.Writer, s policy.Summary, hidden int) {
	msg := fmt.Sprintf("%d dependencies: %d valid, %d invalid, %d ignored", s.Total, s.Valid, s.Invalid, s.Ignored)
	if s.Errored > 0 {
		msg += fmt.Sprintf(" (%d lookups failed)", s.Errored)
	}
	if s.Invalid > 0 {
		printError(w, "%s", msg)
	} else {
		printSuccess(w, "%s", msg)
	}
	if hidden > 0 {
		printInfo(w, "%d invalid dependencies hidden by configuration", hidden)
	}
}
