package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/licensebat/pkg/deps"
	lbio "github.com/matzehuels/licensebat/pkg/io"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// filters cycles through the record subsets shown by the browser.
var filters = []string{"all", "invalid", "valid", "ignored"}

// =============================================================================
// ResultsModel - Interactive results browser
// =============================================================================

// ResultsModel is the bubbletea model behind check --interactive. It shows a
// scrollable list of records; enter opens the detail view of one record.
type ResultsModel struct {
	Records  []deps.RetrievedDependency
	Lockfile string

	Cursor int
	Offset int
	Height int
	Detail bool
	Filter int

	shown []int
}

// NewResultsModel creates a browser over recs.
func NewResultsModel(lockfile string, recs []deps.RetrievedDependency) ResultsModel {
	m := ResultsModel{Records: recs, Lockfile: lockfile, Height: 15}
	m.applyFilter()
	return m
}

// Visible returns the records matching the current filter, in list order.
func (m ResultsModel) Visible() []deps.RetrievedDependency {
	out := make([]deps.RetrievedDependency, len(m.shown))
	for i, idx := range m.shown {
		out[i] = m.Records[idx]
	}
	return out
}

// Selected returns the record under the cursor.
func (m ResultsModel) Selected() (deps.RetrievedDependency, bool) {
	if len(m.shown) == 0 {
		return deps.RetrievedDependency{}, false
	}
	return m.Records[m.shown[m.Cursor]], true
}

func (m *ResultsModel) applyFilter() {
	m.shown = nil
	want := filters[m.Filter]
	for i, r := range m.Records {
		v := verdict(r)
		if v == "error" {
			v = "invalid"
		}
		if want == "all" || want == v {
			m.shown = append(m.shown, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.Detail = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.shown)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "f", "tab":
			m.Filter = (m.Filter + 1) % len(filters)
			m.applyFilter()
		case "enter":
			if len(m.shown) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ResultsModel) View() string {
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	sum := policy.Summarize(m.Records)

	title := "Dependencies"
	if m.Lockfile != "" {
		title += " in " + m.Lockfile
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d valid, %d invalid, %d ignored  ·  filter: %s",
		sum.Valid, sum.Invalid, sum.Ignored, filters[m.Filter])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  f filter  q quit"))
	b.WriteString("\n\n")

	if len(m.shown) == 0 {
		b.WriteString(listDimStyle.Render("  no dependencies match this filter"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.shown))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Records[m.shown[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, verdict(r), r.Name, r.Version, strings.Join(r.Licenses, ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Status", "Dependency", "Version", "Licenses").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if m.Offset+row == m.Cursor {
				base = base.Bold(true)
			}
			if col == 1 && row < len(rows) {
				return base.Inherit(verdictStyle(rows[row][1]))
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.shown))))
	return b.String()
}

func (m ResultsModel) detailView() string {
	r, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(r.Name + " " + r.Version))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	field := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailKeyStyle.Render(key))
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}

	v := verdict(r)
	b.WriteString(detailKeyStyle.Render("status"))
	b.WriteString(verdictStyle(v).Render(v))
	b.WriteString("\n")
	field("type", r.DependencyType)
	field("licenses", strings.Join(r.Licenses, ", "))
	if r.URL != nil {
		field("url", *r.URL)
	}
	field("notes", lbio.Notes(r))
	return b.String()
}
