package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensebat/pkg/deps"
	errs "github.com/matzehuels/licensebat/pkg/errors"
	lbio "github.com/matzehuels/licensebat/pkg/io"
	"github.com/matzehuels/licensebat/pkg/observability"
	"github.com/matzehuels/licensebat/pkg/pipeline"
	"github.com/matzehuels/licensebat/pkg/policy"
)

// checkOptions holds the flags of the check command.
type checkOptions struct {
	licrc         string
	format        string
	output        string
	concurrency   int
	failOnInvalid bool
	sort          bool
	showIgnored   bool
	interactive   bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOptions{
		licrc:         defaultLicrc,
		format:        pipeline.FormatText,
		concurrency:   16,
		failOnInvalid: true,
		sort:          true,
	}

	cmd := &cobra.Command{
		Use:   "check [dependency-file]",
		Short: "Check the licenses of a lockfile's dependencies",
		Long: `Check reads a lockfile, retrieves the license of every dependency from its
registry and validates the licenses against a policy file.

Supported lockfiles: package-lock.json, yarn.lock, Cargo.lock, pubspec.lock,
poetry.lock and Gemfile.lock. Paths are relative to the working directory.

Exit codes: 0 when every dependency is valid, 1 when invalid dependencies were
found (unless --fail-on-invalid=false), 2 on usage or input errors.`,
		Example: `  licensebat check package-lock.json
  licensebat check Cargo.lock --licrc policy.yaml --format markdown -o report.md
  licensebat check yarn.lock --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			opts.resolve(cmd)
			return c.runCheck(cmd.Context(), cmd, resolveDependencyFile(path), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.licrc, "licrc", opts.licrc, "policy file (.licrc TOML or .yaml)")
	f.StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, markdown")
	f.StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	f.IntVarP(&opts.concurrency, "concurrency", "c", opts.concurrency, "maximum parallel registry lookups (0 = unbounded)")
	f.BoolVar(&opts.failOnInvalid, "fail-on-invalid", opts.failOnInvalid, "exit with code 1 when invalid dependencies are found")
	f.BoolVar(&opts.sort, "sort", opts.sort, "sort dependencies by name")
	f.BoolVar(&opts.showIgnored, "show-ignored", false, "list ignored dependencies in text output")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results in the terminal")

	return cmd
}

// resolve applies environment and config file values to flags that were not
// set explicitly.
func (o *checkOptions) resolve(cmd *cobra.Command) {
	o.licrc = resolveString(cmd, o.licrc, keyLicrcFile, "licrc")
	o.format = resolveString(cmd, o.format, keyFormat, "format")
	o.concurrency = resolveInt(cmd, o.concurrency, keyConcurrency, "concurrency")
	o.failOnInvalid = resolveBool(cmd, o.failOnInvalid, keyFailOnInvalid, "fail-on-invalid")
	o.sort = resolveBool(cmd, o.sort, keySort, "sort")
	o.showIgnored = resolveBool(cmd, o.showIgnored, keyShowIgnored, "show-ignored")
}

func resolveDependencyFile(arg string) string {
	if arg != "" {
		return arg
	}
	return resolveString(nil, "", keyDependencyFile, "")
}

func (c *CLI) runCheck(ctx context.Context, cmd *cobra.Command, path string, opts checkOptions) error {
	logger := loggerFromContext(ctx)

	if path == "" {
		return errs.New(errs.ErrCodeInvalidInput, "no dependency file given (pass it as argument or set %s_DEPENDENCY_FILE)", envPrefix)
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}
	if opts.interactive && opts.format != pipeline.FormatText {
		return errs.New(errs.ErrCodeInvalidInput, "--interactive only works with text output")
	}

	content, err := readDependencyFile(path)
	if err != nil {
		return err
	}
	pol, err := policy.Load(opts.licrc)
	if err != nil {
		return err
	}
	logger.Debug("loaded policy", "file", opts.licrc, "default", pol.Default, "rules", len(pol.Licenses), "overrides", len(pol.Dependencies))

	coord, err := c.newCoordinator(opts.concurrency)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if opts.format == pipeline.FormatText && !opts.interactive && stderrIsTerminal(cmd) {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), "Reading "+path)
		spinner.Start()
		observability.SetPipelineHooks(&spinnerHooks{spinner: spinner})
		defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})
	}

	prog := newProgress(logger)
	res, err := coord.Execute(ctx, path, string(content), pol)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d dependencies", res.Stats.Count))
	if res.Stats.Count == 0 {
		printWarning(cmd.ErrOrStderr(), "no registry dependencies found in %s", path)
	}

	if opts.sort {
		deps.SortByName(res.Dependencies)
	}

	if opts.interactive {
		_, err := tea.NewProgram(NewResultsModel(res.Lockfile, res.Dependencies), tea.WithAltScreen()).Run()
		if err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "interactive view")
		}
	} else if err := c.writeReport(cmd.OutOrStdout(), opts.output, opts.format, res, pol.HideInvalid, opts.showIgnored); err != nil {
		return err
	}

	sum := policy.Summarize(res.Dependencies)
	if opts.failOnInvalid && sum.Invalid > 0 {
		return errs.New(errs.ErrCodeNonCompliant, "%d of %d dependencies are invalid", sum.Invalid, sum.Total)
	}
	return nil
}

// writeReport renders res in format to output, or to stdout when output is
// empty.
func (c *CLI) writeReport(stdout io.Writer, output, format string, res *pipeline.Result, hideInvalid, showIgnored bool) error {
	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "create %s", output)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch format {
	case pipeline.FormatJSON:
		err = lbio.WriteJSON(w, res.Dependencies)
	case pipeline.FormatMarkdown:
		err = lbio.WriteMarkdown(w, res.Dependencies, lbio.MarkdownOptions{
			Lockfile:    res.Lockfile,
			RunID:       res.ID,
			HideInvalid: hideInvalid,
		})
	default:
		err = writeText(w, res.Lockfile, res.Dependencies, tableOptions{hideInvalid: hideInvalid, showIgnored: showIgnored})
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write %s report", format)
	}
	if output != "" {
		printSuccess(stdout, "Report written to %s", output)
	}
	return nil
}

// writeText writes the terminal rendering of recs: a table and a summary.
func writeText(w io.Writer, lockfile string, recs []deps.RetrievedDependency, opts tableOptions) error {
	sum := policy.Summarize(recs)
	rows := visible(recs, opts)
	hidden := 0
	if opts.hideInvalid {
		hidden = sum.Invalid
	}

	if lockfile != "" {
		if _, err := fmt.Fprintln(w, StyleTitle.Render(lockfile)); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		if _, err := fmt.Fprintln(w, renderTable(rows)); err != nil {
			return err
		}
	}
	printSummary(w, sum, hidden)
	return nil
}

// readDependencyFile reads path relative to the working directory.
func readDependencyFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "dependency file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read dependency file %s", path)
	}
	return content, nil
}

// stderrIsTerminal reports whether cmd writes diagnostics to an interactive
// terminal.
func stderrIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.ErrOrStderr().(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// spinnerHooks shows retrieval progress on the spinner.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
	total   atomic.Int64
	done    atomic.Int64
}

func (h *spinnerHooks) OnCollected(_ context.Context, ecosystem string, count int) {
	h.total.Store(int64(count))
	h.spinner.SetMessage(fmt.Sprintf("Checking %d %s dependencies", count, ecosystem))
}

func (h *spinnerHooks) OnDependencyRetrieved(_ context.Context, _, name string, _ bool) {
	n := h.done.Add(1)
	h.spinner.SetMessage(fmt.Sprintf("Checked %d/%d  %s", n, h.total.Load(), name))
}
