package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/licensebat/pkg/errors"
	lbio "github.com/matzehuels/licensebat/pkg/io"
	"github.com/matzehuels/licensebat/pkg/pipeline"
)

// reportCommand creates the report command, which renders a JSON result
// saved by "check --format json".
func (c *CLI) reportCommand() *cobra.Command {
	var (
		format      = pipeline.FormatText
		output      string
		hideInvalid bool
		showIgnored bool
	)

	cmd := &cobra.Command{
		Use:   "report <results.json>",
		Short: "Render saved check results",
		Long: `Report renders the JSON output of a previous check run as a terminal
table or as a markdown report, without querying any registry.`,
		Example: `  licensebat check package-lock.json -f json -o results.json
  licensebat report results.json -f markdown -o report.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = resolveString(cmd, format, keyFormat, "format")
			showIgnored = resolveBool(cmd, showIgnored, keyShowIgnored, "show-ignored")
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			if format == pipeline.FormatJSON {
				return errs.New(errs.ErrCodeInvalidFormat, "report renders text or markdown; the input already is JSON")
			}

			recs, err := lbio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("imported results", "file", args[0], "records", len(recs))

			res := &pipeline.Result{Dependencies: recs}
			return c.writeReport(cmd.OutOrStdout(), output, format, res, hideInvalid, showIgnored)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text, markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&hideInvalid, "hide-invalid", false, "leave invalid dependencies out of the report")
	cmd.Flags().BoolVar(&showIgnored, "show-ignored", false, "list ignored dependencies in text output")

	return cmd
}
