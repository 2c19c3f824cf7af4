package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensebat/pkg/deps/collectors"
	"github.com/matzehuels/licensebat/pkg/integrations"
)

// collectorsCommand lists the supported lockfiles.
func (c *CLI) collectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collectors",
		Short: "List supported lockfiles",
		Long:  `Collectors lists every registered collector in selection order, with the lockfile name it handles.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := collectors.New(integrations.NewClient(nil), c.registries)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOCKFILE")
			for _, col := range cs {
				fmt.Fprintf(w, "%s\t%s\n", col.Name(), col.DependencyFilename())
			}
			return w.Flush()
		},
	}
}
