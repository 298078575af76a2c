package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npillmayer/vstyle/markdbg"
)

func (c *CLI) dumpCommand() *cobra.Command {
	var in inputFlags
	var marks []string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the state style tables of marks",
		Long: `Dump builds the marks of a mark spec document and prints, for every state,
the style each attribute holds together with the cascade level that wrote it.`,
		Example: `  vstyle dump --spec bars.yaml
  vstyle dump -s bars.yaml --mark bar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(c.Logger, in)
			if err != nil {
				return err
			}
			selected, err := ws.selectMarks(marks)
			if err != nil {
				return err
			}
			for _, m := range selected {
				fmt.Fprint(cmd.OutOrStdout(), markdbg.Dump(m))
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringSliceVarP(&marks, "mark", "m", nil, "marks to dump (default all)")
	return cmd
}
