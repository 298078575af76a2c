package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/npillmayer/vstyle/markdbg"
)

func (c *CLI) dotCommand() *cobra.Command {
	var in inputFlags
	var out string
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Write the referer graph of marks in GraphViz format",
		Example: `  vstyle dot --spec bars.yaml | dot -Tsvg > marks.svg
  vstyle dot -s bars.yaml -o marks.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(c.Logger, in)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := markdbg.ToGraphViz(ws.registry, w); err != nil {
				return err
			}
			if out != "" {
				c.Logger.Info("written", "path", out, "marks", ws.registry.Len())
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
