package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npillmayer/vstyle/mark"
)

type resolveOpts struct {
	in    inputFlags
	data  string
	marks []string
	state string
	attrs []string
	json  bool
}

func (c *CLI) resolveCommand() *cobra.Command {
	opts := &resolveOpts{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve attribute values of marks for a dataset",
		Long: `Resolve builds the marks of a mark spec document and prints the attribute
values they resolve to, for every datum of a JSON dataset, in a given state.`,
		Example: `  vstyle resolve --spec bars.yaml --data sales.json --state hover
  vstyle resolve -s bars.yaml -d sales.json --mark bar --attr fill,outerBorder --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, opts)
		},
	}
	opts.in.register(cmd)
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "dataset: a JSON array of objects")
	cmd.Flags().StringSliceVarP(&opts.marks, "mark", "m", nil, "marks to resolve (default all)")
	cmd.Flags().StringVar(&opts.state, "state", mark.StateNormal, "interaction state")
	cmd.Flags().StringSliceVarP(&opts.attrs, "attr", "a", nil, "attributes to resolve (default all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	return cmd
}

// resolved is the outcome for one mark and datum.
type resolved struct {
	Mark   string         `json:"mark"`
	Index  int            `json:"index"`
	Values map[string]any `json:"values"`
	attrs  []string
}

func (c *CLI) runResolve(cmd *cobra.Command, opts *resolveOpts) error {
	ws, err := loadWorkspace(c.Logger, opts.in)
	if err != nil {
		return err
	}
	data, err := loadData(opts.data)
	if err != nil {
		return err
	}
	marks, err := ws.selectMarks(opts.marks)
	if err != nil {
		return err
	}
	var results []resolved
	for _, m := range marks {
		if !m.Table().HasState(opts.state) {
			c.Logger.Warn("mark has no style for state, using normal", "mark", m.Name(), "state", opts.state)
		}
		enc, err := encoder(m, opts.state, opts.attrs)
		if err != nil {
			return fmt.Errorf("mark %s: %w", m.Name(), err)
		}
		attrs := enc.Attributes()
		for i, d := range data {
			results = append(results, resolved{Mark: m.Name(), Index: i, Values: enc.Apply(d, nil), attrs: attrs})
		}
		c.Logger.Debug("resolved", "mark", m.Name(), "state", opts.state, "data", len(data))
	}
	w := cmd.OutOrStdout()
	if opts.json {
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(results)
	}
	last := ""
	for _, r := range results {
		if r.Mark != last {
			printTitle(w, "%s (%s)", r.Mark, opts.state)
			last = r.Mark
		}
		printDetail(w, "datum #%d", r.Index)
		for _, attr := range r.attrs {
			printAttribute(w, attr, r.Values[attr])
		}
	}
	return nil
}

// encoder compiles the requested attributes of a mark, or all of them.
func encoder(m *mark.Mark, state string, attrs []string) (mark.Encoder, error) {
	if len(attrs) == 0 {
		return m.Encode(state)
	}
	enc := make(mark.Encoder, len(attrs))
	for _, attr := range attrs {
		f, err := m.ComputeAttribute(attr, state)
		if err != nil {
			return nil, err
		}
		enc[attr] = f
	}
	return enc, nil
}
