package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
)

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	output  string
	geom    layout.Config
	noCache bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{geom: layout.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "layout <records>",
		Short: "Position tracking records and write the layout as JSON",
		Long: `Build the task tree from tracking records and compute box positions.

The records file may be JSON, YAML or TOML. The result is written to
<name>.layout.json unless -o is given, and can be rendered later with
'tracktree render'.`,
		Example: `  tracktree layout tasks.json
  tracktree layout tasks.yaml -o out.layout.json --node-width 400`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	addLayoutFlags(cmd, &opts.geom)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts layoutOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	records, err := tracking.Import(input)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d records from %s", len(records), input))

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.Config.PipelineOptions()
	popts.Layout = applyChangedLayoutFlags(cmd, opts.geom, c.Config.Layout)

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	l, cached, err := runner.ComputeLayout(ctx, records, popts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}

	out := opts.output
	if out == "" {
		out = stripExt(input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Layout computed")
	printFile(out)
	printStats(len(l.Nodes), len(l.Dropped), cached)
	printDropped(l.Dropped)
	printNewline()
	printNextStep("Render it", "tracktree render "+out)
	return nil
}
