package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	renderFlags
	output   string // output directory
	basename string // file name stem
}

// renderCommand creates the render command. Without flags it writes
// asset_grid.png and asset_grid.svg to the current directory.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the asset grid chart",
		Long: `Render the asset grid chart: one row per category, one box per asset.

By default the built-in catalog is drawn to asset_grid.png and asset_grid.svg.
Additional formats: html (interactive preview), json (computed layout) and
graph (category tree through Graphviz).`,
		Example: `  assetgrid render
  assetgrid render -f png,svg,html --scale 2 -o public/images
  assetgrid render --grid catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, paths, err := c.runRender(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printSuccess("Rendered %s", strings.Join(opts.formatsOf(res), ", "))
			for _, p := range paths {
				printFile(p)
			}
			printStats(res.Stats.Categories, res.Stats.Assets, res.CacheInfo.RenderHit)
			return nil
		},
	}

	opts.renderFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, \".\")")
	cmd.Flags().StringVar(&opts.basename, "basename", "", "output file name stem (default \""+pipeline.DefaultBaseName+"\")")

	return cmd
}

func (o renderOpts) formatsOf(res *pipeline.Result) []string {
	var out []string
	for _, f := range pipeline.AllFormats {
		if _, ok := res.Artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// runRender loads the grid catalog, renders it and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) (*pipeline.Result, []string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	dir := opts.output
	if dir == "" {
		dir = c.Config.Output.Dir
	}
	base := opts.basename
	if base == "" {
		base = c.Config.Output.GridBasename
	}
	if err := errors.ValidateOutputName(base); err != nil {
		return nil, nil, err
	}
	if err := errors.ValidatePath(dir); err != nil {
		return nil, nil, err
	}

	cats, err := c.loadGrid(opts.grid)
	if err != nil {
		return nil, nil, err
	}
	popts, err := c.options(opts.renderFlags)
	if err != nil {
		return nil, nil, err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, cats, popts)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render asset grid")
	}

	paths, err := pipeline.WriteArtifacts(dir, base, popts.Formats, res.Artifacts)
	if err != nil {
		return res, paths, err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))
	return res, paths, nil
}
