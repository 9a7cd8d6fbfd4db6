package cli

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/assetgrid/pkg/export"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
)

type buildOpts struct {
	render renderOpts
	export exportOpts
}

type buildResult struct {
	render *pipeline.Result
	paths  []string
	report *export.Report
}

// buildCommand runs render and export concurrently.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the grid chart and export the media catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := newSpinnerWithContext(cmd.Context(), "Building assets...")
			spinner.Start()
			res, err := c.runBuild(cmd.Context(), opts, cmd.OutOrStdout())
			spinner.Stop()
			if err != nil {
				return err
			}
			printBuild(res)
			return nil
		},
	}

	opts.render.renderFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.render.output, "output", "o", "", "output directory for every file")
	cmd.Flags().StringVar(&opts.export.document, "catalog", "", "media catalog file (YAML or JSON)")

	return cmd
}

// runBuild renders and exports in parallel. The exporter's console text is
// buffered and written to w once both have finished.
func (c *CLI) runBuild(ctx context.Context, opts buildOpts, w io.Writer) (*buildResult, error) {
	opts.export.output = opts.render.output

	var (
		res     buildResult
		summary bytes.Buffer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.render, res.paths, err = c.runRender(gctx, opts.render)
		return err
	})
	g.Go(func() error {
		var err error
		res.report, err = c.runExport(gctx, opts.export, &summary)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if _, err := w.Write(summary.Bytes()); err != nil {
		return nil, err
	}
	return &res, nil
}

func printBuild(res *buildResult) {
	printSuccess("Build complete")
	for _, p := range res.paths {
		printFile(p)
	}
	printFile(res.report.Path)
	printStats(res.render.Stats.Categories, res.render.Stats.Assets, res.render.CacheInfo.RenderHit)
}
