package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/assetgrid/internal/server"
	"github.com/matzehuels/assetgrid/internal/watch"
)

type serveOpts struct {
	renderFlags
	document string
	addr     string
	watch    bool
}

// serveCommand starts the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the asset grid and catalog over HTTP",
		Long: `Serve the rendered chart and the media catalog:

  /             interactive HTML preview
  /grid.svg     vector chart
  /grid.png     raster chart (?scale=2)
  /graph.svg    category tree
  /layout.json  computed layout
  /catalog.json exported media catalog
  /api/assets   asset records (/api/assets/{section} to filter)
  /healthz      liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	opts.renderFlags.register(cmd)
	cmd.Flags().StringVar(&opts.document, "catalog", "", "media catalog file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload catalog files when they change")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cats, err := c.loadGrid(opts.grid)
	if err != nil {
		return err
	}
	doc, err := c.loadDocument(opts.document)
	if err != nil {
		return err
	}
	popts, err := c.options(opts.renderFlags)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	addr := opts.addr
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	srv := server.New(runner, popts, cats, doc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(gctx, addr) })

	if opts.watch {
		gridPath, docPath := c.catalogPaths(opts.grid, opts.document)
		files := nonEmpty(gridPath, docPath)
		if len(files) == 0 {
			printWarning("--watch ignored: no catalog files given")
		} else {
			w, err := watch.New(files, c.Config.Watch.Debounce, func(ctx context.Context, changed []string) error {
				newCats, newDoc, err := c.reloadCatalogs(changed, gridPath, docPath)
				if err != nil {
					return err
				}
				srv.SetCatalog(newCats, newDoc)
				printInfo("Reloaded %d file(s)", len(changed))
				return nil
			}, logger)
			if err != nil {
				return err
			}
			g.Go(func() error { return w.Run(gctx) })
		}
	}

	printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
	printDetail("Press Ctrl+C to stop")
	return g.Wait()
}
