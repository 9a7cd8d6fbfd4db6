package cli

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/internal/watch"
	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/errors"
)

// watchCommand rebuilds on every catalog change.
func (c *CLI) watchCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever a catalog file changes",
		Long: `Run a build, then watch the grid and media catalog files and rebuild
after every change. At least one catalog file must be given, either by flag
or in the [catalog] section of the config file.`,
		Example: `  assetgrid watch --grid grid.yaml --catalog media.yaml -o public`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), opts)
		},
	}

	opts.render.renderFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.render.output, "output", "o", "", "output directory for every file")
	cmd.Flags().StringVar(&opts.export.document, "catalog", "", "media catalog file (YAML or JSON)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts buildOpts) error {
	logger := loggerFromContext(ctx)

	gridPath, docPath := c.catalogPaths(opts.render.grid, opts.export.document)
	files := nonEmpty(gridPath, docPath)
	if len(files) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to watch: pass --grid or --catalog")
	}
	opts.render.grid, opts.export.document = gridPath, docPath

	rebuild := c.rebuildFunc(opts)
	w, err := watch.New(files, c.Config.Watch.Debounce, rebuild, logger)
	if err != nil {
		return err
	}
	if err := rebuild(ctx, nil); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		printError("%s", errors.UserMessage(err))
	}
	printDetail("Watching %d file(s), press Ctrl+C to stop", len(files))
	return w.Run(ctx)
}

// rebuildFunc runs one build per batch of changes. A failed build is returned
// to the watcher, which logs it and keeps watching.
func (c *CLI) rebuildFunc(opts buildOpts) watch.Func {
	return func(ctx context.Context, changed []string) error {
		for _, f := range changed {
			printInfo("Changed %s", f)
		}
		res, err := c.runBuild(ctx, opts, stdout)
		if err != nil {
			return err
		}
		printBuild(res)
		return nil
	}
}

// catalogPaths resolves flag values against the config.
func (c *CLI) catalogPaths(gridFlag, docFlag string) (string, string) {
	if gridFlag == "" {
		gridFlag = c.Config.Catalog.Grid
	}
	if docFlag == "" {
		docFlag = c.Config.Catalog.Document
	}
	return gridFlag, docFlag
}

// reloadCatalogs reloads whichever of the two catalogs appear in changed.
// Catalogs that did not change are returned as nil.
func (c *CLI) reloadCatalogs(changed []string, gridPath, docPath string) ([]catalog.Category, *catalog.Document, error) {
	var (
		cats []catalog.Category
		doc  *catalog.Document
		err  error
	)
	if gridPath != "" && containsPath(changed, gridPath) {
		if cats, err = catalog.LoadGrid(gridPath); err != nil {
			return nil, nil, err
		}
	}
	if docPath != "" && containsPath(changed, docPath) {
		if doc, err = catalog.LoadDocument(docPath); err != nil {
			return nil, nil, err
		}
	}
	return cats, doc, nil
}

func containsPath(paths []string, p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	return slices.Contains(paths, abs)
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
