package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/export"
)

type exportOpts struct {
	document string
	output   string
	filename string
	exclude  []string
}

// exportCommand creates the export command. Without flags it writes
// misjustice_media_assets_catalog.json and prints the summary.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the media catalog as JSON",
		Long: `Write the media asset catalog to JSON, then print a per-section summary
of the assets, the developer checklist and the file summary.`,
		Example: `  assetgrid export
  assetgrid export --catalog media.yaml -o public/data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.runExport(cmd.Context(), opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&opts.document, "catalog", "", "media catalog file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config, \".\")")
	cmd.Flags().StringVar(&opts.filename, "filename", "", "catalog file name (default \""+export.DefaultFilename+"\")")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "sections left out of the summary")

	return cmd
}

// runExport loads the media document and exports it, printing to w.
func (c *CLI) runExport(ctx context.Context, opts exportOpts, w io.Writer) (*export.Report, error) {
	logger := loggerFromContext(ctx)

	doc, err := c.loadDocument(opts.document)
	if err != nil {
		return nil, err
	}

	dir := opts.output
	if dir == "" {
		dir = c.Config.Output.Dir
	}
	name := opts.filename
	if name == "" {
		name = c.Config.Output.CatalogFilename
	}
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := errors.ValidateOutputName(name); err != nil {
		return nil, err
	}

	exclude := opts.exclude
	if exclude == nil {
		exclude = c.Config.Export.Exclude
	}

	ex := export.Exporter{
		Path:    filepath.Join(dir, name),
		Exclude: exclude,
		Out:     w,
	}
	rep, err := ex.Run(ctx, doc)
	if err != nil {
		return nil, err
	}
	logger.Debug("exported catalog", "path", rep.Path, "bytes", rep.Bytes, "assets", rep.TotalAssets)
	return rep, nil
}
