package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/pkg/store/mongostore"
)

type publishOpts struct {
	document   string
	uri        string
	database   string
	collection string
	dryRun     bool
}

// publishCommand upserts the media catalog's asset records into MongoDB.
func (c *CLI) publishCommand() *cobra.Command {
	var opts publishOpts

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish catalog records to MongoDB",
		Long: `Upsert every asset record of the media catalog into a MongoDB collection,
keyed by section and entry name. All records of one run share a batch id.`,
		Example: `  assetgrid publish --uri mongodb://localhost:27017
  assetgrid publish --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.document, "catalog", "", "media catalog file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.uri, "uri", "", "MongoDB connection string (default from config)")
	cmd.Flags().StringVar(&opts.database, "database", "", "database name (default from config)")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "collection name (default from config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list the records without connecting")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, opts publishOpts) error {
	logger := loggerFromContext(ctx)
	cfg := c.Config.Mongo
	if opts.uri != "" {
		cfg.URI = opts.uri
	}
	if opts.database != "" {
		cfg.Database = opts.database
	}
	if opts.collection != "" {
		cfg.Collection = opts.collection
	}

	doc, err := c.loadDocument(opts.document)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	if opts.dryRun {
		docs := mongostore.Documents(doc, "dry-run", time.Now())
		printInfo("Would publish %d records to %s.%s", len(docs), cfg.Database, cfg.Collection)
		for _, d := range docs {
			printDetail("%s/%s  %s", d.Section, d.Name, d.File)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Publishing to MongoDB...")
	spinner.Start()

	store, err := mongostore.Connect(ctx, cfg.URI, cfg.Database, cfg.Collection)
	if err != nil {
		spinner.StopWithError("Connection failed")
		return err
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		spinner.StopWithError("Index creation failed")
		return err
	}
	res, err := store.Publish(ctx, doc)
	if err != nil {
		spinner.StopWithError("Publish failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Published %d records", res.Records))

	logger.Debug("publish complete", "batch", res.BatchID, "inserted", res.Inserted, "updated", res.Updated)
	printKeyValue("Batch", res.BatchID)
	printKeyValue("Inserted", fmt.Sprint(res.Inserted))
	printKeyValue("Updated", fmt.Sprint(res.Updated))
	printKeyValue("Collection", cfg.Database+"."+cfg.Collection)
	return nil
}
