package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/pkg/catalog"
)

// browseCommand opens the interactive record browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		document string
		gridPath string
		useGrid  bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse catalog records in the terminal",
		Long: `Browse the media catalog's asset records in an interactive table.
Press enter on a record to see its full metadata. With --grid the grid
chart's catalog is shown instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []catalog.Record
			if useGrid || gridPath != "" {
				cats, err := c.loadGrid(gridPath)
				if err != nil {
					return err
				}
				records = gridRecords(cats)
			} else {
				doc, err := c.loadDocument(document)
				if err != nil {
					return err
				}
				records = doc.Records()
			}

			p := tea.NewProgram(NewRecordListModel(records), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&document, "catalog", "", "media catalog file (YAML or JSON)")
	cmd.Flags().StringVar(&gridPath, "grid-file", "", "grid catalog file (implies --grid)")
	cmd.Flags().BoolVar(&useGrid, "grid", false, "browse the grid chart catalog")

	return cmd
}

// gridRecords flattens grid categories into records, using the category
// name as the section.
func gridRecords(cats []catalog.Category) []catalog.Record {
	var out []catalog.Record
	for _, cat := range cats {
		for _, a := range cat.Assets {
			a.Category = cat.Name
			out = append(out, catalog.Record{Section: cat.Name, Asset: a})
		}
	}
	return out
}
