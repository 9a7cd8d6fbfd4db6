// Package pkg holds the libraries behind the assetgrid command.
//
// # Overview
//
// assetgrid documents the image assets of a static site in two ways: a grid
// chart with one row per category and one box per asset, and a JSON media
// catalog with a printed summary and implementation checklist.
//
//   - [catalog] - asset records, the grid catalog and the media document
//   - [grid] - chart layout in data coordinates
//   - [render] - SVG, PNG, HTML, JSON and Graphviz output
//   - [pipeline] - layout → render orchestration with caching
//   - [export] - catalog JSON and console summary
//   - [cache], [config], [errors], [observability] - infrastructure
//   - [store] - MongoDB publishing
//
// # Data Flow
//
//	catalog.DefaultGrid() ──→ grid.Build ──→ render/sink ──→ asset_grid.{png,svg}
//	catalog.DefaultDocument() ──→ export.Exporter ──→ catalog JSON + summary
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, catalog.DefaultGrid(), pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	paths, err := pipeline.WriteArtifacts(".", pipeline.DefaultBaseName,
//	    pipeline.DefaultFormats, res.Artifacts)
//
//	rep, err := export.Exporter{Out: os.Stdout}.Run(ctx, catalog.DefaultDocument())
package pkg
