package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/grid"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Title labels the root node. Empty omits the root.
	Title string

	// Detailed adds description and usage lines to asset labels.
	Detailed bool

	// Params supplies category colours. Zero uses the defaults.
	Params grid.Params
}

// ToDOT converts categories to Graphviz DOT format.
func ToDOT(cats []catalog.Category, opts Options) string {
	p := opts.Params.WithDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	if opts.Title != "" {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=\"\", fontsize=16];\n", "root", opts.Title)
	}

	for i, cat := range cats {
		catID := fmt.Sprintf("cat%d", i)
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled\", fillcolor=%q, penwidth=2];\n",
			catID, cat.Name, fillFor(p, cat.Name, i))
		if opts.Title != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", "root", catID)
		}
		for j, a := range cat.Assets {
			assetID := fmt.Sprintf("cat%d_%d", i, j)
			fmt.Fprintf(&buf, "  %q [label=%q, tooltip=%q];\n", assetID, fmtLabel(a, opts.Detailed), a.Usage)
			fmt.Fprintf(&buf, "  %q -> %q;\n", catID, assetID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(a catalog.Asset, detailed bool) string {
	if !detailed {
		return a.File
	}
	return strings.Join([]string{a.File, a.Description, a.Usage}, "\n")
}

// fillFor picks the same fill the grid chart uses for the row.
func fillFor(p grid.Params, name string, i int) string {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	return p.Palette[i%len(p.Palette)]
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the SVG scales like the grid output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
