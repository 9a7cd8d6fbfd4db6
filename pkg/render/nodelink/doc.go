// Package nodelink renders the catalog as a category/asset tree using Graphviz.
//
// [ToDOT] emits a left-to-right digraph with a root node for the chart title,
// one node per category and one leaf per asset. [RenderSVG] lays it out with
// the Graphviz engine compiled into go-graphviz, so no dot binary is needed.
//
//	dot := nodelink.ToDOT(cats, nodelink.Options{Title: "MIS Alliance Assets"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package nodelink
