// Package grid computes the asset grid chart layout.
//
// Categories become rows and assets become columns. [Build] turns a catalog
// into a [Layout] of data-space primitives (rectangles, text annotations and
// hover markers) bounded by fixed axis ranges; the render sinks project that
// layout onto a [Canvas] in pixel space.
//
// # Geometry
//
// With the default [Params]:
//
//   - category i is centred at y = 4 - 1.5*i
//   - asset j is centred at x = 1.5*j
//   - each asset box is 1.2 wide and 0.8 tall
//   - each category has a background band sized to the widest category
//   - the axes span x ∈ [-1, 4] and y ∈ [0.5, 5]
//
// Nothing is clipped to the axis ranges; rows beyond the range are still
// emitted.
package grid
