// Package dot serializes an assembled flow diagram to Graphviz DOT and
// renders it to SVG.
//
// # Usage
//
//	src := dot.Emit(d, style)
//	svg, err := dot.RenderSVG(ctx, src)
//
// # DOT Format
//
// [Emit] writes a `digraph prisma20` for the neato engine with orthogonal
// splines. Every node carries a pinned `pos="x,y!"`, a fixed size and an
// `id` equal to its box name, so the rendered SVG groups can be found again
// by the overlay passes. Nodes are grouped by arm in `subgraph arm_*` blocks
// and template rows are written as `{rank=same; ...}` groups.
//
// Output is byte-deterministic: nodes, edges and groups are written in
// template order and never read from maps.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package and
// requires librsvg (rsvg-convert).
package dot
