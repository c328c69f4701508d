// Package overlay decorates a rendered flow diagram SVG.
//
// Graphviz cannot rotate box labels and has no notion of per-box links that
// open in a new tab, so both are added after rendering, keyed by the node
// group ids the dot package writes (`<g id="box1" class="node">`):
//
//   - [Labels] draws the rotated "Identification", "Screening" and
//     "Included" texts on the three rail bars.
//   - [Links] wraps each box's content in `<a href="..." target="_blank">`.
//
// Both passes are idempotent: running them twice gives the same bytes as
// running them once. Every node is decorated independently, so the result
// never depends on map iteration order.
package overlay
