// Package render converts rendered flow diagram SVG to PDF and PNG.
//
// # Overview
//
// The render pipeline for a flow diagram is:
//
//	src := dot.Emit(d, style)            // pkg/render/dot
//	svg, err := dot.RenderSVG(ctx, src)  // Graphviz, in process
//	svg = overlay.Labels(svg, ...)       // pkg/render/overlay
//	svg, warnings := overlay.Links(svg, ...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). Each call is
// bounded by the context deadline, or [DefaultTimeout] when the context has
// none. Failures are returned as *errors.RasterizationError and are never
// retried.
//
// [dot]: github.com/matzehuels/prismaflow/pkg/render/dot
// [overlay]: github.com/matzehuels/prismaflow/pkg/render/overlay
package render
