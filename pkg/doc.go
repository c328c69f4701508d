// Package pkg provides the core libraries for prismaflow, a PRISMA 2020 flow
// diagram generator.
//
// # Overview
//
// A flow diagram is a fixed template of 22 boxes and two corner nodes laid
// out on a grid. The optional previous studies and other methods arms select
// one of four layout variants (PP, PF, FP, FF). The pkg directory is
// organized into these areas:
//
//  1. [flow] - Domain vocabulary (nodes, boxes, metrics, input data, style)
//  2. [variant] and [diagram] - Variant tables and diagram assembly
//  3. [render] - DOT emission, Graphviz layout, SVG overlays and export
//  4. [pipeline] - Orchestration (assemble, emit, layout, decorate, export)
//  5. [io], [cache], [observability] - Input parsing, caching and hooks
//
// # Architecture
//
// The typical data flow:
//
//	CSV or JSON input
//	         ↓
//	    [io] package (parse and validate)
//	         ↓
//	    [variant] + [diagram] packages (positions, edges, cell text)
//	         ↓
//	    [render/dot] package (DOT source, Graphviz SVG)
//	         ↓
//	    [render/overlay] package (rail labels, hyperlinks)
//	         ↓
//	    SVG/PDF/PNG/DOT/JSON output
//
// # Quick Start
//
//	in, _ := io.ImportCSV("PRISMA.csv")
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := r.Execute(ctx, in, pipeline.Options{
//	    Previous: true,
//	    Other:    true,
//	    Formats:  []string{"svg", "pdf"},
//	})
//
// Or assemble by hand:
//
//	p := variant.Select(true, false)
//	d, err := diagram.Assemble(in.Data.WithDefaultLabels(), in.Tooltips, p, flow.DefaultStyle())
//	src := dot.Emit(d, flow.DefaultStyle())
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip in-process Graphviz renders
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/flow
// [variant]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/variant
// [diagram]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/render/dot
// [render/overlay]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/render/overlay
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/prismaflow/pkg/observability
package pkg
