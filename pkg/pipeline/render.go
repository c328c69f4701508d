package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/render"
	"github.com/matzehuels/prismaflow/pkg/render/overlay"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// Decorate applies the SVG overlays to Graphviz output.
//
// Rail labels are always drawn since the rail boxes carry no text of their
// own. Hyperlinks are added only for interactive renders; the returned
// warnings name the boxes that had no URL.
func Decorate(svg []byte, d *diagram.Diagram, p variant.Params, urls flow.URLs, opts Options) ([]byte, []*errors.UnresolvedURLWarning) {
	svg = overlay.Labels(svg, p, d.RailLabels(), opts.Style)
	if !opts.Interactive {
		return svg, nil
	}
	return overlay.Links(svg, p, urls)
}

// Export rasterizes a decorated SVG.
func Export(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	case FormatPNG:
		return render.ToPNG(ctx, svg, scale)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
