package overlay

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

const linkClass = "box-link"

// Links wraps the content of every active box that has a URL in an anchor
// opening the target in a new tab.
//
// Content boxes without a URL are left alone and reported as warnings; the
// corner points A and B are linked when mapped but never warned about.
// Boxes missing from the SVG are skipped.
func Links(svg []byte, p variant.Params, urls flow.URLs) ([]byte, []*errors.UnresolvedURLWarning) {
	var warnings []*errors.UnresolvedURLWarning
	for _, id := range p.Nodes {
		box := id.Box()
		target, ok := urls.For(box)
		if !ok {
			if !id.Synthetic() {
				warnings = append(warnings, &errors.UnresolvedURLWarning{Box: string(box)})
			}
			continue
		}
		svg = wrapLink(svg, string(box), target)
	}
	return svg, warnings
}

func wrapLink(svg []byte, box, target string) []byte {
	g, ok := findGroup(svg, box)
	if !ok {
		return svg
	}
	inner := g.content(svg)
	if bytes.Contains(inner, []byte(`class="`+linkClass+`"`)) {
		return svg
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<a class="%s" href="%s" target="_blank">`, linkClass, escapeXML(target))
	buf.Write(inner)
	buf.WriteString("</a>\n")
	return splice(svg, g, buf.Bytes())
}
