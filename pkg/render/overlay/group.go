package overlay

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// group locates one node group in a rendered SVG. Offsets index the SVG
// bytes: start..end spans the whole element, open..close the inner content.
type group struct {
	start, open, close, end int
}

func (g group) content(svg []byte) []byte { return svg[g.open:g.close] }

// findGroup returns the `<g id="id" class="node">` element of svg.
// Graphviz nests an anchor group inside nodes that carry a tooltip, so the
// closing tag is found by depth.
func findGroup(svg []byte, id string) (group, bool) {
	tag := []byte(fmt.Sprintf(`<g id="%s" class="node">`, escapeXML(id)))
	start := bytes.Index(svg, tag)
	if start < 0 {
		return group{}, false
	}
	open := start + len(tag)

	depth := 1
	for i := open; i < len(svg); {
		next := bytes.IndexByte(svg[i:], '<')
		if next < 0 {
			break
		}
		i += next
		switch {
		case bytes.HasPrefix(svg[i:], []byte("</g>")):
			depth--
			if depth == 0 {
				return group{start: start, open: open, close: i, end: i + len("</g>")}, true
			}
			i += len("</g>")
		case bytes.HasPrefix(svg[i:], []byte("<g ")) || bytes.HasPrefix(svg[i:], []byte("<g>")):
			depth++
			i += 2
		default:
			i++
		}
	}
	return group{}, false
}

// splice replaces the inner content of g.
func splice(svg []byte, g group, content []byte) []byte {
	out := make([]byte, 0, len(svg)-(g.close-g.open)+len(content))
	out = append(out, svg[:g.open]...)
	out = append(out, content...)
	out = append(out, svg[g.close:]...)
	return out
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
