package dot

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/flow"
)

// Emit converts an assembled diagram to Graphviz DOT source.
func Emit(d *diagram.Diagram, style flow.Style) string {
	style = style.WithDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph prisma20 {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, fixedsize=true, fontname=%s, fontsize=%s];\n",
		quote(style.Font), num(style.FontSize))
	fmt.Fprintf(&buf, "  edge [color=%s];\n", quote(style.ArrowColour))

	for _, sg := range d.Subgraphs {
		fmt.Fprintf(&buf, "\n  subgraph arm_%s {\n", sg.Name)
		for _, id := range sg.Nodes {
			n, ok := d.Node(id)
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "    %s [%s];\n", quote(string(n.ID)), strings.Join(nodeAttrs(n, style), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(string(e.From)), quote(string(e.To)), strings.Join(edgeAttrs(e), ", "))
	}

	if len(d.RankGroups) > 0 {
		buf.WriteString("\n")
	}
	for _, g := range d.RankGroups {
		buf.WriteString("  {rank=same;")
		for _, id := range g {
			fmt.Fprintf(&buf, " %s;", quote(string(id)))
		}
		buf.WriteString("}\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n diagram.Node, style flow.Style) []string {
	label := n.Label
	if n.Role == diagram.RoleRail || n.Role == diagram.RoleCorner {
		// Rail texts are drawn rotated by the overlay.
		label = ""
	}
	attrs := []string{
		"id=" + quote(string(n.Box)),
		"label=" + quote(label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Pos.X, n.Pos.Y),
		"width=" + num(n.Width),
		"height=" + num(n.Height),
	}
	if n.Shape != "box" {
		attrs = append(attrs, "shape="+n.Shape)
	}
	attrs = append(attrs, "style="+quote(n.Style))
	if n.FillColour != "" {
		attrs = append(attrs, "fillcolor="+quote(n.FillColour))
	}
	if n.Colour != "" {
		attrs = append(attrs, "color="+quote(n.Colour))
	}
	if n.Role == diagram.RoleTitle {
		attrs = append(attrs, "fontsize="+num(style.FontSize+2))
	}
	if n.Role != diagram.RoleCorner {
		// A blank tooltip stops Graphviz from repeating the label on hover.
		tip := n.Tooltip
		if tip == "" {
			tip = " "
		}
		attrs = append(attrs, "tooltip="+quote(tip))
	}
	return attrs
}

func edgeAttrs(e diagram.Edge) []string {
	if e.Invisible {
		return []string{"style=invis", "arrowhead=none", "arrowtail=none"}
	}
	attrs := []string{
		"color=" + quote(e.Colour),
		"arrowhead=" + e.Head,
		"arrowtail=" + e.Tail,
		"dir=both",
	}
	if e.NoConstraint {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

// quote writes s as a DOT double-quoted string. Non-ASCII text is kept
// verbatim since DOT has no \u escapes; newlines become centred line breaks.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
