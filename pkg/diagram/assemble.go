package diagram

import (
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// RailFill is the fill colour of the three rail bars.
const RailFill = "LightSteelBlue2"

// rankGroups lists the template rows that must render side by side.
var rankGroups = [][]flow.NodeID{
	{flow.Node1, flow.Node3, flow.Node13},
	{flow.Node2, flow.Node4, flow.Node5, flow.Node14},
	{flow.Node6, flow.Node7},
	{flow.Node8, flow.Node9, flow.Node15, flow.Node16},
	{flow.Node10, flow.Node11, flow.Node17, flow.Node18},
	{flow.Node12, flow.NodeB},
	{flow.NodeA, flow.Node19},
}

var arms = []Subgraph{
	{Name: "previous", Nodes: []flow.NodeID{flow.Node1, flow.Node2, flow.NodeA, flow.Node19}},
	{Name: "databases", Nodes: []flow.NodeID{
		flow.Node3, flow.Node4, flow.Node5, flow.Node6, flow.Node7,
		flow.Node8, flow.Node9, flow.Node10, flow.Node11, flow.Node12,
	}},
	{Name: "other", Nodes: []flow.NodeID{
		flow.Node13, flow.Node14, flow.Node15, flow.Node16, flow.Node17, flow.Node18, flow.NodeB,
	}},
	{Name: "rails", Nodes: []flow.NodeID{flow.Node20, flow.Node21, flow.Node22}},
}

// Assemble builds the diagram of variant p from data.
//
// Every active node's metrics are resolved before any node is built, so a
// missing count or label fails the whole call with the first offending
// metric in node order. Style only affects colours, fonts and arrow shapes;
// ids, positions and rank groups depend on p alone.
func Assemble(data flow.Data, tips flow.Tooltips, p variant.Params, style flow.Style) (*Diagram, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	labels := make(map[flow.NodeID]string, len(p.Nodes))
	for _, id := range p.Nodes {
		if id.Synthetic() {
			continue
		}
		s, err := content(id, data)
		if err != nil {
			return nil, err
		}
		labels[id] = s
	}

	d := &Diagram{
		Kind:    p.Kind,
		Variant: p.Kind.String(),
	}
	for _, id := range p.Nodes {
		d.Nodes = append(d.Nodes, buildNode(id, labels[id], tips.For(id), p, style))
	}
	for _, e := range p.Edges {
		d.Edges = append(d.Edges, buildEdge(e, style))
	}
	d.RankGroups = activeGroups(rankGroups, p)
	for _, arm := range arms {
		nodes := activeMembers(arm.Nodes, p)
		if len(nodes) == 0 {
			continue
		}
		d.Subgraphs = append(d.Subgraphs, Subgraph{Name: arm.Name, Nodes: nodes})
	}
	return d, nil
}

func buildNode(id flow.NodeID, label, tooltip string, p variant.Params, style flow.Style) Node {
	pos, w, h := place(id, p)
	n := Node{
		ID:      id,
		Box:     id.Box(),
		Label:   label,
		Pos:     pos,
		Width:   w,
		Height:  h,
		Shape:   "box",
		Style:   "filled",
		Colour:  style.MainColour,
		Tooltip: tooltip,
	}
	switch {
	case id.Synthetic():
		n.Role = RoleCorner
		n.Shape = "point"
		n.Style = "invis"
		n.Colour = style.ArrowColour
	case id.Rail():
		n.Role = RoleRail
		n.FillColour = RailFill
		n.Style = "rounded,filled"
	case id == flow.Node3:
		n.Role = RoleTitle
		n.FillColour = style.TitleColour
		n.Style = "rounded,filled"
	case id == flow.Node1 || id == flow.Node13:
		n.Role = RoleHeader
		n.FillColour = style.GreyBoxColour
		n.Style = "rounded,filled"
	default:
		n.Role = RoleBox
		n.FillColour = "white"
	}
	return n
}

func buildEdge(e variant.Edge, style flow.Style) Edge {
	out := Edge{
		From:   e.From,
		To:     e.To,
		Head:   style.ArrowHead,
		Tail:   style.ArrowTail,
		Colour: style.ArrowColour,
	}
	switch {
	case invisible(e):
		out.Invisible = true
		out.Head = "none"
		out.Tail = "none"
	case e.To.Synthetic():
		out.Head = "none"
	case e.From.Synthetic():
		out.NoConstraint = true
	}
	return out
}

// invisible reports the edges that only align the side columns.
func invisible(e variant.Edge) bool {
	switch e {
	case variant.Edge{From: flow.Node1, To: flow.Node2},
		variant.Edge{From: flow.Node5, To: flow.Node7},
		variant.Edge{From: flow.Node7, To: flow.Node9},
		variant.Edge{From: flow.Node9, To: flow.Node11}:
		return true
	}
	return false
}

func activeGroups(groups [][]flow.NodeID, p variant.Params) [][]flow.NodeID {
	var out [][]flow.NodeID
	for _, g := range groups {
		members := activeMembers(g, p)
		if len(members) > 1 {
			out = append(out, members)
		}
	}
	return out
}

func activeMembers(ids []flow.NodeID, p variant.Params) []flow.NodeID {
	var out []flow.NodeID
	for _, id := range ids {
		if p.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// RailLabels returns the texts of the identification, screening and
// included rails, in that order.
func (d *Diagram) RailLabels() [3]string {
	var out [3]string
	for i, id := range []flow.NodeID{flow.Node20, flow.Node21, flow.Node22} {
		if n, ok := d.Node(id); ok {
			out[i] = n.Label
		}
	}
	return out
}
