package diagram

import (
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// Role classifies a node for styling.
type Role string

const (
	RoleHeader Role = "header" // grey arm header (previous studies, other methods)
	RoleTitle  Role = "title"  // highlighted databases and registers header
	RoleBox    Role = "box"
	RoleRail   Role = "rail"
	RoleCorner Role = "corner" // zero-size bend point
)

// Point is a position in layout inches.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one positioned diagram node.
type Node struct {
	ID         flow.NodeID  `json:"id"`
	Box        flow.BoxName `json:"box"`
	Role       Role         `json:"role"`
	Label      string       `json:"label"`
	Pos        Point        `json:"pos"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Shape      string       `json:"shape"`
	Style      string       `json:"style"`
	FillColour string       `json:"fill_colour,omitempty"`
	Colour     string       `json:"colour,omitempty"`
	Tooltip    string       `json:"tooltip,omitempty"`
}

// Edge is one directed diagram edge.
type Edge struct {
	From         flow.NodeID `json:"from"`
	To           flow.NodeID `json:"to"`
	Invisible    bool        `json:"invisible,omitempty"`
	Head         string      `json:"head"`
	Tail         string      `json:"tail"`
	Colour       string      `json:"colour"`
	NoConstraint bool        `json:"no_constraint,omitempty"`
}

// Subgraph groups the nodes of one arm.
type Subgraph struct {
	Name  string        `json:"name"`
	Nodes []flow.NodeID `json:"nodes"`
}

// Diagram is the assembled, not yet serialized, flow diagram.
type Diagram struct {
	Kind       variant.Kind    `json:"-"`
	Variant    string          `json:"variant"`
	Nodes      []Node          `json:"nodes"`
	Edges      []Edge          `json:"edges"`
	RankGroups [][]flow.NodeID `json:"rank_groups"`
	Subgraphs  []Subgraph      `json:"subgraphs"`
}

// Node returns the node with the given id.
func (d *Diagram) Node(id flow.NodeID) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Has reports whether id is part of the diagram.
func (d *Diagram) Has(id flow.NodeID) bool {
	_, ok := d.Node(id)
	return ok
}
