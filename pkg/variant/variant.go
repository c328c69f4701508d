package variant

import (
	"slices"

	"github.com/matzehuels/prismaflow/pkg/flow"
)

// Kind names a topology variant. The first letter stands for the previous
// studies arm, the second for the other methods arm; P means present and F
// means absent.
type Kind int

const (
	PP Kind = iota
	FP
	PF
	FF
)

// String returns the two-letter variant name.
func (k Kind) String() string {
	switch k {
	case PP:
		return "PP"
	case FP:
		return "FP"
	case PF:
		return "PF"
	case FF:
		return "FF"
	}
	return "unknown"
}

// Previous reports whether the variant includes the previous studies arm.
func (k Kind) Previous() bool { return k == PP || k == PF }

// Other reports whether the variant includes the other methods arm.
func (k Kind) Other() bool { return k == PP || k == FP }

// Kinds lists all variants.
var Kinds = []Kind{PP, FP, PF, FF}

// KindOf maps the two flags to a variant.
func KindOf(previous, other bool) Kind {
	switch {
	case previous && other:
		return PP
	case other:
		return FP
	case previous:
		return PF
	default:
		return FF
	}
}

// Edge is a directed node pair. Styling lives in the diagram package.
type Edge struct {
	From flow.NodeID
	To   flow.NodeID
}

// LabelCoords locates the centres of the three rail bars in rendered SVG
// user units. They are calibration values for Graphviz output at 72 points
// per inch and are used only when the rail polygons cannot be measured.
type LabelCoords struct {
	X              float64
	Identification float64
	Screening      float64
	Included       float64
}

// Params is the complete parameter bundle of one variant.
type Params struct {
	Kind Kind

	// Grid origin shift applied to every node except the rail bars' x.
	XOffset float64
	YOffset float64

	// HAdj1 extends the included rail bar; HAdj2 moves its centre down so
	// the bar also spans the total row.
	HAdj1 float64
	HAdj2 float64

	Nodes  []flow.NodeID
	Edges  []Edge
	Labels LabelCoords
}

const (
	compactShiftX = -3.5
	compactShiftY = -1.5
	totalRowHAdj1 = 1.5
	totalRowHAdj2 = 0.75
)

var (
	previousNodes = []flow.NodeID{flow.Node1, flow.Node2, flow.Node19, flow.NodeA}
	otherNodes    = []flow.NodeID{
		flow.Node13, flow.Node14, flow.Node15, flow.Node16, flow.Node17, flow.Node18, flow.NodeB,
	}
)

// allEdges is the edge set of PP in emission order.
var allEdges = []Edge{
	{flow.Node1, flow.Node2},
	{flow.Node2, flow.NodeA},
	{flow.NodeA, flow.Node19},
	{flow.Node4, flow.Node5},
	{flow.Node4, flow.Node6},
	{flow.Node6, flow.Node7},
	{flow.Node6, flow.Node8},
	{flow.Node8, flow.Node9},
	{flow.Node8, flow.Node10},
	{flow.Node10, flow.Node11},
	{flow.Node10, flow.Node12},
	{flow.Node12, flow.Node19},
	{flow.Node5, flow.Node7},
	{flow.Node7, flow.Node9},
	{flow.Node9, flow.Node11},
	{flow.Node14, flow.Node15},
	{flow.Node15, flow.Node16},
	{flow.Node15, flow.Node17},
	{flow.Node17, flow.Node18},
	{flow.Node17, flow.NodeB},
	{flow.NodeB, flow.Node12},
}

// labelCoords is the fallback rail label calibration per variant. The other
// methods arm sits right of the main arm and never changes rail heights, so
// variants sharing the previous studies flag share coordinates.
var labelCoords = map[Kind]LabelCoords{
	PP: {X: 14, Identification: -590.4, Screening: -374.4, Included: -104.4},
	PF: {X: 14, Identification: -590.4, Screening: -374.4, Included: -104.4},
	FP: {X: 14, Identification: -482.4, Screening: -266.4, Included: -50.4},
	FF: {X: 14, Identification: -482.4, Screening: -266.4, Included: -50.4},
}

// Select returns the parameters of the variant for the two flags.
func Select(previous, other bool) Params {
	kind := KindOf(previous, other)
	p := Params{
		Kind:   kind,
		Labels: labelCoords[kind],
	}
	if previous {
		p.HAdj1 = totalRowHAdj1
		p.HAdj2 = totalRowHAdj2
	} else {
		p.XOffset = compactShiftX
		p.YOffset = compactShiftY
	}

	for _, id := range flow.AllNodes {
		if !previous && slices.Contains(previousNodes, id) {
			continue
		}
		if !other && slices.Contains(otherNodes, id) {
			continue
		}
		p.Nodes = append(p.Nodes, id)
	}
	for _, e := range allEdges {
		if p.Has(e.From) && p.Has(e.To) {
			p.Edges = append(p.Edges, e)
		}
	}
	return p
}

// Has reports whether id is active in the variant.
func (p Params) Has(id flow.NodeID) bool {
	return slices.Contains(p.Nodes, id)
}

// Previous reports whether the previous studies arm is active.
func (p Params) Previous() bool { return p.Kind.Previous() }

// Other reports whether the other methods arm is active.
func (p Params) Other() bool { return p.Kind.Other() }
