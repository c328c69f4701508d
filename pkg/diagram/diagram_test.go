package diagram

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/flow/flowtest"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

func assemble(t *testing.T, previous, other bool) *Diagram {
	t.Helper()
	d, err := Assemble(flowtest.Data(), flowtest.Tooltips(), variant.Select(previous, other), flow.DefaultStyle())
	if err != nil {
		t.Fatalf("Assemble(%v, %v) error = %v", previous, other, err)
	}
	return d
}

func TestAssembleNoDanglingEdges(t *testing.T) {
	for _, k := range variant.Kinds {
		t.Run(k.String(), func(t *testing.T) {
			d := assemble(t, k.Previous(), k.Other())
			if len(d.Nodes) == 0 || len(d.Edges) == 0 {
				t.Fatalf("empty diagram: %d nodes, %d edges", len(d.Nodes), len(d.Edges))
			}
			for _, e := range d.Edges {
				if !d.Has(e.From) || !d.Has(e.To) {
					t.Errorf("edge %s->%s references an absent node", e.From, e.To)
				}
			}
			for _, g := range d.RankGroups {
				if len(g) < 2 {
					t.Errorf("rank group %v has fewer than two members", g)
				}
				for _, id := range g {
					if !d.Has(id) {
						t.Errorf("rank group %v references absent node %s", g, id)
					}
				}
			}
		})
	}
}

func TestAssemblePPHasEveryNode(t *testing.T) {
	d := assemble(t, true, true)
	for _, id := range flow.AllNodes {
		if !d.Has(id) {
			t.Errorf("PP missing node %s", id)
		}
	}
	if len(d.Edges) != 21 {
		t.Errorf("PP has %d edges, want 21", len(d.Edges))
	}
	if len(d.RankGroups) != 7 {
		t.Errorf("PP has %d rank groups, want 7", len(d.RankGroups))
	}
}

func TestAssembleFFIsLinear(t *testing.T) {
	d := assemble(t, false, false)

	var ids []string
	for _, n := range d.Nodes {
		if !n.ID.Rail() {
			ids = append(ids, string(n.ID))
		}
	}
	want := "3 4 5 6 7 8 9 10 11 12"
	if got := strings.Join(ids, " "); got != want {
		t.Errorf("FF boxes = %q, want %q", got, want)
	}
	for _, e := range d.Edges {
		if e.NoConstraint || e.From.Synthetic() || e.To.Synthetic() {
			t.Errorf("FF has feedback edge %s->%s", e.From, e.To)
		}
	}
	want3 := [][]flow.NodeID{
		{flow.Node4, flow.Node5},
		{flow.Node6, flow.Node7},
		{flow.Node8, flow.Node9},
		{flow.Node10, flow.Node11},
	}
	if !reflect.DeepEqual(d.RankGroups, want3) {
		t.Errorf("FF rank groups = %v, want %v", d.RankGroups, want3)
	}
}

func TestAssembleMissingPreviousStudies(t *testing.T) {
	data := flowtest.Data()
	delete(data.Counts, flow.PreviousStudies)

	_, err := Assemble(data, flow.Tooltips{}, variant.Select(true, false), flow.DefaultStyle())
	var missing *errors.MissingDataError
	if !asMissing(err, &missing) {
		t.Fatalf("Assemble() error = %v, want *MissingDataError", err)
	}
	if missing.Metric != "previous_studies" || missing.Field != "count" {
		t.Errorf("MissingDataError = %+v", missing)
	}
	if !strings.Contains(errors.UserMessage(err), "previous_studies") {
		t.Errorf("UserMessage() = %q, should name the metric", errors.UserMessage(err))
	}

	// The same data is fine when the previous arm is off.
	if _, err := Assemble(data, flow.Tooltips{}, variant.Select(false, true), flow.DefaultStyle()); err != nil {
		t.Errorf("Assemble(FP) error = %v", err)
	}
}

func TestAssembleMissingLabel(t *testing.T) {
	data := flowtest.Data()
	data.Labels[flow.RecordsScreened] = ""

	_, err := Assemble(data, flow.Tooltips{}, variant.Select(false, false), flow.DefaultStyle())
	if !errors.Is(err, errors.ErrCodeMissingData) {
		t.Fatalf("Assemble() error = %v, want MISSING_DATA", err)
	}
	if !strings.Contains(err.Error(), "records_screened") {
		t.Errorf("error %q should name records_screened", err)
	}
}

func TestAssembleFirstMissingInNodeOrder(t *testing.T) {
	data := flowtest.Data()
	delete(data.Counts, flow.TotalStudies)
	delete(data.Counts, flow.Duplicates)

	_, err := Assemble(data, flow.Tooltips{}, variant.Select(true, true), flow.DefaultStyle())
	if err == nil || !strings.Contains(err.Error(), "duplicates") {
		t.Errorf("Assemble() error = %v, want duplicates (node 5) before total_studies (node 19)", err)
	}
}

func TestAssembleRejectsNegativeCounts(t *testing.T) {
	data := flowtest.Data()
	data.Counts[flow.RecordsExcluded] = -4

	_, err := Assemble(data, flow.Tooltips{}, variant.Select(true, true), flow.DefaultStyle())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Assemble() error = %v, want INVALID_INPUT", err)
	}
}

func TestAssembleStyleIndependence(t *testing.T) {
	alt := flow.Style{
		Font:          "Times",
		FontSize:      14,
		TitleColour:   "#336699",
		GreyBoxColour: "LightGrey",
		MainColour:    "Navy",
		ArrowColour:   "Red",
		ArrowHead:     "vee",
		ArrowTail:     "dot",
	}

	for _, k := range variant.Kinds {
		p := variant.Select(k.Previous(), k.Other())
		a, err := Assemble(flowtest.Data(), flow.Tooltips{}, p, flow.DefaultStyle())
		if err != nil {
			t.Fatal(err)
		}
		b, err := Assemble(flowtest.Data(), flow.Tooltips{}, p, alt)
		if err != nil {
			t.Fatal(err)
		}
		if len(a.Nodes) != len(b.Nodes) {
			t.Fatalf("%v: node counts differ", k)
		}
		for i := range a.Nodes {
			if a.Nodes[i].ID != b.Nodes[i].ID || a.Nodes[i].Pos != b.Nodes[i].Pos {
				t.Errorf("%v: node %d differs: %+v vs %+v", k, i, a.Nodes[i], b.Nodes[i])
			}
		}
		if !reflect.DeepEqual(a.RankGroups, b.RankGroups) {
			t.Errorf("%v: rank groups differ", k)
		}
	}
}

func TestAssemblePositions(t *testing.T) {
	pp := assemble(t, true, true)
	ff := assemble(t, false, false)

	n4pp, _ := pp.Node(flow.Node4)
	n4ff, _ := ff.Node(flow.Node4)
	if n4pp.Pos != (Point{4.5, 7.5}) {
		t.Errorf("PP node 4 at %v", n4pp.Pos)
	}
	if n4ff.Pos != (Point{1.0, 6.0}) {
		t.Errorf("FF node 4 at %v", n4ff.Pos)
	}

	a, _ := pp.Node(flow.NodeA)
	if a.Pos != (Point{1.0, 0}) || a.Role != RoleCorner {
		t.Errorf("A = %+v", a)
	}
	b, _ := pp.Node(flow.NodeB)
	if b.Pos != (Point{11.5, 1.5}) {
		t.Errorf("B at %v", b.Pos)
	}

	railPP, _ := pp.Node(flow.Node22)
	railFF, _ := ff.Node(flow.Node22)
	if railPP.Pos.X != -1 || railFF.Pos.X != -1 {
		t.Errorf("rails should keep their column: %v, %v", railPP.Pos, railFF.Pos)
	}
	if railPP.Height <= railFF.Height {
		t.Errorf("included rail should grow with the total row: %v <= %v", railPP.Height, railFF.Height)
	}
}

func TestAssembleEdgeStyles(t *testing.T) {
	d := assemble(t, true, true)
	find := func(from, to flow.NodeID) Edge {
		for _, e := range d.Edges {
			if e.From == from && e.To == to {
				return e
			}
		}
		t.Fatalf("edge %s->%s not found", from, to)
		return Edge{}
	}

	if e := find(flow.Node1, flow.Node2); !e.Invisible {
		t.Error("1->2 should be invisible")
	}
	if e := find(flow.Node5, flow.Node7); !e.Invisible || e.Head != "none" {
		t.Errorf("5->7 = %+v", e)
	}
	if e := find(flow.Node2, flow.NodeA); e.Head != "none" || e.Invisible {
		t.Errorf("2->A = %+v", e)
	}
	if e := find(flow.NodeA, flow.Node19); !e.NoConstraint {
		t.Error("A->19 should not constrain ranking")
	}
	if e := find(flow.NodeB, flow.Node12); !e.NoConstraint {
		t.Error("B->12 should not constrain ranking")
	}
	if e := find(flow.Node4, flow.Node6); e.Head != flow.DefaultArrowHead || e.NoConstraint {
		t.Errorf("4->6 = %+v", e)
	}
}

func TestAssembleLabels(t *testing.T) {
	d := assemble(t, true, true)

	n11, _ := d.Node(flow.Node11)
	want := "Reports excluded:\nWrong population (n = 40)\nWrong intervention (n = 25)\nWrong outcome (n = 18)"
	if n11.Label != want {
		t.Errorf("node 11 label = %q, want %q", n11.Label, want)
	}

	n6, _ := d.Node(flow.Node6)
	if n6.Label != "Records screened (n = 1288)" {
		t.Errorf("node 6 label = %q", n6.Label)
	}

	for _, n := range d.Nodes {
		for _, line := range strings.Split(n.Label, "\n") {
			if len(line) > headerWrap {
				t.Errorf("node %s line %q exceeds wrap width", n.ID, line)
			}
		}
	}

	if got := d.RailLabels(); got != [3]string{"Identification", "Screening", "Included"} {
		t.Errorf("RailLabels() = %v", got)
	}

	n2, _ := d.Node(flow.Node2)
	if n2.Tooltip != "Tooltip for box1" {
		t.Errorf("node 2 tooltip = %q", n2.Tooltip)
	}
}

func TestAssembleSubgraphs(t *testing.T) {
	d := assemble(t, false, true)
	var names []string
	for _, s := range d.Subgraphs {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "databases,other,rails" {
		t.Errorf("FP subgraphs = %s", got)
	}
}

func asMissing(err error, target **errors.MissingDataError) bool {
	m, ok := err.(*errors.MissingDataError)
	if ok {
		*target = m
	}
	return ok
}

func ExampleAssemble() {
	d, err := Assemble(flowtest.Data(), flow.Tooltips{}, variant.Select(false, false), flow.DefaultStyle())
	if err != nil {
		panic(err)
	}
	n, _ := d.Node(flow.Node6)
	fmt.Println(d.Variant, len(d.Nodes), n.Pos)
	// Output: FF 13 {1 4.5}
}
