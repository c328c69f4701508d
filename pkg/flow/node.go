package flow

import (
	"github.com/matzehuels/prismaflow/pkg/errors"
)

// NodeID identifies a node of the PRISMA 2020 template. Content nodes are
// numbered 1 to 22; A and B are the synthetic corner nodes that bend the two
// feedback edges.
type NodeID string

// Node identifiers in template order.
const (
	Node1  NodeID = "1"  // previous studies header
	Node2  NodeID = "2"  // studies included in previous version
	Node3  NodeID = "3"  // databases and registers header
	Node4  NodeID = "4"  // records identified
	Node5  NodeID = "5"  // records removed before screening
	Node6  NodeID = "6"  // records screened
	Node7  NodeID = "7"  // records excluded
	Node8  NodeID = "8"  // reports sought for retrieval
	Node9  NodeID = "9"  // reports not retrieved
	Node10 NodeID = "10" // reports assessed for eligibility
	Node11 NodeID = "11" // reports excluded with reasons
	Node12 NodeID = "12" // new studies included
	Node13 NodeID = "13" // other methods header
	Node14 NodeID = "14" // records identified from other methods
	Node15 NodeID = "15" // reports sought (other)
	Node16 NodeID = "16" // reports not retrieved (other)
	Node17 NodeID = "17" // reports assessed (other)
	Node18 NodeID = "18" // reports excluded (other)
	Node19 NodeID = "19" // total studies included
	Node20 NodeID = "20" // identification rail
	Node21 NodeID = "21" // screening rail
	Node22 NodeID = "22" // included rail
	NodeA  NodeID = "A"
	NodeB  NodeID = "B"
)

// AllNodes lists every node in template order. Emitters iterate this slice
// rather than maps so output is deterministic.
var AllNodes = []NodeID{
	Node1, Node2, Node3, Node4, Node5, Node6, Node7, Node8, Node9, Node10,
	Node11, Node12, Node13, Node14, Node15, Node16, Node17, Node18, Node19,
	Node20, Node21, Node22, NodeA, NodeB,
}

var nodeIndex = func() map[NodeID]int {
	m := make(map[NodeID]int, len(AllNodes))
	for i, id := range AllNodes {
		m[id] = i + 1
	}
	return m
}()

// Index returns the 1-based template position of id. A and B follow the
// numbered nodes (23 and 24). Unknown ids return 0.
func (id NodeID) Index() int { return nodeIndex[id] }

// Synthetic reports whether id is one of the zero-size corner nodes.
func (id NodeID) Synthetic() bool { return id == NodeA || id == NodeB }

// Rail reports whether id is one of the section rail bars.
func (id NodeID) Rail() bool { return id == Node20 || id == Node21 || id == Node22 }

// Box returns the logical box name of id.
func (id NodeID) Box() BoxName { return nodeBoxes[id] }

// Less orders node ids by template position.
func (id NodeID) Less(other NodeID) bool { return id.Index() < other.Index() }

// BoxName is the logical name used to attach URLs to boxes.
type BoxName string

// Box names.
const (
	BoxIdentification BoxName = "identification"
	BoxScreening      BoxName = "screening"
	BoxIncluded       BoxName = "included"
	BoxPrevStud       BoxName = "prevstud"
	BoxNewStud        BoxName = "newstud"
	BoxOthStud        BoxName = "othstud"
	Box1              BoxName = "box1"
	Box2              BoxName = "box2"
	Box3              BoxName = "box3"
	Box4              BoxName = "box4"
	Box5              BoxName = "box5"
	Box6              BoxName = "box6"
	Box7              BoxName = "box7"
	Box8              BoxName = "box8"
	Box9              BoxName = "box9"
	Box10             BoxName = "box10"
	Box11             BoxName = "box11"
	Box12             BoxName = "box12"
	Box13             BoxName = "box13"
	Box14             BoxName = "box14"
	Box15             BoxName = "box15"
	Box16             BoxName = "box16"
	BoxA              BoxName = "A"
	BoxB              BoxName = "B"
)

var nodeBoxes = map[NodeID]BoxName{
	Node1:  BoxPrevStud,
	Node2:  Box1,
	Node3:  BoxNewStud,
	Node4:  Box2,
	Node5:  Box3,
	Node6:  Box4,
	Node7:  Box5,
	Node8:  Box6,
	Node9:  Box7,
	Node10: Box8,
	Node11: Box9,
	Node12: Box10,
	Node13: BoxOthStud,
	Node14: Box11,
	Node15: Box12,
	Node16: Box13,
	Node17: Box14,
	Node18: Box15,
	Node19: Box16,
	Node20: BoxIdentification,
	Node21: BoxScreening,
	Node22: BoxIncluded,
	NodeA:  BoxA,
	NodeB:  BoxB,
}

var boxNodes = func() map[BoxName]NodeID {
	m := make(map[BoxName]NodeID, len(nodeBoxes))
	for id, box := range nodeBoxes {
		m[box] = id
	}
	return m
}()

// Node returns the node carrying box b.
func (b BoxName) Node() (NodeID, bool) {
	id, ok := boxNodes[b]
	return id, ok
}

// ParseBoxName validates a box name against the closed vocabulary.
func ParseBoxName(s string) (BoxName, error) {
	b := BoxName(s)
	if _, ok := boxNodes[b]; !ok {
		return "", errors.New(errors.ErrCodeInvalidBox, "unknown box %q", s)
	}
	return b, nil
}
