package diagram

import (
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// Template columns, in inches.
const (
	colPrevious    = 1.0
	colMain        = 4.5
	colMainSide    = 8.0
	colMainHeader  = 6.25
	colOther       = 11.5
	colOtherSide   = 15.0
	colOtherHeader = 13.25
	colRail        = -1.0
)

// Template rows, in inches, top to bottom.
const (
	rowHeader         = 9.0
	rowIdentification = 7.5
	rowScreening      = 6.0
	rowRetrieval      = 4.5
	rowEligibility    = 3.0
	rowIncluded       = 1.5
	rowTotal          = 0.0
)

// Box sizes, in inches.
const (
	boxWidth       = 3.2
	headerWidth    = 6.7
	headerHeight   = 0.5
	railWidth      = 0.4
	cornerSize     = 0.01
	identHeight    = 1.5
	singleHeight   = 0.5
	doubleHeight   = 0.8
	exclusionH     = 1.2
	railIdentH     = 1.4
	railScreeningH = 4.4
	railIncludedH  = 1.4
)

type cell struct {
	col, row      float64
	width, height float64
}

var grid = map[flow.NodeID]cell{
	flow.Node1:  {colPrevious, rowHeader, boxWidth, headerHeight},
	flow.Node2:  {colPrevious, rowIdentification, boxWidth, doubleHeight},
	flow.Node3:  {colMainHeader, rowHeader, headerWidth, headerHeight},
	flow.Node4:  {colMain, rowIdentification, boxWidth, identHeight},
	flow.Node5:  {colMainSide, rowIdentification, boxWidth, identHeight},
	flow.Node6:  {colMain, rowScreening, boxWidth, singleHeight},
	flow.Node7:  {colMainSide, rowScreening, boxWidth, singleHeight},
	flow.Node8:  {colMain, rowRetrieval, boxWidth, singleHeight},
	flow.Node9:  {colMainSide, rowRetrieval, boxWidth, singleHeight},
	flow.Node10: {colMain, rowEligibility, boxWidth, singleHeight},
	flow.Node11: {colMainSide, rowEligibility, boxWidth, exclusionH},
	flow.Node12: {colMain, rowIncluded, boxWidth, doubleHeight},
	flow.Node13: {colOtherHeader, rowHeader, headerWidth, headerHeight},
	flow.Node14: {colOther, rowIdentification, boxWidth, identHeight},
	flow.Node15: {colOther, rowRetrieval, boxWidth, singleHeight},
	flow.Node16: {colOtherSide, rowRetrieval, boxWidth, singleHeight},
	flow.Node17: {colOther, rowEligibility, boxWidth, singleHeight},
	flow.Node18: {colOtherSide, rowEligibility, boxWidth, exclusionH},
	flow.Node19: {colMain, rowTotal, boxWidth, doubleHeight},
	flow.NodeA:  {colPrevious, rowTotal, cornerSize, cornerSize},
	flow.NodeB:  {colOther, rowIncluded, cornerSize, cornerSize},
}

// place returns the pinned position and size of id in variant p.
func place(id flow.NodeID, p variant.Params) (Point, float64, float64) {
	switch id {
	case flow.Node20:
		return Point{colRail, p.YOffset + rowIdentification}, railWidth, railIdentH
	case flow.Node21:
		return Point{colRail, p.YOffset + rowRetrieval}, railWidth, railScreeningH
	case flow.Node22:
		return Point{colRail, p.YOffset + rowIncluded - p.HAdj2}, railWidth, railIncludedH + p.HAdj1
	}
	c := grid[id]
	return Point{p.XOffset + c.col, p.YOffset + c.row}, c.width, c.height
}
