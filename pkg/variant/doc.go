// Package variant selects one of the four PRISMA 2020 diagram topologies.
//
// # Overview
//
// Two flags decide the shape of a flow diagram: whether the review is an
// update with a "previous studies" arm, and whether records were identified
// through "other methods". Every combination is valid:
//
//   - [PP]: previous studies and other methods
//   - [FP]: other methods only
//   - [PF]: previous studies only
//   - [FF]: neither, a single linear pipeline
//
// [Select] returns a [Params] bundle for the active combination: the grid
// origin shift, the included-rail height adjustments, the active node and
// edge sets, and the calibration coordinates for the rotated rail labels.
//
//	p := variant.Select(true, false)
//	fmt.Println(p.Kind, len(p.Nodes)) // PF 17
//
// Selection is pure. Params values are freshly allocated on each call and
// may be modified by the caller.
package variant
